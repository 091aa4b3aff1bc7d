package utils

import (
	"crypto/md5"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("SECRET_KEY", "test-session-secret")
	os.Setenv("DATABASE_URL", "root@tcp(127.0.0.1:3306)/blog_test")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken(7, "Alice", time.Hour)
	require.NoError(t, err)

	claims, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
}

func TestSessionToken_Tampered(t *testing.T) {
	token, err := GenerateSessionToken(7, "Alice", time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ParseSessionToken(tampered)
	assert.Error(t, err)
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := GenerateSessionToken(7, "Alice", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken(token)
	assert.Error(t, err)
}

func TestSessionCookie_SetAndClear(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)

	SetSessionCookie(ctx, "token-value", time.Hour)
	setCookie := rec.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, SessionCookieName+"=token-value")
	assert.Contains(t, setCookie, "HttpOnly")

	rec = httptest.NewRecorder()
	ctx, _ = gin.CreateTestContext(rec)
	ClearSessionCookie(ctx)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), SessionCookieName+"=")
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestFlash_PopReturnsAndClears(t *testing.T) {
	// Queue the notice.
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	Flash(ctx, "Password incorrect. Please try again")

	raw := rec.Header().Get("Set-Cookie")
	require.NotEmpty(t, raw)
	value := strings.TrimPrefix(strings.Split(raw, ";")[0], flashCookieName+"=")

	// Read it back on the next request.
	rec = httptest.NewRecorder()
	ctx, _ = gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/login", nil)
	ctx.Request.AddCookie(&http.Cookie{Name: flashCookieName, Value: value})

	assert.Equal(t, "Password incorrect. Please try again", PopFlash(ctx))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestGravatarURL(t *testing.T) {
	url := GravatarURL(" Alice@Example.COM ", 100)
	// Hash is over the trimmed, lowercased address.
	expected := fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=100&d=retro&r=g", md5.Sum([]byte("alice@example.com")))
	assert.Equal(t, expected, url)
}
