package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jaylenwa/goblog/config"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "blog_session"

// SessionClaims are the claims embedded in a session token.
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateSessionToken issues a signed token for the given user. Token
// expiry is the session lifetime; there is no refresh.
func GenerateSessionToken(userID uint, name string, duration time.Duration) (string, error) {
	cfg := config.Get()

	claims := SessionClaims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// ParseSessionToken validates a session token and returns its claims.
func ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// SetSessionCookie establishes the session on the client.
func SetSessionCookie(ctx *gin.Context, token string, duration time.Duration) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, token, int(duration.Seconds()), "/", "", false, true)
}

// ClearSessionCookie drops the session, returning the client to
// anonymous.
func ClearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}
