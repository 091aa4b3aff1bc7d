package utils

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "blog_flash"

// Flash queues a one-shot notice shown on the next rendered page. The
// value is base64 encoded so it survives cookie character rules.
func Flash(ctx *gin.Context, message string) {
	encoded := base64.URLEncoding.EncodeToString([]byte(message))
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(flashCookieName, encoded, 300, "/", "", false, true)
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(ctx *gin.Context) string {
	encoded, err := ctx.Cookie(flashCookieName)
	if err != nil || encoded == "" {
		return ""
	}
	ctx.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	decoded, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(decoded)
}
