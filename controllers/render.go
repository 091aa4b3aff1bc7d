package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jaylenwa/goblog/middleware"
	"github.com/jaylenwa/goblog/utils"
)

// render draws a template with the request principal and any pending
// flash notice merged into the page data.
func render(ctx *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	principal := middleware.PrincipalFrom(ctx)
	data["Principal"] = principal
	data["LoggedIn"] = principal.Authenticated()
	data["IsAdmin"] = principal.IsAdmin()
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = utils.PopFlash(ctx)
	}
	ctx.HTML(status, name, data)
}

// renderError draws the shared error page.
func renderError(ctx *gin.Context, status int, message string) {
	render(ctx, status, "error.html", gin.H{"Status": status, "Message": message})
}

// parseID reads a numeric path parameter.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
