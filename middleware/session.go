package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jaylenwa/goblog/services"
	"github.com/jaylenwa/goblog/stores"
	"github.com/jaylenwa/goblog/utils"
)

// ContextPrincipalKey stores the resolved principal in the Gin context.
const ContextPrincipalKey = "principal"

// CurrentUser resolves the session principal for every request. A
// missing, expired, or tampered cookie, or a user row that no longer
// exists, all leave the request anonymous; handlers decide what that
// means for them.
func CurrentUser(users stores.IdentityStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			ctx.Next()
			return
		}

		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			ctx.Next()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			ctx.Next()
			return
		}

		ctx.Set(ContextPrincipalKey, services.PrincipalFor(user))
		ctx.Next()
	}
}

// PrincipalFrom returns the request's principal, anonymous if none was
// resolved.
func PrincipalFrom(ctx *gin.Context) services.Principal {
	if v, ok := ctx.Get(ContextPrincipalKey); ok {
		if p, ok := v.(services.Principal); ok {
			return p
		}
	}
	return services.Anonymous
}
