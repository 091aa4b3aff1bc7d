package routes

import (
	"html/template"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jaylenwa/goblog/config"
	"github.com/jaylenwa/goblog/controllers"
	"github.com/jaylenwa/goblog/middleware"
	"github.com/jaylenwa/goblog/services"
	"github.com/jaylenwa/goblog/stores"
	"github.com/jaylenwa/goblog/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(auth *services.AuthService, content *services.ContentService, users stores.IdentityStore) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	if utils.Logger != nil {
		r.Use(utils.GinLogger(utils.Logger))
		r.Use(utils.GinRecovery(utils.Logger))
	} else {
		r.Use(gin.Recovery())
	}
	r.Use(middleware.CurrentUser(users))

	r.SetFuncMap(template.FuncMap{
		// Post bodies are sanitized on the way in; render them as HTML.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"gravatar": func(email string) string { return utils.GravatarURL(email, 100) },
	})
	r.LoadHTMLGlob(cfg.TemplateGlob)
	r.Static("/static", "./static")

	authController := controllers.NewAuthController(auth)
	blogController := controllers.NewBlogController(content)

	r.GET("/", blogController.Index)
	r.GET("/about", blogController.About)
	r.GET("/contact", blogController.Contact)

	r.GET("/register", authController.ShowRegister)
	r.POST("/register", authController.Register)
	r.GET("/login", authController.ShowLogin)
	r.POST("/login", authController.Login)
	r.GET("/logout", authController.Logout)

	r.GET("/post/:id", blogController.ShowPost)
	r.POST("/post/:id", blogController.SubmitComment)

	// Admin-only post management; the guard runs inside the handlers and
	// services, against the explicit principal.
	r.GET("/new-post", blogController.NewPostForm)
	r.POST("/new-post", blogController.CreatePost)
	r.GET("/edit-post/:id", blogController.EditPostForm)
	r.POST("/edit-post/:id", blogController.UpdatePost)
	r.GET("/delete/:id", blogController.DeletePost)

	return r
}
