package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaylenwa/goblog/config"
	"github.com/jaylenwa/goblog/middleware"
	"github.com/jaylenwa/goblog/services"
	"github.com/jaylenwa/goblog/utils"
)

// RegisterForm is the registration form.
type RegisterForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

// LoginForm is the login form.
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// AuthController serves the register, login, and logout routes.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// ShowRegister renders the registration form.
func (a *AuthController) ShowRegister(ctx *gin.Context) {
	render(ctx, http.StatusOK, "register.html", nil)
}

// Register creates an account. The new user is not logged in; they land
// on the post listing with an anonymous session, same as before.
func (a *AuthController) Register(ctx *gin.Context) {
	var form RegisterForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusBadRequest, "register.html", gin.H{
			"Flash": "Please fill in name, email and a password of at least 6 characters.",
			"Form":  form,
		})
		return
	}

	if _, err := a.auth.Register(form.Email, form.Password, form.Name); err != nil {
		if errors.Is(err, services.ErrEmailRegistered) {
			utils.Flash(ctx, "This email has been registered. Login with the email")
			ctx.Redirect(http.StatusFound, "/login")
			return
		}
		utils.Sugar.Errorf("register failed: %v", err)
		renderError(ctx, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	ctx.Redirect(http.StatusFound, "/")
}

// ShowLogin renders the login form.
func (a *AuthController) ShowLogin(ctx *gin.Context) {
	render(ctx, http.StatusOK, "login.html", nil)
}

// Login authenticates the user and establishes the session principal.
func (a *AuthController) Login(ctx *gin.Context) {
	var form LoginForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusBadRequest, "login.html", gin.H{
			"Flash": "Please enter your email and password.",
			"Form":  form,
		})
		return
	}

	user, err := a.auth.Login(form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownEmail):
			utils.Flash(ctx, "This email does not exist. Please try again")
		case errors.Is(err, services.ErrWrongPassword):
			utils.Flash(ctx, "Password incorrect. Please try again")
		default:
			utils.Sugar.Errorf("login failed: %v", err)
			utils.Flash(ctx, "Something went wrong. Please try again.")
		}
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	ttl := time.Duration(config.Get().SessionTTLHours) * time.Hour
	token, err := utils.GenerateSessionToken(user.ID, user.Name, ttl)
	if err != nil {
		utils.Sugar.Errorf("session token generation failed: %v", err)
		renderError(ctx, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	utils.SetSessionCookie(ctx, token, ttl)

	ctx.Redirect(http.StatusFound, "/")
}

// Logout clears the session. It requires one to exist.
func (a *AuthController) Logout(ctx *gin.Context) {
	if !middleware.PrincipalFrom(ctx).Authenticated() {
		utils.Flash(ctx, "You need to login first.")
		ctx.Redirect(http.StatusFound, "/login")
		return
	}
	utils.ClearSessionCookie(ctx)
	ctx.Redirect(http.StatusFound, "/")
}
