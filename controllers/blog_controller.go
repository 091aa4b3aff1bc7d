package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaylenwa/goblog/middleware"
	"github.com/jaylenwa/goblog/services"
	"github.com/jaylenwa/goblog/stores"
	"github.com/jaylenwa/goblog/utils"
)

// PostForm is the shared create/edit post form.
type PostForm struct {
	Title    string `form:"title" binding:"required"`
	Subtitle string `form:"subtitle" binding:"required"`
	ImageURL string `form:"img_url" binding:"required,url"`
	Body     string `form:"body" binding:"required"`
}

// CommentForm is the comment form on a post page.
type CommentForm struct {
	Text string `form:"comment" binding:"required"`
}

// BlogController serves the post listing, post pages, comments, the
// static pages, and the admin-only post management routes.
type BlogController struct {
	content *services.ContentService
}

// NewBlogController creates a BlogController.
func NewBlogController(content *services.ContentService) *BlogController {
	return &BlogController{content: content}
}

// Index lists all posts.
func (b *BlogController) Index(ctx *gin.Context) {
	posts, err := b.content.ListAllPosts()
	if err != nil {
		utils.Sugar.Errorf("list posts failed: %v", err)
		renderError(ctx, http.StatusInternalServerError, "Could not load posts.")
		return
	}
	render(ctx, http.StatusOK, "index.html", gin.H{"Posts": posts})
}

// About renders the static about page.
func (b *BlogController) About(ctx *gin.Context) {
	render(ctx, http.StatusOK, "about.html", nil)
}

// Contact renders the static contact page.
func (b *BlogController) Contact(ctx *gin.Context) {
	render(ctx, http.StatusOK, "contact.html", nil)
}

// ShowPost renders a post with its comments.
func (b *BlogController) ShowPost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		renderError(ctx, http.StatusNotFound, "This post does not exist.")
		return
	}

	post, comments, err := b.content.ViewPost(id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			renderError(ctx, http.StatusNotFound, "This post does not exist.")
			return
		}
		utils.Sugar.Errorf("view post %d failed: %v", id, err)
		renderError(ctx, http.StatusInternalServerError, "Could not load the post.")
		return
	}

	render(ctx, http.StatusOK, "post.html", gin.H{"Post": post, "Comments": comments})
}

// SubmitComment stores a comment by the current principal and reloads
// the post. Anonymous submissions are discarded and sent to login.
func (b *BlogController) SubmitComment(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		renderError(ctx, http.StatusNotFound, "This post does not exist.")
		return
	}

	var form CommentForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Flash(ctx, "Comment cannot be empty.")
		ctx.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
		return
	}

	principal := middleware.PrincipalFrom(ctx)
	if _, err := b.content.AddComment(principal, id, form.Text); err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthenticated):
			utils.Flash(ctx, "You need to login or register to comment.")
			ctx.Redirect(http.StatusFound, "/login")
		case errors.Is(err, stores.ErrNotFound):
			renderError(ctx, http.StatusNotFound, "This post does not exist.")
		default:
			utils.Sugar.Errorf("add comment on post %d failed: %v", id, err)
			renderError(ctx, http.StatusInternalServerError, "Could not save the comment.")
		}
		return
	}

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
}

// NewPostForm renders the create form. Admin only.
func (b *BlogController) NewPostForm(ctx *gin.Context) {
	if err := services.RequireAdmin(middleware.PrincipalFrom(ctx)); err != nil {
		renderError(ctx, http.StatusForbidden, "This page is not found at all")
		return
	}
	render(ctx, http.StatusOK, "make-post.html", gin.H{"IsEdit": false})
}

// CreatePost creates a post authored by the admin.
func (b *BlogController) CreatePost(ctx *gin.Context) {
	principal := middleware.PrincipalFrom(ctx)
	if err := services.RequireAdmin(principal); err != nil {
		renderError(ctx, http.StatusForbidden, "This page is not found at all")
		return
	}

	var form PostForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusBadRequest, "make-post.html", gin.H{
			"IsEdit": false,
			"Flash":  "All fields are required and the image must be a URL.",
			"Form":   form,
		})
		return
	}

	fields := stores.PostFields{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImageURL: form.ImageURL,
		AuthorID: principal.ID,
	}
	if _, err := b.content.CreatePost(principal, fields); err != nil {
		if errors.Is(err, stores.ErrDuplicateTitle) {
			render(ctx, http.StatusConflict, "make-post.html", gin.H{
				"IsEdit": false,
				"Flash":  "A post with this title already exists.",
				"Form":   form,
			})
			return
		}
		utils.Sugar.Errorf("create post failed: %v", err)
		renderError(ctx, http.StatusInternalServerError, "Could not create the post.")
		return
	}

	ctx.Redirect(http.StatusFound, "/")
}

// EditPostForm renders the edit form prefilled from the stored post.
// Admin only.
func (b *BlogController) EditPostForm(ctx *gin.Context) {
	if err := services.RequireAdmin(middleware.PrincipalFrom(ctx)); err != nil {
		renderError(ctx, http.StatusForbidden, "This page is not found at all")
		return
	}

	id, ok := parseID(ctx.Param("id"))
	if !ok {
		renderError(ctx, http.StatusNotFound, "This post does not exist.")
		return
	}

	post, err := b.content.GetPost(id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			renderError(ctx, http.StatusNotFound, "This post does not exist.")
			return
		}
		utils.Sugar.Errorf("load post %d for edit failed: %v", id, err)
		renderError(ctx, http.StatusInternalServerError, "Could not load the post.")
		return
	}

	render(ctx, http.StatusOK, "make-post.html", gin.H{
		"IsEdit": true,
		"PostID": post.ID,
		"Form": PostForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			ImageURL: post.ImageURL,
			Body:     post.Body,
		},
	})
}

// UpdatePost applies the edit form. The publish date never changes.
func (b *BlogController) UpdatePost(ctx *gin.Context) {
	principal := middleware.PrincipalFrom(ctx)
	if err := services.RequireAdmin(principal); err != nil {
		renderError(ctx, http.StatusForbidden, "This page is not found at all")
		return
	}

	id, ok := parseID(ctx.Param("id"))
	if !ok {
		renderError(ctx, http.StatusNotFound, "This post does not exist.")
		return
	}

	var form PostForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, http.StatusBadRequest, "make-post.html", gin.H{
			"IsEdit": true,
			"PostID": id,
			"Flash":  "All fields are required and the image must be a URL.",
			"Form":   form,
		})
		return
	}

	post, err := b.content.GetPost(id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			renderError(ctx, http.StatusNotFound, "This post does not exist.")
			return
		}
		utils.Sugar.Errorf("load post %d for edit failed: %v", id, err)
		renderError(ctx, http.StatusInternalServerError, "Could not load the post.")
		return
	}

	fields := stores.PostFields{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImageURL: form.ImageURL,
		AuthorID: post.AuthorID,
	}
	if err := b.content.EditPost(principal, id, fields); err != nil {
		switch {
		case errors.Is(err, stores.ErrNotFound):
			renderError(ctx, http.StatusNotFound, "This post does not exist.")
		case errors.Is(err, stores.ErrDuplicateTitle):
			render(ctx, http.StatusConflict, "make-post.html", gin.H{
				"IsEdit": true,
				"PostID": id,
				"Flash":  "A post with this title already exists.",
				"Form":   form,
			})
		default:
			utils.Sugar.Errorf("update post %d failed: %v", id, err)
			renderError(ctx, http.StatusInternalServerError, "Could not update the post.")
		}
		return
	}

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
}

// DeletePost removes a post and its comments. Admin only.
func (b *BlogController) DeletePost(ctx *gin.Context) {
	principal := middleware.PrincipalFrom(ctx)
	if err := services.RequireAdmin(principal); err != nil {
		renderError(ctx, http.StatusForbidden, "This page is not found at all")
		return
	}

	id, ok := parseID(ctx.Param("id"))
	if !ok {
		renderError(ctx, http.StatusNotFound, "This post does not exist.")
		return
	}

	if err := b.content.DeletePost(principal, id); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			renderError(ctx, http.StatusNotFound, "This post does not exist.")
			return
		}
		utils.Sugar.Errorf("delete post %d failed: %v", id, err)
		renderError(ctx, http.StatusInternalServerError, "Could not delete the post.")
		return
	}

	ctx.Redirect(http.StatusFound, "/")
}
