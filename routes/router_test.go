package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaylenwa/goblog/config"
	"github.com/jaylenwa/goblog/services"
	"github.com/jaylenwa/goblog/stores"
	"github.com/jaylenwa/goblog/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("SECRET_KEY", "test-session-secret")
	os.Setenv("DATABASE_URL", "root@tcp(127.0.0.1:3306)/blog_test")
	os.Setenv("ADMIN_USER_ID", "1")
	os.Setenv("GIN_MODE", "test")
	os.Setenv("TEMPLATE_GLOB", "../templates/*.html")
	if err := utils.InitLogger(config.Load()); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fixture struct {
	router *gin.Engine
	store  *stores.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := stores.NewMemoryStore()
	auth := services.NewAuthService(store)
	content := services.NewContentService(store)
	return &fixture{
		router: SetupRouter(auth, content, store),
		store:  store,
	}
}

func (f *fixture) do(t *testing.T, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) register(t *testing.T, name, email, password string) {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, rec.Code)
}

func (f *fixture) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	for _, c := range rec.Result().Cookies() {
		if c.Name == utils.SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == utils.SessionCookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func TestRegister_DoesNotLogIn(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/register", url.Values{
		"name":     {"Alice"},
		"email":    {"a@x.com"},
		"password": {"password1"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	// Registration deliberately leaves the session anonymous.
	assert.Nil(t, sessionCookie(rec))
}

func TestRegister_DuplicateEmailRedirectsToLogin(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "a@x.com", "password1")

	rec := f.do(t, http.MethodPost, "/register", url.Values{
		"name":     {"Imposter"},
		"email":    {"a@x.com"},
		"password": {"password2"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// The notice shows up on the login page that follows.
	var flash *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "blog_flash" {
			flash = c
		}
	}
	require.NotNil(t, flash)
	page := f.do(t, http.MethodGet, "/login", nil, flash)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "This email has been registered")
}

func TestLogin_WrongPasswordRedirectsBack(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "a@x.com", "password1")

	rec := f.do(t, http.MethodPost, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"wrong-password"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Nil(t, sessionCookie(rec))
}

func TestLogin_EstablishesSession(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "a@x.com", "password1")

	cookie := f.login(t, "a@x.com", "password1")

	claims, err := utils.ParseSessionToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "a@x.com", "password1")
	cookie := f.login(t, "a@x.com", "password1")

	rec := f.do(t, http.MethodGet, "/logout", nil, cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// Logging out without a session redirects to login instead.
	rec = f.do(t, http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAdminGate(t *testing.T) {
	f := newFixture(t)
	// First account (id 1) is the admin; the second is not.
	f.register(t, "Admin", "admin@x.com", "password1")
	f.register(t, "Reader", "reader@x.com", "password2")
	adminCookie := f.login(t, "admin@x.com", "password1")
	readerCookie := f.login(t, "reader@x.com", "password2")

	form := url.Values{
		"title":    {"Hello"},
		"subtitle": {"a greeting"},
		"img_url":  {"http://example.com/img.png"},
		"body":     {"<p>first post</p>"},
	}

	// Anonymous and non-privileged callers get 403 on every admin route.
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/new-post", nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/new-post", form).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/new-post", nil, readerCookie).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/new-post", form, readerCookie).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/delete/1", nil, readerCookie).Code)

	// The admin passes.
	rec := f.do(t, http.MethodPost, "/new-post", form, adminCookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	posts, err := f.store.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
}

func TestSubmitComment(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Admin", "admin@x.com", "password1")
	f.register(t, "Reader", "reader@x.com", "password2")
	adminCookie := f.login(t, "admin@x.com", "password1")
	readerCookie := f.login(t, "reader@x.com", "password2")

	rec := f.do(t, http.MethodPost, "/new-post", url.Values{
		"title":    {"Hello"},
		"subtitle": {"a greeting"},
		"img_url":  {"http://example.com/img.png"},
		"body":     {"<p>first post</p>"},
	}, adminCookie)
	require.Equal(t, http.StatusFound, rec.Code)

	// Anonymous: redirected to login, nothing stored.
	rec = f.do(t, http.MethodPost, "/post/1", url.Values{"comment": {"drive-by"}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	comments, err := f.store.CommentsForPost(1)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// Authenticated: stored and sent back to the post.
	rec = f.do(t, http.MethodPost, "/post/1", url.Values{"comment": {"great post"}}, readerCookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/post/1", rec.Header().Get("Location"))
	comments, err = f.store.CommentsForPost(1)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, uint(2), comments[0].AuthorID)
	assert.Equal(t, uint(1), comments[0].PostID)

	// The comment renders on the post page.
	page := f.do(t, http.MethodGet, "/post/1", nil)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "great post")
	assert.Contains(t, page.Body.String(), "gravatar.com/avatar/")
}

func TestDeletePost_RemovesFromListing(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Admin", "admin@x.com", "password1")
	adminCookie := f.login(t, "admin@x.com", "password1")

	rec := f.do(t, http.MethodPost, "/new-post", url.Values{
		"title":    {"Hello"},
		"subtitle": {"a greeting"},
		"img_url":  {"http://example.com/img.png"},
		"body":     {"<p>first post</p>"},
	}, adminCookie)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = f.do(t, http.MethodGet, "/delete/1", nil, adminCookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	page := f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.NotContains(t, page.Body.String(), "Hello</a>")

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/post/1", nil).Code)
}

func TestEditPost_KeepsPublishDate(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Admin", "admin@x.com", "password1")
	adminCookie := f.login(t, "admin@x.com", "password1")

	rec := f.do(t, http.MethodPost, "/new-post", url.Values{
		"title":    {"Hello"},
		"subtitle": {"a greeting"},
		"img_url":  {"http://example.com/img.png"},
		"body":     {"<p>first post</p>"},
	}, adminCookie)
	require.Equal(t, http.StatusFound, rec.Code)

	created, err := f.store.GetPost(1)
	require.NoError(t, err)

	rec = f.do(t, http.MethodPost, "/edit-post/1", url.Values{
		"title":    {"Hello, again"},
		"subtitle": {"an edited greeting"},
		"img_url":  {"http://example.com/img2.png"},
		"body":     {"<p>edited</p>"},
	}, adminCookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/post/1", rec.Header().Get("Location"))

	edited, err := f.store.GetPost(1)
	require.NoError(t, err)
	assert.Equal(t, "Hello, again", edited.Title)
	assert.Equal(t, created.Date, edited.Date)
	assert.Equal(t, created.AuthorID, edited.AuthorID)
}

func TestStaticPages(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/", "/about", "/contact", "/login", "/register"} {
		rec := f.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "path=%s", path)
	}
}

func TestShowPost_NotFound(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/post/99", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/post/abc", nil).Code)
}
