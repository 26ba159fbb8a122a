package handler

import (
	"errors"
	"net/http"

	"billed/internal/auth"
	"billed/internal/middleware"
	"billed/internal/model"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// cookieMaxAge matches the session token lifetime
const cookieMaxAge = 24 * 60 * 60

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	service  *auth.Service
	bills    store.Scoper
	renderer *view.Renderer
	log      zerolog.Logger
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(service *auth.Service, bills store.Scoper, renderer *view.Renderer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: service, bills: bills, renderer: renderer, log: log}
}

// Login authenticates the posted credentials, sets the session cookie and
// redirects to the role's landing page
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.Data(http.StatusUnauthorized, "text/html; charset=utf-8", []byte(h.renderer.Login()))
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		return
	}

	// The two login boxes post the same route; kind marks which one was used
	// and the account type must match it
	if kind := c.PostForm("kind"); (kind == "admin" && user.Type != model.RoleAdmin) ||
		(kind == "employee" && user.Type != model.RoleEmployee) {
		h.log.Warn().Str("email", email).Str("kind", kind).Str("type", user.Type).
			Msg("login form kind does not match account type")
		c.Data(http.StatusUnauthorized, "text/html; charset=utf-8", []byte(h.renderer.Login()))
		return
	}

	c.SetCookie(middleware.CookieName, token, cookieMaxAge, "/", "", false, true)
	if user.Type == model.RoleAdmin {
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}
	c.Redirect(http.StatusSeeOther, "/employee/bills")
}

// Register creates an account and logs it straight in
func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || len(password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and a password of at least 6 characters are required"})
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		return
	}

	c.SetCookie(middleware.CookieName, token, cookieMaxAge, "/", "", false, true)
	if user.Type == model.RoleAdmin {
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}
	c.Redirect(http.StatusSeeOther, "/employee/bills")
}

// Logout clears the session through the logout container, drops the cookie
// and returns to the login page
func (h *AuthHandler) Logout(c *gin.Context) {
	cl := newClient(middleware.StorageFrom(c), h.bills, h.renderer, h.log)
	cl.logout.HandleClick(c.Request.Context())
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
		authGroup.POST("/logout", h.Logout)
	}
}
