package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-blog-api/internal/application"
	"go-blog-api/pkg/helpers"
	"go-blog-api/pkg/response"
	"go-blog-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=32"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/register
// The response carries id and username only; credential material never
// serializes.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation", "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrUsernameTaken) {
			response.Error(c, http.StatusBadRequest, "validation", "username already taken", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "internal", "could not create user", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"created_at": u.CreatedAt,
	}, "user registered", nil)
}

// Login POST /api/login
// Unknown username and wrong password produce the same body so usernames
// cannot be enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation", "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) || errors.Is(err, application.ErrInvalidCredentials) {
			response.Error(c, http.StatusBadRequest, "auth", "username or password is incorrect", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "internal", "login failed", nil)
		return
	}

	h.Cookies.SetToken(c, res.Token, res.ExpiresAt)
	response.Success(c, http.StatusOK, gin.H{
		"id":       res.User.ID,
		"username": res.User.Username,
	}, "login successful", map[string]any{"expires_at": res.ExpiresAt})
}

// Logout POST /api/logout
// Clears the cookie only. The token stays valid until its expiry; there is
// no revocation list.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, "ok", "logged out", nil)
}

// Profile GET /api/profile
// No cookie yields a null body, matching clients that treat "logged out" as
// null. A present but bad token is a 401, not a fault.
func (h *AuthHandler) Profile(c *gin.Context) {
	token, err := c.Cookie(helpers.TokenCookie)
	if err != nil || token == "" {
		response.Success[any](c, http.StatusOK, nil, "no active session", nil)
		return
	}

	claims, err := h.JWT.Verify(token)
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, helpers.ErrTokenExpired) {
			msg = "token expired"
		}
		response.Error(c, http.StatusUnauthorized, "auth", msg, nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":         claims.UserID,
		"username":   claims.Username,
		"issued_at":  claims.IssuedAt.Time,
		"expires_at": claims.ExpiresAt.Time,
	}, "profile", nil)
}
