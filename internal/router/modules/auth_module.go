package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/container"
	handlers "go-blog-api/internal/interface/http"
	"go-blog-api/internal/interface/middleware"
)

// AuthModule wires the account endpoints.
// Public: POST /api/register, POST /api/login, POST /api/logout
// GET /api/profile inspects the cookie itself so a missing session can yield
// a null body instead of a 401.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/logout", m.Handler.Logout)
	rg.GET("/profile", m.Handler.Profile)
}
