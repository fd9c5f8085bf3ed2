package modules

import (
	"github.com/gin-gonic/gin"

	handlers "go-blog-api/internal/interface/http"
	"go-blog-api/internal/interface/middleware"
	"go-blog-api/pkg/helpers"
)

// PostModule wires the post endpoints.
// Public: GET /api/post, GET /api/post/:id, GET /api/posts/search
// Protected: POST /api/post, PUT /api/post
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/post", m.Handler.List)
	rg.GET("/post/:id", m.Handler.Get)
	rg.GET("/posts/search", m.Handler.Search)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/post", m.Handler.Create)
		auth.PUT("/post", m.Handler.Update)
	}
}
