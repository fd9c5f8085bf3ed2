package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-blog-api/internal/application"
	"go-blog-api/internal/domain/entity"
	"go-blog-api/internal/interface/middleware"
	"go-blog-api/pkg/response"
	"go-blog-api/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Title   string `form:"title" binding:"required"`
	Summary string `form:"summary" binding:"required"`
	Content string `form:"content" binding:"required"`
}

type updatePostRequest struct {
	ID      string `form:"id" binding:"required,uuid"`
	Title   string `form:"title" binding:"required"`
	Summary string `form:"summary" binding:"required"`
	Content string `form:"content" binding:"required"`
}

func postJSON(p *entity.Post) gin.H {
	return gin.H{
		"id":         p.ID,
		"title":      p.Title,
		"summary":    p.Summary,
		"content":    p.Content,
		"author":     gin.H{"id": p.AuthorID, "username": p.AuthorName},
		"cover":      p.Cover,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

// Create POST /api/post (multipart, auth required)
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation", "invalid payload", validation.ToDetails(err))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "validation", "invalid payload", map[string]string{"file": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "validation", "could not read uploaded file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	up := &application.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}

	p, err := h.Svc.Create(
		c.Request.Context(),
		c.GetString(middleware.CtxUserIDKey),
		c.GetString(middleware.CtxUsernameKey),
		application.PostInput{Title: req.Title, Summary: req.Summary, Content: req.Content},
		up,
	)
	if err != nil {
		if errors.Is(err, application.ErrUploadFailed) {
			if h.Logger != nil {
				h.Logger.WithError(err).Error("cover upload failed")
			}
			response.Error(c, http.StatusInternalServerError, "upload", "could not store cover image", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "internal", "could not create post", nil)
		return
	}

	response.Success(c, http.StatusOK, postJSON(p), "post created", nil)
}

// Update PUT /api/post (multipart, auth required, author only)
// The cover is replaced only when a new file was attached.
func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation", "invalid payload", validation.ToDetails(err))
		return
	}

	var up *application.Upload
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "validation", "could not read uploaded file", nil)
			return
		}
		defer func() { _ = f.Close() }()
		up = &application.Upload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		}
	}

	p, err := h.Svc.Update(
		c.Request.Context(),
		c.GetString(middleware.CtxUserIDKey),
		req.ID,
		application.PostInput{Title: req.Title, Summary: req.Summary, Content: req.Content},
		up,
	)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "not_found", "post not found", nil)
		case errors.Is(err, application.ErrNotAuthor):
			response.Error(c, http.StatusBadRequest, "authorization", "you are not the author", nil)
		case errors.Is(err, application.ErrUploadFailed):
			if h.Logger != nil {
				h.Logger.WithError(err).Error("cover upload failed")
			}
			response.Error(c, http.StatusInternalServerError, "upload", "could not store cover image", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "internal", "could not update post", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, postJSON(p), "post updated", nil)
}

// List GET /api/post (public)
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.ListRecent(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "internal", "could not list posts", nil)
		return
	}

	out := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		out = append(out, postJSON(p))
	}
	response.Success(c, http.StatusOK, out, "posts", map[string]any{"count": len(out)})
}

// Get GET /api/post/:id (public)
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, "not_found", "post not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "internal", "could not load post", nil)
		return
	}
	response.Success(c, http.StatusOK, postJSON(p), "post", nil)
}

// Search GET /api/posts/search?q= (public)
func (h *PostHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, http.StatusBadRequest, "validation", "invalid payload", map[string]string{"q": "is required"})
		return
	}
	hits, err := h.Svc.Search(c.Request.Context(), q, 20)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "internal", "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
