package repository

import (
	"context"

	"go-blog-api/internal/domain/entity"
)

// PostRepository defines the interface for post-related database operations.
// Reads populate AuthorName from the users table.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Post, error)
}
