package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"go-blog-api/internal/domain/entity"
	repo "go-blog-api/internal/domain/repository"
	"go-blog-api/internal/infrastructure/blob"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotAuthor    = errors.New("you are not the author")
	ErrUploadFailed = errors.New("upload failed")
)

// The public listing returns at most this many posts, newest first.
const recentLimit = 20

// PostService owns post creation, editing with the authorship check, public
// reads, and the cover upload pipeline.
type PostService struct {
	Repo    repo.PostRepository
	Sink    blob.Sink
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewPostService(postRepo repo.PostRepository, sink blob.Sink, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *PostService {
	return &PostService{Repo: postRepo, Sink: sink, Logger: logger, ES: es, ESIndex: esIndex}
}

type PostInput struct {
	Title   string
	Summary string
	Content string
}

// Upload is a pending cover file from a multipart request.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// Create stores the cover (when present), then persists the post with the
// author taken from the session claim.
func (s *PostService) Create(ctx context.Context, authorID, authorName string, in PostInput, up *Upload) (*entity.Post, error) {
	cover := ""
	if up != nil {
		ref, err := s.Sink.Store(ctx, up.Reader, up.Filename, up.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		cover = ref
	}

	p := &entity.Post{
		Title:      in.Title,
		Summary:    in.Summary,
		Content:    in.Content,
		AuthorID:   authorID,
		AuthorName: authorName,
		Cover:      cover,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	_ = s.indexPost(ctx, p)
	return p, nil
}

// Update applies a partial edit. Only the post's author may edit it; the
// cover is replaced only when a new file was uploaded.
func (s *PostService) Update(ctx context.Context, editorID, postID string, in PostInput, up *Upload) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if p.AuthorID != editorID {
		return nil, ErrNotAuthor
	}

	if up != nil {
		ref, err := s.Sink.Store(ctx, up.Reader, up.Filename, up.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		p.Cover = ref
	}

	p.Title = in.Title
	p.Summary = in.Summary
	p.Content = in.Content
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	_ = s.indexPost(ctx, p)
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListRecent returns the newest posts, capped at 20.
func (s *PostService) ListRecent(ctx context.Context) ([]*entity.Post, error) {
	return s.Repo.ListRecent(ctx, recentLimit)
}

// indexPost mirrors the post into Elasticsearch for search. Best effort:
// indexing failures are logged and never fail the write path.
func (s *PostService) indexPost(ctx context.Context, p *entity.Post) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         p.ID,
		"title":      p.Title,
		"summary":    p.Summary,
		"content":    p.Content,
		"author":     p.AuthorName,
		"cover":      p.Cover,
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("post_id", p.ID).Warn("es index response error")
	}
	return nil
}

// Search performs a multi_match over title, summary and content. Returns an
// empty slice when search is not configured.
func (s *PostService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > recentLimit {
		size = recentLimit
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "summary", "content"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
