package services

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"blog-cms/cmd/api/trace"
	"blog-cms/internal/logger"
	"blog-cms/models"
	"blog-cms/repositories"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyFiles       = errors.New("too many gallery files")
)

// postStore wraps the repository with the process-wide lock and the two load
// policies. Reads degrade to an empty collection; mutations only treat a store
// that does not exist yet as empty.
type postStore struct {
	repo repositories.PostRepository
	mu   *sync.Mutex
}

func newPostStore(repo repositories.PostRepository, mu *sync.Mutex) *postStore {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &postStore{repo: repo, mu: mu}
}

func (s *postStore) loadForRead(ctx context.Context) []models.Post {
	posts, err := s.load(ctx)
	if err != nil {
		logger.WarnWithFields("post store unreadable, serving empty collection", traceFields(ctx, logger.Fields{
			"error": err.Error(),
		}))
		return []models.Post{}
	}
	return posts
}

func (s *postStore) loadForWrite(ctx context.Context) ([]models.Post, error) {
	posts, err := s.load(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Post{}, nil
		}
		logger.ErrorWithFields("post store unreadable, refusing mutation", traceFields(ctx, logger.Fields{
			"error": err.Error(),
		}))
		return nil, err
	}
	return posts, nil
}

func (s *postStore) load(ctx context.Context) ([]models.Post, error) {
	posts, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.DebugWithFields("post store load", traceFields(ctx, logger.Fields{"posts": len(posts)}))
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (s *postStore) save(ctx context.Context, posts []models.Post) error {
	if err := s.repo.Save(ctx, posts); err != nil {
		logger.ErrorWithFields("post store save failed", traceFields(ctx, logger.Fields{
			"error": err.Error(),
		}))
		return err
	}
	logger.DebugWithFields("post store save", traceFields(ctx, logger.Fields{"posts": len(posts)}))
	return nil
}

func traceFields(ctx context.Context, fields logger.Fields) logger.Fields {
	requestID, spanID := trace.NextSpanID(ctx)
	if requestID != "" {
		fields["request_id"] = requestID
	}
	fields["span_id"] = spanID
	return fields
}

func indexByID(posts []models.Post, id string) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
