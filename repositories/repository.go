package repositories

import (
	"context"
	"errors"
	"fmt"

	"blog-cms/models"
)

// ErrStorage wraps every failure to read or write the backing store.
var ErrStorage = errors.New("storage error")

// PostRepository loads and persists the whole post collection at once.
// Implementations do not lock; callers serialise read-modify-write cycles.
type PostRepository interface {
	Load(ctx context.Context) ([]models.Post, error)
	Save(ctx context.Context, posts []models.Post) error
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
