package repositories

import (
	"context"
	"sync"

	"blog-cms/models"
)

// MemoryRepository keeps the collection in process memory. Used by tests and by
// the "memory" storage driver.
type MemoryRepository struct {
	mu      sync.Mutex
	posts   []models.Post
	loadErr error
	saveErr error
	saves   int
}

func NewMemoryRepository(posts ...models.Post) *MemoryRepository {
	return &MemoryRepository{posts: models.ClonePosts(posts)}
}

func (r *MemoryRepository) Load(ctx context.Context) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, storageErr("load", r.loadErr)
	}
	return models.ClonePosts(r.posts), nil
}

func (r *MemoryRepository) Save(ctx context.Context, posts []models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return storageErr("save", r.saveErr)
	}
	r.posts = models.ClonePosts(posts)
	r.saves++
	return nil
}

// FailLoad makes every following Load fail with err (nil clears it).
func (r *MemoryRepository) FailLoad(err error) {
	r.mu.Lock()
	r.loadErr = err
	r.mu.Unlock()
}

// FailSave makes every following Save fail with err (nil clears it).
func (r *MemoryRepository) FailSave(err error) {
	r.mu.Lock()
	r.saveErr = err
	r.mu.Unlock()
}

// Saves returns how many successful Save calls were made.
func (r *MemoryRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
