package services

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"blog-cms/cmd/api/dto"
	"blog-cms/query"
	"blog-cms/repositories"
)

// PublicService serves the read-only public API. Only GetBySlug writes, to
// count the view.
type PublicService struct {
	store *postStore
}

func NewPublicService(repo repositories.PostRepository, mu *sync.Mutex) *PublicService {
	return &PublicService{store: newPostStore(repo, mu)}
}

func (s *PublicService) List(ctx context.Context, params query.Params) dto.PostListResponseDTO {
	res := query.Run(s.store.loadForRead(ctx), params)
	return dto.PostListResponseDTO{
		Success:    true,
		Data:       dto.NewPostSummaryDTOs(res.Posts),
		Pagination: res.Pagination,
		Filters:    res.Facets,
	}
}

// GetBySlug returns the first published post with slug and counts one view.
// A failed save is logged and the post is still returned with the new count.
func (s *PublicService) GetBySlug(ctx context.Context, slug string) (*dto.PostDetailDTO, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	posts := s.store.loadForRead(ctx)
	idx := -1
	for i, p := range posts {
		if p.Slug == slug && p.IsPublished() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrPostNotFound
	}

	posts[idx].Views++
	// a failed save is already logged by the store
	_ = s.store.save(ctx, posts)

	out := dto.NewPostDetailDTO(posts[idx])
	return &out, nil
}

func (s *PublicService) Categories(ctx context.Context) []dto.CategoryDTO {
	return dto.NewCategoryDTOs(query.Categories(s.store.loadForRead(ctx)))
}

func (s *PublicService) Authors(ctx context.Context) []dto.AuthorDTO {
	return dto.NewAuthorDTOs(query.Authors(s.store.loadForRead(ctx)))
}

func (s *PublicService) Stats(ctx context.Context) query.BlogStats {
	return query.Stats(s.store.loadForRead(ctx))
}

// Health reports whether the store can be read. A store that does not exist yet
// counts as healthy.
func (s *PublicService) Health(ctx context.Context) error {
	_, err := s.store.load(ctx)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
