package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"

	"blog-cms/cmd/api/dto"
	"blog-cms/internal/logger"
	"blog-cms/eventbus"
	"blog-cms/events"
	"blog-cms/models"
	"blog-cms/repositories"
	"blog-cms/uploads"
)

const DefaultMaxGallery = 10

// PostInput is one submission of the dashboard post form.
type PostInput struct {
	Form      dto.PostFormDTO
	Thumbnail *multipart.FileHeader
	ImageFull *multipart.FileHeader
	Gallery   []*multipart.FileHeader
}

// AdminService implements dashboard CRUD directly over the post store.
type AdminService struct {
	store      *postStore
	uploads    *uploads.Storage
	bus        eventbus.EventBus
	topic      string
	maxGallery int
	now        func() time.Time

	publishing sync.WaitGroup
}

type AdminOptions struct {
	Uploads    *uploads.Storage
	Bus        eventbus.EventBus
	Topic      string
	MaxGallery int
	Now        func() time.Time
}

func NewAdminService(repo repositories.PostRepository, mu *sync.Mutex, opts AdminOptions) *AdminService {
	s := &AdminService{
		store:      newPostStore(repo, mu),
		uploads:    opts.Uploads,
		bus:        opts.Bus,
		topic:      opts.Topic,
		maxGallery: opts.MaxGallery,
		now:        opts.Now,
	}
	if s.bus == nil {
		s.bus = eventbus.NopEventBus{}
	}
	if s.maxGallery <= 0 {
		s.maxGallery = DefaultMaxGallery
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// List returns the whole collection, drafts included.
func (s *AdminService) List(ctx context.Context) []models.Post {
	return s.store.loadForRead(ctx)
}

func (s *AdminService) Get(ctx context.Context, id string) (*models.Post, error) {
	posts := s.store.loadForRead(ctx)
	idx := indexByID(posts, id)
	if idx < 0 {
		return nil, ErrPostNotFound
	}
	return &posts[idx], nil
}

func (s *AdminService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	files, err := s.saveUploads(in)
	if err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	posts, err := s.store.loadForWrite(ctx)
	if err != nil {
		s.discardUploads(files)
		return nil, err
	}

	now := s.now().UTC()
	today := now.Format(models.DateLayout)
	f := in.Form

	p := models.Post{
		ID:       s.nextID(posts, now),
		Status:   normalizeStatus(f.Status),
		Date:     today,
		Comments: []json.RawMessage{},
	}
	applyForm(&p, f)
	p.UpdatedAt = today

	p.Thumbnail = firstNonEmpty(files.thumbnail, f.ThumbnailURL)
	p.ImageFull = firstNonEmpty(files.imageFull, f.ImageFullURL)
	switch {
	case len(files.gallery) > 0:
		p.Gallery = files.gallery
	default:
		p.Gallery = splitCSV(f.GalleryURLs)
	}

	posts = append(posts, p)
	if err := s.store.save(ctx, posts); err != nil {
		s.discardUploads(files)
		return nil, err
	}

	s.publish(ctx, events.PostCreated, p)
	return &p, nil
}

// Update overwrites every form-controlled field of the post. Images change only
// when a new file or URL is supplied, status only when supplied.
func (s *AdminService) Update(ctx context.Context, id string, in PostInput) (*models.Post, error) {
	files, err := s.saveUploads(in)
	if err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	posts, err := s.store.loadForWrite(ctx)
	if err != nil {
		s.discardUploads(files)
		return nil, err
	}
	idx := indexByID(posts, id)
	if idx < 0 {
		s.discardUploads(files)
		return nil, ErrPostNotFound
	}

	f := in.Form
	p := posts[idx]
	applyForm(&p, f)
	p.UpdatedAt = s.now().UTC().Format(models.DateLayout)
	if strings.TrimSpace(f.Status) != "" {
		p.Status = normalizeStatus(f.Status)
	}

	if v := firstNonEmpty(files.thumbnail, f.ThumbnailURL); v != nil {
		p.Thumbnail = v
	}
	if v := firstNonEmpty(files.imageFull, f.ImageFullURL); v != nil {
		p.ImageFull = v
	}
	if len(files.gallery) > 0 {
		p.Gallery = files.gallery
	} else if strings.TrimSpace(f.GalleryURLs) != "" {
		p.Gallery = splitCSV(f.GalleryURLs)
	}

	posts[idx] = p
	if err := s.store.save(ctx, posts); err != nil {
		s.discardUploads(files)
		return nil, err
	}

	s.publish(ctx, events.PostUpdated, p)
	return &p, nil
}

func (s *AdminService) Delete(ctx context.Context, id string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	posts, err := s.store.loadForWrite(ctx)
	if err != nil {
		return err
	}
	idx := indexByID(posts, id)
	if idx < 0 {
		return ErrPostNotFound
	}

	removed := posts[idx]
	remaining := make([]models.Post, 0, len(posts)-1)
	for _, p := range posts {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	if err := s.store.save(ctx, remaining); err != nil {
		return err
	}

	s.publish(ctx, events.PostDeleted, removed)
	return nil
}

// Wait blocks until every in-flight event publish has finished.
func (s *AdminService) Wait() {
	s.publishing.Wait()
}

// nextID is the creation time in unix millis, bumped until unique.
func (s *AdminService) nextID(posts []models.Post, now time.Time) string {
	n := now.UnixMilli()
	for {
		id := strconv.FormatInt(n, 10)
		if indexByID(posts, id) < 0 {
			return id
		}
		n++
	}
}

func (s *AdminService) publish(ctx context.Context, t events.EventType, p models.Post) {
	evt, err := eventbus.NewJSONEvent("", string(t), events.NewPostChangedEvent(t, "api", p, s.now()))
	if err != nil {
		logger.Log.Errorf("failed to build %s event for post %s: %v", t, p.ID, err)
		return
	}

	ctx = context.WithoutCancel(ctx)
	s.publishing.Add(1)
	go func() {
		defer s.publishing.Done()
		pubCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := s.bus.Publish(pubCtx, s.topic, evt); err != nil {
			logger.ErrorWithFields("failed to publish post event", logger.Fields{
				"type":    string(t),
				"post_id": p.ID,
				"error":   err.Error(),
			})
		}
	}()
}

type savedFiles struct {
	thumbnail string
	imageFull string
	gallery   []string
}

func (f savedFiles) all() []string {
	out := make([]string, 0, 2+len(f.gallery))
	if f.thumbnail != "" {
		out = append(out, f.thumbnail)
	}
	if f.imageFull != "" {
		out = append(out, f.imageFull)
	}
	return append(out, f.gallery...)
}

// saveUploads writes every file of the submission or none of them.
func (s *AdminService) saveUploads(in PostInput) (savedFiles, error) {
	var out savedFiles
	if in.Thumbnail == nil && in.ImageFull == nil && len(in.Gallery) == 0 {
		return out, nil
	}
	if len(in.Gallery) > s.maxGallery {
		return out, fmt.Errorf("%w: %d > %d", ErrTooManyFiles, len(in.Gallery), s.maxGallery)
	}
	if s.uploads == nil {
		return out, fmt.Errorf("uploads are not configured")
	}

	var err error
	if in.Thumbnail != nil {
		if out.thumbnail, err = s.uploads.Save(uploads.FieldThumbnail, in.Thumbnail); err != nil {
			return savedFiles{}, err
		}
	}
	if in.ImageFull != nil {
		if out.imageFull, err = s.uploads.Save(uploads.FieldImageFull, in.ImageFull); err != nil {
			s.discardUploads(out)
			return savedFiles{}, err
		}
	}
	for _, fh := range in.Gallery {
		path, err := s.uploads.Save(uploads.FieldGallery, fh)
		if err != nil {
			s.discardUploads(out)
			return savedFiles{}, err
		}
		out.gallery = append(out.gallery, path)
	}
	return out, nil
}

func (s *AdminService) discardUploads(files savedFiles) {
	if s.uploads == nil {
		return
	}
	for _, p := range files.all() {
		if err := s.uploads.Remove(p); err != nil {
			logger.Log.Warnf("failed to remove upload %s: %v", p, err)
		}
	}
}

// applyForm copies the text fields shared by create and update.
func applyForm(p *models.Post, f dto.PostFormDTO) {
	p.Title = f.Title
	p.Slug = strings.TrimSpace(f.Slug)
	if p.Slug == "" {
		p.Slug = slug.Make(f.Title)
	}
	p.MetaTitle = f.MetaTitle
	p.MetaDescription = f.MetaDescription
	p.Keywords = splitCSV(f.Keywords)
	p.Author = f.Author
	p.AuthorAvatar = f.AuthorAvatar
	p.AuthorBio = f.AuthorBio
	p.AuthorLink = f.AuthorLink
	p.Category = f.Category
	p.Tags = splitCSV(f.Tags)
	p.ReadTime = f.ReadTime
	p.WordCount = atoiOrZero(f.WordCount)
	p.ReadingLevel = f.ReadingLevel
	p.Featured = f.Featured == "on"
	p.Excerpt = f.Excerpt
	p.Content = f.Content
	p.RelatedPosts = splitCSV(f.RelatedPosts)
	p.Series = f.Series
	p.Source = f.Source
	p.Language = f.Language
	p.CanonicalURL = f.CanonicalURL
}

// splitCSV splits on commas, trims each entry and drops empty ones. Duplicates
// are kept.
func splitCSV(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return models.StatusPublished
	}
	return s
}

// atoiOrZero parses a leading integer the way the dashboard form expects:
// "12 words" is 12, anything unparsable is 0.
func atoiOrZero(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return &v
		}
	}
	return nil
}
