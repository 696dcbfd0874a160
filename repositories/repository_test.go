package repositories_test

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-cms/models"
	"blog-cms/repositories"
)

func samplePosts() []models.Post {
	thumb := "/uploads/thumbnails/a.png"
	return []models.Post{
		{
			ID:        "1700000000000",
			Slug:      "hello",
			Title:     "Hello",
			Status:    models.StatusPublished,
			Tags:      []string{"go", "go"},
			Thumbnail: &thumb,
			Views:     3,
			Comments:  []json.RawMessage{json.RawMessage(`"nice post"`)},
			Date:      "2024-01-01",
		},
		{ID: "1700000000001", Slug: "draft", Status: models.StatusDraft},
	}
}

func TestJSONFileRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	repo := repositories.NewJSONFileRepository(path)

	require.NoError(t, repo.Save(ctx, samplePosts()))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, samplePosts(), got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {\n    \"id\": \"1700000000000\"")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestJSONFileRepositoryLoadErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	missing := repositories.NewJSONFileRepository(filepath.Join(dir, "missing.json"))
	_, err := missing.Load(ctx)
	assert.ErrorIs(t, err, repositories.ErrStorage)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	brokenPath := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(brokenPath, []byte("{not json"), 0o644))
	_, err = repositories.NewJSONFileRepository(brokenPath).Load(ctx)
	assert.ErrorIs(t, err, repositories.ErrStorage)
	assert.False(t, errors.Is(err, fs.ErrNotExist))
}

func TestJSONFileRepositorySaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	repo := repositories.NewJSONFileRepository(path)

	require.NoError(t, repo.Save(ctx, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestMemoryRepositoryIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryRepository(samplePosts()...)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	loaded[0].Tags[0] = "mutated"
	*loaded[0].Thumbnail = "mutated"

	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "go", again[0].Tags[0])
	assert.Equal(t, "/uploads/thumbnails/a.png", *again[0].Thumbnail)
}

func TestMemoryRepositoryFailures(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryRepository()
	boom := errors.New("boom")

	repo.FailLoad(boom)
	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, repositories.ErrStorage)
	assert.ErrorIs(t, err, boom)

	repo.FailSave(boom)
	assert.ErrorIs(t, repo.Save(ctx, samplePosts()), repositories.ErrStorage)
	assert.Equal(t, 0, repo.Saves())

	repo.FailSave(nil)
	require.NoError(t, repo.Save(ctx, samplePosts()))
	assert.Equal(t, 1, repo.Saves())
}

func TestBoltRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := repositories.OpenBoltRepository(filepath.Join(t.TempDir(), "posts.db"))
	require.NoError(t, err)
	defer func() { _ = repo.Close() }()

	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, repositories.ErrStorage)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, repo.Save(ctx, samplePosts()))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, samplePosts(), got)

	require.NoError(t, repo.Save(ctx, samplePosts()[1:]))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "draft", got[0].Slug)
}
