package repositories

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"blog-cms/models"
)

// JSONFileRepository stores the collection as an indented JSON array in a single file.
type JSONFileRepository struct {
	path string
}

func NewJSONFileRepository(path string) *JSONFileRepository {
	return &JSONFileRepository{path: path}
}

func (r *JSONFileRepository) Path() string { return r.path }

// Load reads and decodes the whole file. A missing file is reported as ErrStorage
// wrapping fs.ErrNotExist so callers can tell "empty" from "broken".
func (r *JSONFileRepository) Load(ctx context.Context) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr("load", err)
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, storageErr("read "+r.path, err)
	}
	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, storageErr("decode "+r.path, err)
	}
	return posts, nil
}

// Save rewrites the whole file. The new content goes to a temp file in the same
// directory first and is renamed over the old one.
func (r *JSONFileRepository) Save(ctx context.Context, posts []models.Post) error {
	if err := ctx.Err(); err != nil {
		return storageErr("save", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return storageErr("encode", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storageErr("mkdir "+dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return storageErr("create temp", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return storageErr("write "+tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return storageErr("close "+tmpName, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)
		return storageErr("rename "+tmpName, err)
	}
	return nil
}
