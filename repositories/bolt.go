package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"blog-cms/models"
)

const (
	bucketCollections = "collections"
	keyPosts          = "posts"
)

var errBucketNotFound = errors.New("bucket not found")

// BoltRepository keeps the JSON-encoded collection under a single key of a bbolt file.
type BoltRepository struct {
	db *bbolt.DB
}

// OpenBoltRepository opens (or creates) the bbolt file at path.
func OpenBoltRepository(path string) (*BoltRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bolt directory: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt file %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCollections))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) Close() error {
	return r.db.Close()
}

func (r *BoltRepository) Load(ctx context.Context) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr("load", err)
	}
	var posts []models.Post
	err := r.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketCollections))
		if b == nil {
			return errBucketNotFound
		}
		data := b.Get([]byte(keyPosts))
		if data == nil {
			return os.ErrNotExist
		}
		return json.Unmarshal(data, &posts)
	})
	if err != nil {
		return nil, storageErr("bolt load", err)
	}
	return posts, nil
}

func (r *BoltRepository) Save(ctx context.Context, posts []models.Post) error {
	if err := ctx.Err(); err != nil {
		return storageErr("save", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.Marshal(posts)
	if err != nil {
		return storageErr("encode", err)
	}
	err = r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketCollections))
		if b == nil {
			return errBucketNotFound
		}
		return b.Put([]byte(keyPosts), data)
	})
	if err != nil {
		return storageErr("bolt save", err)
	}
	return nil
}
