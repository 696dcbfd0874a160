// Package uploads stores dashboard image uploads on local disk under per-field
// subfolders and returns their public paths.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrNotImage     = errors.New("only image files are allowed")
	ErrFileTooLarge = errors.New("file too large")
	ErrNoFile       = errors.New("nil file header")
)

const DefaultMaxSize int64 = 5 * 1024 * 1024

// Field names the dashboard form uses for files.
const (
	FieldThumbnail = "thumbnail"
	FieldImageFull = "imageFull"
	FieldGallery   = "gallery"
)

// Subfolder maps a form field to the directory its files are stored in.
func Subfolder(field string) string {
	switch field {
	case FieldThumbnail:
		return "thumbnails"
	case FieldImageFull:
		return "full-images"
	case FieldGallery:
		return "gallery"
	default:
		return "others"
	}
}

type Storage struct {
	dir       string
	urlPrefix string
	maxSize   int64
	now       func() time.Time
}

// New returns a Storage rooted at dir. Files are addressed publicly as
// urlPrefix/<subfolder>/<name>.
func New(dir, urlPrefix string, maxSize int64) *Storage {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	return &Storage{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxSize:   maxSize,
		now:       time.Now,
	}
}

func (s *Storage) Dir() string { return s.dir }

// Save validates and writes one uploaded file and returns its public path.
func (s *Storage) Save(field string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNoFile
	}
	if fh.Size > s.maxSize {
		return "", fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, fh.Filename, fh.Size, s.maxSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s detected as %s", ErrNotImage, fh.Filename, mt.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	ext := storedExtension(fh.Filename, mt)
	sub := Subfolder(field)
	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString(), ext)

	targetDir := filepath.Join(s.dir, sub)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	dst, err := os.OpenFile(filepath.Join(targetDir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	// the limit guards against a header that under-reports the size
	n, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	closeErr := dst.Close()
	if err == nil && n > s.maxSize {
		err = fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, fh.Filename, s.maxSize)
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}

	return path.Join(s.urlPrefix, sub, name), nil
}

// Remove deletes a file previously returned by Save. Paths outside the storage
// prefix are ignored.
func (s *Storage) Remove(publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, s.urlPrefix+"/")
	if !ok || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// storedExtension trusts the client extension only when it names the sniffed
// type (.jpeg for image/jpeg); otherwise the detected extension wins.
func storedExtension(filename string, mt *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" {
		if claimed, _, err := mime.ParseMediaType(mime.TypeByExtension(ext)); err == nil && mt.Is(claimed) {
			return ext
		}
	}
	return mt.Extension()
}
