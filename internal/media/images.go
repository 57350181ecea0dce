// Package media stores post image attachments and derives webp thumbnails.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"inkwell/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp decoding
)

const (
	// MaxUploadBytes caps accepted attachment size.
	MaxUploadBytes = 5 * 1024 * 1024
	// thumbWidth is the width of the derived thumbnail variant.
	thumbWidth = 320
	// thumbQuality is the webp encoding quality for thumbnails.
	thumbQuality = 80
)

// Store holds the media directory layout: originals under posts/, derived
// thumbnails under posts/thumbs/.
type Store struct {
	dir string
}

// NewStore creates the media directory tree if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "posts", "thumbs"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveImage validates and stores an uploaded image, returning the relative
// path recorded on the post. The original bytes are kept as-is; a webp
// thumbnail is derived next to it.
func (s *Store) SaveImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", models.NewValidationError("Empty image upload")
	}
	if len(data) > MaxUploadBytes {
		return "", models.NewValidationError("Image exceeds the 5MB limit")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", models.NewValidationError("Unsupported image format")
	}

	name := uuid.NewString()
	relPath := filepath.Join("posts", name+"."+format)
	if err := os.WriteFile(filepath.Join(s.dir, relPath), data, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	if err := s.writeThumbnail(img, name); err != nil {
		// The original is already stored; a missing thumbnail is not worth
		// failing the upload over.
		return relPath, nil
	}
	return relPath, nil
}

// ThumbnailPath returns the relative path of the webp thumbnail derived from
// the stored image path.
func ThumbnailPath(storedPath string) string {
	base := filepath.Base(storedPath)
	ext := filepath.Ext(base)
	return filepath.Join("posts", "thumbs", base[:len(base)-len(ext)]+".webp")
}

func (s *Store) writeThumbnail(src image.Image, name string) error {
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return fmt.Errorf("degenerate image bounds")
	}

	width := thumbWidth
	if bounds.Dx() < width {
		width = bounds.Dx()
	}
	height := bounds.Dy() * width / bounds.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	out, err := webp.EncodeRGBA(dst, thumbQuality)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, "posts", "thumbs", name+".webp")
	return os.WriteFile(path, out, 0o644)
}
