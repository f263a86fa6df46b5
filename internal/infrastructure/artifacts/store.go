// Package artifacts persists diagnostic screenshots to disk.
package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
)

var _ output.ArtifactPort = (*Store)(nil)

// Store writes screenshots under a single directory, downscaling wide
// captures so a long run stays reasonably sized on disk.
type Store struct {
	dir      string
	maxWidth int
	quality  int
	logger   output.LoggerPort
}

type Config struct {
	Dir      string
	MaxWidth int
	Quality  int
}

func NewStore(cfg Config, logger output.LoggerPort) (*Store, error) {
	if cfg.Dir == "" {
		cfg.Dir = "screenshots"
	}
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = 1280
	}
	if cfg.Quality <= 0 {
		cfg.Quality = 80
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{dir: cfg.Dir, maxWidth: cfg.MaxWidth, quality: cfg.Quality, logger: logger}, nil
}

// Save decodes, optionally downscales, and writes the screenshot as JPEG.
// The returned path is what Discard expects back.
func (s *Store) Save(ctx context.Context, name string, shot *entity.Screenshot) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(shot.Data))
	if err != nil {
		return "", fmt.Errorf("decode screenshot: %w", err)
	}

	if img.Bounds().Dx() > s.maxWidth {
		img = imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)
	}

	path := filepath.Join(s.dir, name+".jpg")
	if err := s.encodeTo(path, img); err != nil {
		return "", err
	}

	s.logger.Debug("Screenshot saved", "path", path)
	return path, nil
}

func (s *Store) encodeTo(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create screenshot file: %w", err)
	}
	defer f.Close()

	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(s.quality)); err != nil {
		return fmt.Errorf("encode screenshot: %w", err)
	}
	return nil
}

// Discard removes previously saved screenshots. Missing files are ignored.
func (s *Store) Discard(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("Screenshot cleanup failed", "path", p, "error", err)
		}
	}
}
