package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage writes images under Dir and serves them from BaseURL.
type Storage struct {
	Dir     string
	BaseURL string
}

func New(dir, baseURL string) *Storage {
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &Storage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Storage) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("imagen vacía")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", err
	}
	return s.BaseURL + "/" + name, nil
}
