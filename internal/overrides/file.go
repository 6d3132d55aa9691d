package overrides

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"slayervault/pkg/models"
)

// FileStore keeps every override in a single JSON object and rewrites the
// whole file on each Put. A missing or unreadable file reads as empty.
type FileStore struct {
	Path string
	Log  *zap.Logger

	mu sync.Mutex
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{Path: path, Log: log}
}

func (s *FileStore) All(ctx context.Context) (map[string]models.Images, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

func (s *FileStore) Get(ctx context.Context, slug string) (*models.Images, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.read()[slug]
	if !ok {
		return nil, nil
	}
	return &img, nil
}

func (s *FileStore) Put(ctx context.Context, slug string, images models.Images) error {
	if err := validate(slug, images); err != nil {
		return err
	}
	if images.GalleryURLs == nil {
		images.GalleryURLs = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.read()
	all[slug] = images
	return s.write(all)
}

func (s *FileStore) read() map[string]models.Images {
	out := make(map[string]models.Images)
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.Log.Warn("read overrides file", zap.String("path", s.Path), zap.Error(err))
		}
		return out
	}
	if err := json.Unmarshal(b, &out); err != nil {
		s.Log.Warn("decode overrides file", zap.String("path", s.Path), zap.Error(err))
		return make(map[string]models.Images)
	}
	return out
}

// write replaces the file through a rename so readers never see a partial
// document.
func (s *FileStore) write(all map[string]models.Images) error {
	b, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal overrides: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure overrides dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".overrides-*.json")
	if err != nil {
		return fmt.Errorf("create temp overrides: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp overrides: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp overrides: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace overrides: %w", err)
	}
	return nil
}
