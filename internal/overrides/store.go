// Package overrides persists admin-supplied replacement images keyed by
// character slug.
package overrides

import (
	"context"
	"errors"
	"strings"

	"slayervault/pkg/models"
)

var ErrInvalidPayload = errors.New("invalid payload")

// Store is the override key-value store. Implementations return a fresh map
// from All; callers may keep or modify it.
type Store interface {
	All(ctx context.Context) (map[string]models.Images, error)
	// Get returns nil when slug has no override.
	Get(ctx context.Context, slug string) (*models.Images, error)
	Put(ctx context.Context, slug string, images models.Images) error
}

func validate(slug string, images models.Images) error {
	if strings.TrimSpace(slug) == "" {
		return ErrInvalidPayload
	}
	if images.GalleryURLs == nil {
		return nil
	}
	for _, u := range images.GalleryURLs {
		if strings.TrimSpace(u) == "" {
			return ErrInvalidPayload
		}
	}
	return nil
}
