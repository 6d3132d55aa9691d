package overrides

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"slayervault/pkg/models"
)

// SQLStore keeps overrides in the image_overrides table.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (r *SQLStore) All(ctx context.Context) (map[string]models.Images, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT slug, poster_url, gallery_urls
		FROM image_overrides
	`)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.Images)
	for rows.Next() {
		var (
			slug        string
			img         models.Images
			galleryJSON string
		)
		if err := rows.Scan(&slug, &img.PosterURL, &galleryJSON); err != nil {
			return nil, fmt.Errorf("scan override row: %w", err)
		}
		if img.GalleryURLs, err = decodeGallery(galleryJSON); err != nil {
			return nil, fmt.Errorf("decode gallery for %s: %w", slug, err)
		}
		out[slug] = img
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *SQLStore) Get(ctx context.Context, slug string) (*models.Images, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT poster_url, gallery_urls
		FROM image_overrides
		WHERE slug = ?
	`, slug)

	var (
		img         models.Images
		galleryJSON string
	)
	if err := row.Scan(&img.PosterURL, &galleryJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get override: %w", err)
	}
	gallery, err := decodeGallery(galleryJSON)
	if err != nil {
		return nil, fmt.Errorf("decode gallery for %s: %w", slug, err)
	}
	img.GalleryURLs = gallery
	return &img, nil
}

func (r *SQLStore) Put(ctx context.Context, slug string, images models.Images) error {
	if err := validate(slug, images); err != nil {
		return err
	}
	if images.GalleryURLs == nil {
		images.GalleryURLs = []string{}
	}
	galleryJSON, err := json.Marshal(images.GalleryURLs)
	if err != nil {
		return fmt.Errorf("marshal gallery for %s: %w", slug, err)
	}

	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO image_overrides (slug, poster_url, gallery_urls, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slug) DO UPDATE SET
		  poster_url = excluded.poster_url,
		  gallery_urls = excluded.gallery_urls,
		  updated_at = excluded.updated_at
	`, slug, images.PosterURL, string(galleryJSON)); err != nil {
		return fmt.Errorf("upsert override %s: %w", slug, err)
	}
	return nil
}

func decodeGallery(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
