package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"slayervault/internal/catalog"
	"slayervault/internal/overrides"
	"slayervault/pkg/dataset"
	"slayervault/pkg/logging"
	"slayervault/pkg/models"
	"slayervault/pkg/utils"
)

// row is one image override read from CSV. Files written by export-csv
// import unchanged.
type row struct {
	Slug   string
	Images models.Images
}

func main() {
	in := flag.String("in", "data/overrides.csv", "input CSV with slug, poster_url, gallery_urls columns")
	flag.Parse()

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	f, err := os.Open(*in)
	if err != nil {
		logger.Fatal("open input", zap.Error(err))
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		logger.Fatal("read csv failed", zap.Error(err))
	}

	records, err := dataset.LoadPath(cfg.DatasetPath)
	if err != nil {
		logger.Fatal("load dataset failed", zap.Error(err))
	}

	backend, err := overrides.Open(cfg, logger)
	if err != nil {
		logger.Fatal("open override store", zap.Error(err))
	}
	defer backend.Close()
	store := backend.Store

	n := 0
	for _, r := range rows {
		if _, ok := catalog.FindBySlug(records, r.Slug); !ok {
			logger.Warn("override for unknown character", zap.String("slug", r.Slug))
		}
		if err := store.Put(ctx, r.Slug, r.Images); err != nil {
			logger.Fatal("import override failed", zap.String("slug", r.Slug), zap.Error(err))
		}
		n++
	}

	logger.Info("import finished", zap.Int("overrides", n), zap.String("in", *in))
}

// readRows skips rows without a slug or without any image.
func readRows(src io.Reader) ([]row, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if _, ok := header["slug"]; !ok {
		return nil, errors.New("missing slug column")
	}

	var out []row
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) == 0 {
			continue
		}

		slug := valueAt(header, rec, "slug")
		poster := valueAt(header, rec, "poster_url")
		gallery := splitList(valueAt(header, rec, "gallery_urls"))
		if slug == "" || (poster == "" && len(gallery) == 0) {
			continue
		}
		out = append(out, row{
			Slug:   slug,
			Images: models.Images{PosterURL: poster, GalleryURLs: gallery},
		})
	}
	return out, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	rec, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(rec))
	for idx, name := range rec {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, rec []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// splitList accepts "|" separators as written by export-csv.
func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, "|") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
