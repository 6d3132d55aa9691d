package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
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

var header = []string{
	"rank_order", "slug", "name", "faction", "rank", "technique_type", "technique",
	"tags", "vfx", "motion", "poster_url", "gallery_urls",
}

func main() {
	var (
		out    = flag.String("out", "data/characters.csv", "output CSV path")
		sortBy = flag.String("sort", "Popularity", "Popularity | Name | Rank")
		noOver = flag.Bool("no-overrides", false, "export base images only")
	)
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

	records, err := dataset.LoadPath(cfg.DatasetPath)
	if err != nil {
		logger.Fatal("load dataset failed", zap.Error(err))
	}

	var over map[string]models.Images
	if !*noOver {
		over, err = loadOverrides(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("load overrides failed", zap.Error(err))
		}
	}

	items := catalog.Query(records, over, catalog.QuerySpec{Sort: catalog.ParseSortKey(*sortBy)})
	if err := exportCharacters(*out, items); err != nil {
		logger.Fatal("export characters failed", zap.Error(err))
	}

	logger.Info("export finished", zap.Int("characters", len(items)), zap.String("out", *out))
}

func loadOverrides(ctx context.Context, cfg utils.Config, logger *zap.Logger) (map[string]models.Images, error) {
	backend, err := overrides.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer backend.Close()
	return backend.Store.All(ctx)
}

func exportCharacters(outPath string, items []models.Character) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeCSV(f, items)
}

func writeCSV(dst io.Writer, items []models.Character) error {
	w := csv.NewWriter(dst)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, c := range items {
		var kind, title string
		if c.Technique != nil {
			kind, title = string(c.Technique.Kind()), c.Technique.Title()
		}
		if err := w.Write([]string{
			strconv.Itoa(i + 1),
			c.Slug,
			c.Name,
			string(c.Faction),
			c.Rank,
			kind,
			title,
			strings.Join(c.Tags, "|"),
			string(c.Theme.VFX),
			string(c.Theme.Motion),
			c.Images.PosterURL,
			strings.Join(c.Images.GalleryURLs, "|"),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
