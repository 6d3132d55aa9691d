package catalog

import (
	"context"

	"go.uber.org/zap"

	"slayervault/pkg/models"
)

// OverrideSource supplies the current image overrides keyed by slug.
type OverrideSource interface {
	All(ctx context.Context) (map[string]models.Images, error)
}

type Repo struct {
	Records   []models.Character
	Overrides OverrideSource
	Log       *zap.Logger
}

func NewRepo(records []models.Character, overrides OverrideSource, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo{Records: records, Overrides: overrides, Log: log}
}

// overrides never fails: a broken store means the catalog shows default art.
func (r *Repo) overrides(ctx context.Context) map[string]models.Images {
	if r.Overrides == nil {
		return nil
	}
	m, err := r.Overrides.All(ctx)
	if err != nil {
		r.Log.Warn("load overrides failed, serving default images", zap.Error(err))
		return nil
	}
	return m
}

func (r *Repo) List(ctx context.Context, q QuerySpec) []models.Character {
	return Query(r.Records, r.overrides(ctx), q)
}

// Get returns nil when no record matches slug.
func (r *Repo) Get(ctx context.Context, slug string) *models.Character {
	rec, ok := FindBySlug(r.Records, slug)
	if !ok {
		return nil
	}
	rec = WithOverride(rec, r.overrides(ctx))
	return &rec
}

func (r *Repo) Tags() []string {
	return Tags(r.Records)
}
