package catalog

import (
	"net/url"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"slayervault/pkg/models"
)

// NormalizeSlug URL-decodes (keeping the raw value when decoding fails),
// lower-cases and trims a slug taken from a request path.
func NormalizeSlug(slug string) string {
	if decoded, err := url.PathUnescape(slug); err == nil {
		slug = decoded
	}
	return strings.TrimSpace(strings.ToLower(slug))
}

func FindBySlug(records []models.Character, slug string) (models.Character, bool) {
	want := NormalizeSlug(slug)
	if want == "" {
		return models.Character{}, false
	}
	for _, rec := range records {
		if NormalizeSlug(rec.Slug) == want {
			return rec, true
		}
	}
	return models.Character{}, false
}

// Tags lists every distinct tag in records, collated ascending.
func Tags(records []models.Character) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range records {
		for _, t := range rec.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	collate.New(language.English).SortStrings(out)
	if out == nil {
		out = []string{}
	}
	return out
}
