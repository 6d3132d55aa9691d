package sync

import (
	"time"

	"slayervault/pkg/models"
)

const (
	EventOverrideUpdate = "overrides.update"
	EventOverrideReload = "overrides.reload"
)

type OverrideEvent struct {
	Type   string         `json:"type"` // "overrides.update" or "overrides.reload"
	Slug   string         `json:"slug,omitempty"`
	Images *models.Images `json:"images,omitempty"`
	At     time.Time      `json:"at"`
}
