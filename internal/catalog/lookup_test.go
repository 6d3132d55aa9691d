package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slayervault/pkg/models"
)

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "tanjiro-kamado", NormalizeSlug("  Tanjiro-Kamado "))
	assert.Equal(t, "kyojuro rengoku", NormalizeSlug("Kyojuro%20Rengoku"))
	// undecodable input is kept as is
	assert.Equal(t, "bad%zz", NormalizeSlug("BAD%zz"))
}

func TestFindBySlug(t *testing.T) {
	records := fixture()

	got, ok := FindBySlug(records, "DOMA")
	require.True(t, ok)
	assert.Equal(t, "Doma", got.Name)

	_, ok = FindBySlug(records, "zenitsu-agatsuma")
	assert.False(t, ok)

	_, ok = FindBySlug(records, "   ")
	assert.False(t, ok)
}

func TestTags(t *testing.T) {
	got := Tags(fixture())
	assert.Equal(t, []string{"Hashira", "Ice", "Leader", "Lower Moon", "Protagonist", "Threads", "Upper Moon", "Water"}, got)

	empty := Tags(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	assert.Equal(t, []string{"alpha", "Beta"}, Tags([]models.Character{
		rec("x", "X", models.FactionCorps, "Corps", nil, "Beta", "alpha", "Beta"),
	}))
}
