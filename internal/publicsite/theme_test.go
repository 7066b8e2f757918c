package publicsite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeForKnownTemplates(t *testing.T) {
	assert.Equal(t, "Classic", ThemeFor(1).Name)
	assert.Equal(t, "Harvest", ThemeFor(2).Name)
	assert.Equal(t, "Minimal", ThemeFor(3).Name)
}

func TestThemeForFallsBackToClassic(t *testing.T) {
	for _, n := range []int{0, 4, -1, 100} {
		theme := ThemeFor(n)
		assert.Equal(t, 1, theme.Number)
		assert.Equal(t, "Classic", theme.Name)
	}
}
