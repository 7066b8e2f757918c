package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIcon(t *testing.T) {
	assert.Equal(t, "credit", ResolveIcon("credit"))
	assert.Equal(t, "pds", ResolveIcon("pds"))

	// Unknown and empty names fall back to the generic glyph
	assert.Equal(t, defaultIcon, ResolveIcon("tractor-dance"))
	assert.Equal(t, defaultIcon, ResolveIcon(""))
}
