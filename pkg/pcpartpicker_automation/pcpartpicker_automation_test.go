package pcpartpicker_automation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLinks(t *testing.T) {
	links := []string{"https://pcpartpicker.com/product/fK9wrH/amd-ryzen-7-7800x3d"}

	prefix, err := checkLinks("us", links)
	require.NoError(t, err)
	assert.Equal(t, "https://pcpartpicker.com/", prefix)

	_, err = checkLinks("us", nil)
	assert.ErrorIs(t, err, ErrNoLinks)

	_, err = checkLinks("us", []string{"https://example.com/product/x"})
	assert.ErrorIs(t, err, ErrInvalidLink)

	_, err = checkLinks("not a region!", links)
	assert.ErrorIs(t, err, ErrInvalidRegion)
}

func TestExportBuildRejectsEmptyBuild(t *testing.T) {
	export, err := ExportBuild("us", nil)
	assert.Nil(t, export)
	assert.ErrorIs(t, err, ErrNoLinks)
}
