package resources

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fmaprep/internal/content"
)

func TestView(t *testing.T) {
	cat, err := content.Default()
	require.NoError(t, err)

	out := ansi.Strip(New(cat).View(100, 80))
	for _, r := range cat.Resources() {
		assert.Contains(t, out, r.Title)
	}
}
