package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrinter(t *testing.T) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	return New(out, errOut), out, errOut
}

func TestSuccess(t *testing.T) {
	p, out, _ := newTestPrinter(t)

	p.Success("added %s\n", "loop.png")
	p.Success("✓ already prefixed\n")

	assert.Equal(t, "✓ added loop.png\n✓ already prefixed\n", out.String())
}

func TestWarning(t *testing.T) {
	p, out, _ := newTestPrinter(t)

	p.Warning("%s already listed\n", "loop.png")

	assert.Equal(t, "⚠️  loop.png already listed\n", out.String())
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		p, out, errOut := newTestPrinter(t)
		err := p.Error("Image not found", "ghost.png is not in images", nil)
		require.Error(t, err)
		assert.Equal(t, "Image not found", err.Error())
		assert.Empty(t, out.String())
		assert.Contains(t, errOut.String(), "ghost.png is not in images")
	})

	t.Run("numbers multiple suggestions", func(t *testing.T) {
		p, _, errOut := newTestPrinter(t)
		err := p.Error("Bad topic", "", []string{"First option", "Second option"})
		require.Error(t, err)
		assert.Contains(t, errOut.String(), "Either:\n  1. First option\n  2. Second option\n")
	})

	t.Run("prints a single suggestion bare", func(t *testing.T) {
		p, _, errOut := newTestPrinter(t)
		_ = p.Error("Bad topic", "", []string{"Use 0-11"})
		assert.Contains(t, errOut.String(), "\nUse 0-11\n")
		assert.NotContains(t, errOut.String(), "Either:")
	})
}
