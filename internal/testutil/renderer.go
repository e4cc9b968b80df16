package testutil

import (
	"bytes"
	"testing"

	"github.com/leapstack-labs/dsfetch/internal/cli/output"
)

// NewRenderer returns a plain-text renderer writing both streams into the
// returned buffer.
func NewRenderer(t testing.TB) (*output.Renderer, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	return output.NewRendererWithTTY(buf, buf, false, output.ModePlain), buf
}
