package manifest_test

import (
	"os"
	"testing"

	"cargo/internal/adapters/out/manifest"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/transit"

	"github.com/stretchr/testify/require"
)

func TestRenderer_RenderTransitDocument(t *testing.T) {
	renderer, err := manifest.NewRenderer(t.TempDir())
	require.NoError(t, err)

	via := kernel.NewUUID()
	doc, err := transit.NewDocument(
		kernel.NewUUID(), "20260115JKT003",
		kernel.NewUUID(), kernel.NewUUID(), &via,
		[]string{"CGO00000001", "CGO00000002"},
		kernel.NewUUID(), kernel.NewUUID(),
		"linehaul",
	)
	require.NoError(t, err)

	path, err := renderer.RenderTransitDocument(t.Context(), doc)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	require.Contains(t, text, "TRANSIT MANIFEST 20260115JKT003")
	require.Contains(t, text, "via hub: "+via.String())
	require.Contains(t, text, "orders (2):")
	require.Contains(t, text, "CGO00000001")
	require.Contains(t, text, "CGO00000002")
}

func TestNewRenderer_RequiresBaseDir(t *testing.T) {
	_, err := manifest.NewRenderer("")
	require.Error(t, err)
}
