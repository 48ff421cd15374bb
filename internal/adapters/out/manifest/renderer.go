// Package manifest renders transit documents into printable text manifests
// for the loading dock.
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cargo/internal/core/domain/model/transit"
)

// Renderer writes one manifest file per transit document under a base
// directory and returns the file path as the artifact URI.
type Renderer struct {
	baseDir string
}

// NewRenderer creates the renderer rooted at baseDir, creating it if
// needed.
func NewRenderer(baseDir string) (*Renderer, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create manifest directory: %w", err)
	}
	return &Renderer{baseDir: baseDir}, nil
}

// RenderTransitDocument writes the manifest and returns its path. The
// document code is unique per hub and day, so re-rendering after an edit
// replaces the previous manifest.
func (r *Renderer) RenderTransitDocument(ctx context.Context, doc *transit.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TRANSIT MANIFEST %s\n", doc.Code())
	fmt.Fprintf(&b, "type: %s\n", doc.TypeTag())
	fmt.Fprintf(&b, "origin hub: %s\n", doc.OriginHubID().String())
	fmt.Fprintf(&b, "dest hub: %s\n", doc.DestHubID().String())
	if via := doc.TransitHubID(); via != nil {
		fmt.Fprintf(&b, "via hub: %s\n", via.String())
	}
	fmt.Fprintf(&b, "vehicle: %s\n", doc.VehicleID().String())
	fmt.Fprintf(&b, "driver: %s\n", doc.DriverID().String())
	fmt.Fprintf(&b, "orders (%d):\n", len(doc.TrackingCodes()))
	for _, code := range doc.TrackingCodes() {
		fmt.Fprintf(&b, "  %s\n", code)
	}

	path := filepath.Join(r.baseDir, doc.Code()+".txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}
