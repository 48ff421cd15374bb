package cmd

import "time"

// Config carries everything the composition root needs to wire the
// application. Values come from the environment; see cmd/app/main.go.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// PickupReadyDelay is how long a new order stays in Draft before the
	// release job promotes it to ReadyForPickup.
	PickupReadyDelay time.Duration

	// SystemActorID identifies scheduled jobs in the order audit trail.
	SystemActorID string

	// Rate card for invoice estimates.
	RateBasePrice int64
	RatePerKg     int64

	// NotifyEndpoint receives order event webhooks.
	NotifyEndpoint string

	// EvidenceDir and ManifestDir are local directories for bypass proof
	// files and printable transit manifests.
	EvidenceDir string
	ManifestDir string
}
