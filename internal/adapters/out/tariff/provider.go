// Package tariff quotes shipping prices from a flat rate card. Lane-aware
// pricing lives in a separate billing system; this provider covers the
// invoice estimate the reweigh workflow needs.
package tariff

import (
	"context"
	"fmt"
	"math"

	"cargo/internal/core/domain/model/kernel"
)

// Provider quotes a base price plus a per-kilogram rate. Chargeable weight
// is rounded up to the next whole kilogram before pricing.
type Provider struct {
	basePrice int64
	perKg     int64
}

// NewProvider creates a rate provider from the configured rate card.
func NewProvider(basePrice, perKg int64) (*Provider, error) {
	if basePrice < 0 || perKg <= 0 {
		return nil, fmt.Errorf("invalid rate card: base %d, per kg %d", basePrice, perKg)
	}
	return &Provider{basePrice: basePrice, perKg: perKg}, nil
}

// Quote prices the chargeable weight for the lane. The hub pair is accepted
// for interface compatibility; the flat card prices every lane the same.
func (p *Provider) Quote(ctx context.Context, sourceHubID, destHubID kernel.UUID, chargeableWeight float64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if chargeableWeight <= 0 {
		return 0, fmt.Errorf("chargeable weight must be positive, got %f", chargeableWeight)
	}

	kg := int64(math.Ceil(chargeableWeight))
	return p.basePrice + kg*p.perKg, nil
}
