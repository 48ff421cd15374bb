package services

import (
	"errors"
	"sort"

	"cargo/internal/core/domain/model/courier"
	"cargo/internal/core/domain/model/kernel"
)

// ErrNoCourierAvailable is returned when no eligible courier exists for an
// assignment. Auto-assignment callers log and swallow it; order intake still
// succeeds without a courier.
var ErrNoCourierAvailable = errors.New("no courier available")

// CourierBalancer selects couriers for pickup and delivery tasks. It carries
// two deliberately different rankings:
//
//   - PickForAuto, used by automatic assignment at order creation, is a pure
//     recency round-robin: the eligible courier idle the longest wins.
//   - Suggest, used when an operator requests candidates, ranks by open-task
//     count and then by distance to the order's origin.
//
// The divergence is documented business behavior, not an inconsistency to
// unify.
type CourierBalancer struct{}

// NewCourierBalancer creates a CourierBalancer.
func NewCourierBalancer() CourierBalancer {
	return CourierBalancer{}
}

// PickForAuto returns the eligible courier with the oldest last-assignment
// timestamp. Couriers registered at hubID are preferred; when none match the
// whole eligible pool is considered. Ties keep the earliest candidate in the
// input order.
func (b CourierBalancer) PickForAuto(couriers []*courier.Courier, hubID kernel.UUID) (*courier.Courier, error) {
	eligible := filterEligible(couriers)
	if len(eligible) == 0 {
		return nil, ErrNoCourierAvailable
	}

	pool := make([]*courier.Courier, 0, len(eligible))
	for _, c := range eligible {
		if c.HubID().IsEqual(hubID) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = eligible
	}

	best := pool[0]
	for _, c := range pool[1:] {
		if c.LastAssignedAt().Before(best.LastAssignedAt()) {
			best = c
		}
	}
	return best, nil
}

// Suggest returns all eligible couriers ranked for manual assignment: fewest
// open tasks first, then nearest to origin. The sort is stable so equal
// candidates keep their input order.
func (b CourierBalancer) Suggest(couriers []*courier.Courier, origin kernel.GeoPoint) ([]*courier.Courier, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	ranked := filterEligible(couriers)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].OpenTaskCount() != ranked[j].OpenTaskCount() {
			return ranked[i].OpenTaskCount() < ranked[j].OpenTaskCount()
		}
		return ranked[i].Location().DistanceTo(origin) < ranked[j].Location().DistanceTo(origin)
	})
	return ranked, nil
}

func filterEligible(couriers []*courier.Courier) []*courier.Courier {
	eligible := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if c.Validate() == nil && c.IsEligible() {
			eligible = append(eligible, c)
		}
	}
	return eligible
}
