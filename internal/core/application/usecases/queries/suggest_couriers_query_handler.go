package queries

import (
	"context"
	"time"

	"cargo/internal/core/domain/model/courier"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/services"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuggestCouriersQueryHandler loads the active courier pool, restores the
// domain aggregates and delegates the ranking to the courier balancer so the
// suggestion list and the auto-assignment pick can never disagree.
type SuggestCouriersQueryHandler struct {
	db *gorm.DB
}

// NewSuggestCouriersQueryHandler creates a handler for courier suggestions.
func NewSuggestCouriersQueryHandler(db *gorm.DB) SuggestCouriersQueryHandler {
	return SuggestCouriersQueryHandler{db: db}
}

// Handle executes the ranking against the hub's position.
func (h SuggestCouriersQueryHandler) Handle(
	ctx context.Context,
	query SuggestCouriersQuery,
) ([]SuggestCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	origin, err := h.hubLocation(ctx, query.HubID())
	if err != nil {
		return nil, err
	}

	couriers, err := h.activeCouriers(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := services.NewCourierBalancer().Suggest(couriers, origin)
	if err != nil {
		return nil, err
	}

	responses := make([]SuggestCouriersQueryResponse, 0, len(ranked))
	for _, c := range ranked {
		responses = append(responses, SuggestCouriersQueryResponse{
			ID:             c.ID(),
			Name:           c.Name(),
			HubID:          c.HubID(),
			OpenTaskCount:  c.OpenTaskCount(),
			LastAssignedAt: c.LastAssignedAt(),
			DistanceKm:     c.Location().DistanceTo(origin),
		})
	}
	return responses, nil
}

func (h SuggestCouriersQueryHandler) hubLocation(ctx context.Context, hubID kernel.UUID) (kernel.GeoPoint, error) {
	var lat, lon float64

	row := h.db.WithContext(ctx).Raw(`
		SELECT lat, lon FROM hubs WHERE id = ?
	`, hubID.Bytes()).Row()

	if err := row.Scan(&lat, &lon); err != nil {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundErrorWithCause("hub", hubID.String(), err)
	}
	return kernel.NewGeoPoint(lat, lon)
}

func (h SuggestCouriersQueryHandler) activeCouriers(ctx context.Context) ([]*courier.Courier, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			hub_id,
			active,
			app_online,
			funds_frozen,
			gps_frozen,
			last_assigned_at,
			open_task_count,
			lat,
			lon
		FROM couriers
		WHERE active
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := make([]*courier.Courier, 0)
	for rows.Next() {
		var (
			id, hubID                                 uuid.UUID
			name                                      string
			active, appOnline, fundsFrozen, gpsFrozen bool
			lastAssignedAt                            time.Time
			openTaskCount                             int
			lat, lon                                  float64
		)

		if err = rows.Scan(
			&id, &name, &hubID,
			&active, &appOnline, &fundsFrozen, &gpsFrozen,
			&lastAssignedAt, &openTaskCount, &lat, &lon,
		); err != nil {
			return nil, err
		}

		c, restoreErr := restoreCourier(
			id, name, hubID, active, appOnline, fundsFrozen, gpsFrozen,
			lastAssignedAt, openTaskCount, lat, lon,
		)
		if restoreErr != nil {
			return nil, restoreErr
		}
		couriers = append(couriers, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return couriers, nil
}

func restoreCourier(
	id uuid.UUID,
	name string,
	hubID uuid.UUID,
	active, appOnline, fundsFrozen, gpsFrozen bool,
	lastAssignedAt time.Time,
	openTaskCount int,
	lat, lon float64,
) (*courier.Courier, error) {
	courierID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	courierHubID, err := kernel.UUIDFromBytes(hubID[:])
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		courierID, name, courierHubID,
		active, appOnline, fundsFrozen, gpsFrozen,
		lastAssignedAt, openTaskCount, location,
	)
}
