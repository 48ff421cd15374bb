package queries

import (
	"context"
	"strings"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/transit"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTransitQueryHandler reads one transit document and resolves its bundled
// tracking codes to order rows.
type GetTransitQueryHandler struct {
	db *gorm.DB
}

// NewGetTransitQueryHandler creates a handler for transit detail queries.
func NewGetTransitQueryHandler(db *gorm.DB) GetTransitQueryHandler {
	return GetTransitQueryHandler{db: db}
}

// Handle executes the query. Order rows follow the document's bundling
// order; a tracking code whose order row has vanished is skipped.
func (h GetTransitQueryHandler) Handle(
	ctx context.Context,
	query GetTransitQuery,
) (GetTransitQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTransitQueryResponse{}, err
	}

	var (
		id, originHubID, destHubID uuid.UUID
		vehicleID, driverID        uuid.UUID
		transitHubID               *uuid.UUID
		code, trackingCodes        string
		status                     int
		typeTag                    string
		createdAt                  time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			origin_hub_id,
			dest_hub_id,
			transit_hub_id,
			vehicle_id,
			driver_id,
			tracking_codes,
			status,
			type_tag,
			created_at
		FROM transit_documents
		WHERE id = ?
	`, query.DocumentID().Bytes()).Row()

	err := row.Scan(
		&id, &code, &originHubID, &destHubID, &transitHubID,
		&vehicleID, &driverID, &trackingCodes, &status, &typeTag, &createdAt,
	)
	if err != nil {
		return GetTransitQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"transit document", query.DocumentID().String(), err,
		)
	}

	resp, err := buildTransitDetail(
		id, code, originHubID, destHubID, transitHubID,
		vehicleID, driverID, status, typeTag, createdAt,
	)
	if err != nil {
		return GetTransitQueryResponse{}, err
	}

	resp.Orders, err = h.loadOrderRows(ctx, trackingCodes)
	if err != nil {
		return GetTransitQueryResponse{}, err
	}
	return resp, nil
}

// loadOrderRows resolves the document's tracking codes to order id and
// status rows, preserving the bundling order.
func (h GetTransitQueryHandler) loadOrderRows(ctx context.Context, trackingCodes string) ([]GetTransitQueryOrderRow, error) {
	codes := strings.Split(trackingCodes, ",")
	found := make(map[string]GetTransitQueryOrderRow, len(codes))

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, tracking_code, status
		FROM orders
		WHERE tracking_code IN ?
	`, codes).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id           uuid.UUID
			trackingCode string
			status       int
		)
		if err = rows.Scan(&id, &trackingCode, &status); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		found[trackingCode] = GetTransitQueryOrderRow{
			OrderID:      orderID,
			TrackingCode: trackingCode,
			Status:       order.Status(status).String(),
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	ordered := make([]GetTransitQueryOrderRow, 0, len(codes))
	for _, code := range codes {
		if row, ok := found[code]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

func buildTransitDetail(
	id uuid.UUID,
	code string,
	originHubID, destHubID uuid.UUID,
	transitHubID *uuid.UUID,
	vehicleID, driverID uuid.UUID,
	status int,
	typeTag string,
	createdAt time.Time,
) (GetTransitQueryResponse, error) {
	docID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTransitQueryResponse{}, err
	}
	origin, err := kernel.UUIDFromBytes(originHubID[:])
	if err != nil {
		return GetTransitQueryResponse{}, err
	}
	dest, err := kernel.UUIDFromBytes(destHubID[:])
	if err != nil {
		return GetTransitQueryResponse{}, err
	}
	vehID, err := kernel.UUIDFromBytes(vehicleID[:])
	if err != nil {
		return GetTransitQueryResponse{}, err
	}
	drvID, err := kernel.UUIDFromBytes(driverID[:])
	if err != nil {
		return GetTransitQueryResponse{}, err
	}

	var via *kernel.UUID
	if transitHubID != nil {
		viaID, viaErr := kernel.UUIDFromBytes((*transitHubID)[:])
		if viaErr != nil {
			return GetTransitQueryResponse{}, viaErr
		}
		via = &viaID
	}

	return GetTransitQueryResponse{
		ID:           docID,
		Code:         code,
		OriginHubID:  origin,
		DestHubID:    dest,
		TransitHubID: via,
		VehicleID:    vehID,
		DriverID:     drvID,
		Status:       transit.Status(status).String(),
		TypeTag:      typeTag,
		CreatedAt:    createdAt,
	}, nil
}
