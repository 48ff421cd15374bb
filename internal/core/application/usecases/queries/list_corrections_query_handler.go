package queries

import (
	"context"
	"time"

	"cargo/internal/core/domain/model/correction"
	"cargo/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCorrectionsQueryHandler reads correction requests from the database.
type ListCorrectionsQueryHandler struct {
	db *gorm.DB
}

// NewListCorrectionsQueryHandler creates a handler for correction listings.
func NewListCorrectionsQueryHandler(db *gorm.DB) ListCorrectionsQueryHandler {
	return ListCorrectionsQueryHandler{db: db}
}

// Handle executes the listing. Results are sorted oldest first so the
// pending view reads as a first-come work queue.
func (h ListCorrectionsQueryHandler) Handle(
	ctx context.Context,
	query ListCorrectionsQuery,
) ([]ListCorrectionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_id,
			piece_id,
			weight,
			length,
			width,
			height,
			status,
			requested_by,
			decided_by,
			created_at
		FROM correction_requests
	`
	args := make([]any, 0, 1)
	if status := query.Status(); status != nil {
		sql += " WHERE status = ?"
		args = append(args, int(*status))
	}
	sql += " ORDER BY created_at"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]ListCorrectionsQueryResponse, 0)
	for rows.Next() {
		var (
			id, orderID, pieceID          uuid.UUID
			weight, length, width, height float64
			status                        int
			requestedBy                   uuid.UUID
			decidedBy                     *uuid.UUID
			createdAt                     time.Time
		)

		if err = rows.Scan(
			&id, &orderID, &pieceID,
			&weight, &length, &width, &height,
			&status, &requestedBy, &decidedBy, &createdAt,
		); err != nil {
			return nil, err
		}

		resp, convErr := buildCorrectionRow(
			id, orderID, pieceID, weight, length, width, height,
			status, requestedBy, decidedBy, createdAt,
		)
		if convErr != nil {
			return nil, convErr
		}
		requests = append(requests, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func buildCorrectionRow(
	id, orderID, pieceID uuid.UUID,
	weight, length, width, height float64,
	status int,
	requestedBy uuid.UUID,
	decidedBy *uuid.UUID,
	createdAt time.Time,
) (ListCorrectionsQueryResponse, error) {
	reqID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ListCorrectionsQueryResponse{}, err
	}
	ordID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return ListCorrectionsQueryResponse{}, err
	}
	pcID, err := kernel.UUIDFromBytes(pieceID[:])
	if err != nil {
		return ListCorrectionsQueryResponse{}, err
	}
	requester, err := kernel.UUIDFromBytes(requestedBy[:])
	if err != nil {
		return ListCorrectionsQueryResponse{}, err
	}

	var decider *kernel.UUID
	if decidedBy != nil {
		deciderID, deciderErr := kernel.UUIDFromBytes((*decidedBy)[:])
		if deciderErr != nil {
			return ListCorrectionsQueryResponse{}, deciderErr
		}
		decider = &deciderID
	}

	proposed, err := kernel.NewDimensions(weight, length, width, height)
	if err != nil {
		return ListCorrectionsQueryResponse{}, err
	}

	return ListCorrectionsQueryResponse{
		ID:          reqID,
		OrderID:     ordID,
		PieceID:     pcID,
		Proposed:    proposed,
		Status:      correction.Status(status).String(),
		RequestedBy: requester,
		DecidedBy:   decider,
		CreatedAt:   createdAt,
	}, nil
}
