package queries

import (
	"context"
	"strings"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/transit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListTransitsQueryHandler reads the dispatch board from the database.
type ListTransitsQueryHandler struct {
	db *gorm.DB
}

// NewListTransitsQueryHandler creates a handler for transit listings.
// Requires a GORM database connection for query execution.
func NewListTransitsQueryHandler(db *gorm.DB) ListTransitsQueryHandler {
	return ListTransitsQueryHandler{db: db}
}

// Handle executes the listing. Results are sorted newest first.
func (h ListTransitsQueryHandler) Handle(
	ctx context.Context,
	query ListTransitsQuery,
) ([]ListTransitsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := strings.Builder{}
	sql.WriteString(`
		SELECT
			id,
			code,
			origin_hub_id,
			dest_hub_id,
			transit_hub_id,
			tracking_codes,
			status,
			type_tag,
			created_at
		FROM transit_documents
		WHERE 1=1
	`)

	args := make([]any, 0, 3)
	if hubID := query.DestHubID(); hubID != nil {
		sql.WriteString(" AND dest_hub_id = ?")
		args = append(args, hubID.Bytes())
	}
	if date := query.Date(); date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		sql.WriteString(" AND created_at >= ? AND created_at < ?")
		args = append(args, dayStart, dayStart.Add(24*time.Hour))
	}
	sql.WriteString(" ORDER BY created_at DESC")

	rows, err := h.db.WithContext(ctx).Raw(sql.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]ListTransitsQueryResponse, 0)
	for rows.Next() {
		var (
			id, originHubID, destHubID uuid.UUID
			transitHubID               *uuid.UUID
			code, trackingCodes        string
			status                     int
			typeTag                    string
			createdAt                  time.Time
		)

		if err = rows.Scan(
			&id, &code, &originHubID, &destHubID, &transitHubID,
			&trackingCodes, &status, &typeTag, &createdAt,
		); err != nil {
			return nil, err
		}

		resp, convErr := buildTransitRow(
			id, code, originHubID, destHubID, transitHubID,
			trackingCodes, status, typeTag, createdAt,
		)
		if convErr != nil {
			return nil, convErr
		}
		docs = append(docs, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func buildTransitRow(
	id uuid.UUID,
	code string,
	originHubID, destHubID uuid.UUID,
	transitHubID *uuid.UUID,
	trackingCodes string,
	status int,
	typeTag string,
	createdAt time.Time,
) (ListTransitsQueryResponse, error) {
	docID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ListTransitsQueryResponse{}, err
	}
	origin, err := kernel.UUIDFromBytes(originHubID[:])
	if err != nil {
		return ListTransitsQueryResponse{}, err
	}
	dest, err := kernel.UUIDFromBytes(destHubID[:])
	if err != nil {
		return ListTransitsQueryResponse{}, err
	}

	var via *kernel.UUID
	if transitHubID != nil {
		viaID, viaErr := kernel.UUIDFromBytes((*transitHubID)[:])
		if viaErr != nil {
			return ListTransitsQueryResponse{}, viaErr
		}
		via = &viaID
	}

	orderCount := 0
	if trackingCodes != "" {
		orderCount = strings.Count(trackingCodes, ",") + 1
	}

	return ListTransitsQueryResponse{
		ID:           docID,
		Code:         code,
		OriginHubID:  origin,
		DestHubID:    dest,
		TransitHubID: via,
		Status:       transit.Status(status).String(),
		TypeTag:      typeTag,
		OrderCount:   orderCount,
		CreatedAt:    createdAt,
	}, nil
}
