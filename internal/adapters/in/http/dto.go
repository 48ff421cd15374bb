package http

import (
	"time"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/application/usecases/queries"
)

// Envelope is the uniform response wrapper. Data is omitted on failures and
// on commands that return nothing.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// DimensionsPayload carries one weight and dimension set.
type DimensionsPayload struct {
	Weight float64 `json:"weight"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CreateOrderRequest is the intake payload. Each entry of Pieces is one
// physical piece; identical entries are consolidated server-side.
type CreateOrderRequest struct {
	SourceHubID string              `json:"sourceHubId"`
	DestHubID   string              `json:"destHubId"`
	Pieces      []DimensionsPayload `json:"pieces"`
}

// CreateOrderResponse returns the assigned business identifiers.
type CreateOrderResponse struct {
	OrderNo      int64  `json:"orderNo"`
	TrackingCode string `json:"trackingCode"`
}

// CancelOrderRequest carries the optional cancellation remark.
type CancelOrderRequest struct {
	Remark string `json:"remark"`
}

// ReweighPieceRequest carries the measured values for one piece.
type ReweighPieceRequest struct {
	Dims DimensionsPayload `json:"dims"`
}

// BulkReweighActionRequest is one entry of a bulk reweigh batch. Kind is
// "update", "delete" or "add"; fields are kind-dependent.
type BulkReweighActionRequest struct {
	Kind    string             `json:"kind"`
	PieceID string             `json:"pieceId,omitempty"`
	OrderID string             `json:"orderId,omitempty"`
	Dims    *DimensionsPayload `json:"dims,omitempty"`
}

// BulkReweighRequest is the bulk reweigh payload.
type BulkReweighRequest struct {
	Actions []BulkReweighActionRequest `json:"actions"`
}

// BulkReweighOutcomeResponse reports one action's result, in input order.
type BulkReweighOutcomeResponse struct {
	Kind      string `json:"kind"`
	PieceCode string `json:"pieceCode,omitempty"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// SubmitCorrectionRequest proposes replacement values for a reweighed piece.
type SubmitCorrectionRequest struct {
	PieceID  string            `json:"pieceId"`
	Proposed DimensionsPayload `json:"proposed"`
}

// SubmitCorrectionResponse returns the created request id.
type SubmitCorrectionResponse struct {
	RequestID string `json:"requestId"`
}

// DecideCorrectionRequest carries the supervisor verdict.
type DecideCorrectionRequest struct {
	Approve bool `json:"approve"`
}

// CreateTransitRequest opens a transit leg over the listed orders.
type CreateTransitRequest struct {
	OriginHubID   string   `json:"originHubId"`
	DestHubID     string   `json:"destHubId"`
	TransitHubID  *string  `json:"transitHubId,omitempty"`
	TrackingCodes []string `json:"trackingCodes"`
	VehicleID     string   `json:"vehicleId"`
	DriverID      string   `json:"driverId"`
	TypeTag       string   `json:"typeTag"`
}

// CreateTransitResponse returns the generated document code.
type CreateTransitResponse struct {
	Code string `json:"code"`
}

// EditTransitRequest replaces the document's order bundle.
type EditTransitRequest struct {
	TrackingCodes []string `json:"trackingCodes"`
}

// InboundScanRequest lists the piece ids scanned at the hub.
type InboundScanRequest struct {
	PieceIDs []string `json:"pieceIds"`
}

// InboundScanOutcomeResponse reports one scanned piece, in scan order.
type InboundScanOutcomeResponse struct {
	PieceID   string `json:"pieceId"`
	PieceCode string `json:"pieceCode,omitempty"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// BypassReceiveRequest carries the base64-decoded proof document bytes.
type BypassReceiveRequest struct {
	Proof []byte `json:"proof"`
}

// StartDeliveryRequest names the courier taking the final leg.
type StartDeliveryRequest struct {
	CourierID string `json:"courierId"`
}

// AssignCourierRequest names the pickup courier.
type AssignCourierRequest struct {
	CourierID string `json:"courierId"`
}

// TransitListItem is one row of the dispatch board response.
type TransitListItem struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	OriginHubID  string    `json:"originHubId"`
	DestHubID    string    `json:"destHubId"`
	TransitHubID *string   `json:"transitHubId,omitempty"`
	Status       string    `json:"status"`
	TypeTag      string    `json:"typeTag"`
	OrderCount   int       `json:"orderCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TransitOrderItem is one bundled order in the transit detail response.
type TransitOrderItem struct {
	OrderID      string `json:"orderId"`
	TrackingCode string `json:"trackingCode"`
	Status       string `json:"status"`
}

// TransitDetail is the transit detail response.
type TransitDetail struct {
	ID           string             `json:"id"`
	Code         string             `json:"code"`
	OriginHubID  string             `json:"originHubId"`
	DestHubID    string             `json:"destHubId"`
	TransitHubID *string            `json:"transitHubId,omitempty"`
	VehicleID    string             `json:"vehicleId"`
	DriverID     string             `json:"driverId"`
	Status       string             `json:"status"`
	TypeTag      string             `json:"typeTag"`
	CreatedAt    time.Time          `json:"createdAt"`
	Orders       []TransitOrderItem `json:"orders"`
}

// CorrectionListItem is one correction request row.
type CorrectionListItem struct {
	ID          string            `json:"id"`
	OrderID     string            `json:"orderId"`
	PieceID     string            `json:"pieceId"`
	Proposed    DimensionsPayload `json:"proposed"`
	Status      string            `json:"status"`
	RequestedBy string            `json:"requestedBy"`
	DecidedBy   *string           `json:"decidedBy,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// CourierSuggestion is one ranked courier.
type CourierSuggestion struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	HubID          string    `json:"hubId"`
	OpenTaskCount  int       `json:"openTaskCount"`
	LastAssignedAt time.Time `json:"lastAssignedAt"`
	DistanceKm     float64   `json:"distanceKm"`
}

func toBulkOutcomes(outcomes []commands.BulkReweighOutcome) []BulkReweighOutcomeResponse {
	response := make([]BulkReweighOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		response[i] = BulkReweighOutcomeResponse{
			Kind:      string(o.Kind),
			PieceCode: o.PieceCode,
			OK:        o.OK,
			Error:     o.Error,
		}
	}
	return response
}

func toScanOutcomes(outcomes []commands.InboundScanOutcome) []InboundScanOutcomeResponse {
	response := make([]InboundScanOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		response[i] = InboundScanOutcomeResponse{
			PieceID:   o.PieceID.String(),
			PieceCode: o.PieceCode,
			OK:        o.OK,
			Error:     o.Error,
		}
	}
	return response
}

func toTransitList(docs []queries.ListTransitsQueryResponse) []TransitListItem {
	response := make([]TransitListItem, len(docs))
	for i, doc := range docs {
		var via *string
		if doc.TransitHubID != nil {
			s := doc.TransitHubID.String()
			via = &s
		}
		response[i] = TransitListItem{
			ID:           doc.ID.String(),
			Code:         doc.Code,
			OriginHubID:  doc.OriginHubID.String(),
			DestHubID:    doc.DestHubID.String(),
			TransitHubID: via,
			Status:       doc.Status,
			TypeTag:      doc.TypeTag,
			OrderCount:   doc.OrderCount,
			CreatedAt:    doc.CreatedAt,
		}
	}
	return response
}

func toTransitDetail(doc queries.GetTransitQueryResponse) TransitDetail {
	var via *string
	if doc.TransitHubID != nil {
		s := doc.TransitHubID.String()
		via = &s
	}

	orders := make([]TransitOrderItem, len(doc.Orders))
	for i, row := range doc.Orders {
		orders[i] = TransitOrderItem{
			OrderID:      row.OrderID.String(),
			TrackingCode: row.TrackingCode,
			Status:       row.Status,
		}
	}

	return TransitDetail{
		ID:           doc.ID.String(),
		Code:         doc.Code,
		OriginHubID:  doc.OriginHubID.String(),
		DestHubID:    doc.DestHubID.String(),
		TransitHubID: via,
		VehicleID:    doc.VehicleID.String(),
		DriverID:     doc.DriverID.String(),
		Status:       doc.Status,
		TypeTag:      doc.TypeTag,
		CreatedAt:    doc.CreatedAt,
		Orders:       orders,
	}
}

func toCorrectionList(requests []queries.ListCorrectionsQueryResponse) []CorrectionListItem {
	response := make([]CorrectionListItem, len(requests))
	for i, req := range requests {
		var decidedBy *string
		if req.DecidedBy != nil {
			s := req.DecidedBy.String()
			decidedBy = &s
		}
		response[i] = CorrectionListItem{
			ID:      req.ID.String(),
			OrderID: req.OrderID.String(),
			PieceID: req.PieceID.String(),
			Proposed: DimensionsPayload{
				Weight: req.Proposed.Weight(),
				Length: req.Proposed.Length(),
				Width:  req.Proposed.Width(),
				Height: req.Proposed.Height(),
			},
			Status:      req.Status,
			RequestedBy: req.RequestedBy.String(),
			DecidedBy:   decidedBy,
			CreatedAt:   req.CreatedAt,
		}
	}
	return response
}

func toCourierSuggestions(ranked []queries.SuggestCouriersQueryResponse) []CourierSuggestion {
	response := make([]CourierSuggestion, len(ranked))
	for i, c := range ranked {
		response[i] = CourierSuggestion{
			ID:             c.ID.String(),
			Name:           c.Name,
			HubID:          c.HubID.String(),
			OpenTaskCount:  c.OpenTaskCount,
			LastAssignedAt: c.LastAssignedAt,
			DistanceKm:     c.DistanceKm,
		}
	}
	return response
}
