// Package http is the inbound HTTP adapter. Handlers translate JSON
// payloads into commands and queries and map domain errors onto status
// codes; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/application/usecases/queries"
	"cargo/internal/core/domain/model/correction"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// actorHeader carries the acting user id on every mutating request. The
// gateway in front of this service injects it from the session.
const actorHeader = "X-Actor-Id"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrder     commands.CreateOrderCommandHandler
	cancelOrder     commands.CancelOrderCommandHandler
	deleteOrder     commands.DeleteOrderCommandHandler
	reweighPiece    commands.ReweighPieceCommandHandler
	bulkReweigh     commands.BulkReweighCommandHandler
	submitCorr      commands.SubmitCorrectionCommandHandler
	decideCorr      commands.DecideCorrectionCommandHandler
	createTransit   commands.CreateTransitCommandHandler
	editTransit     commands.EditTransitCommandHandler
	inboundScan     commands.InboundScanCommandHandler
	inboundConfirm  commands.InboundConfirmCommandHandler
	bypassReceive   commands.BypassReceiveCommandHandler
	startDelivery   commands.StartDeliveryCommandHandler
	revertToWaiting commands.RevertToWaitingCommandHandler
	assignCourier   commands.AssignCourierCommandHandler

	listTransits    queries.ListTransitsQueryHandler
	getTransit      queries.GetTransitQueryHandler
	listCorrections queries.ListCorrectionsQueryHandler
	suggestCouriers queries.SuggestCouriersQueryHandler
}

// Handlers bundles everything the server needs; it keeps the constructor
// signature readable at the composition root.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	DeleteOrder     commands.DeleteOrderCommandHandler
	ReweighPiece    commands.ReweighPieceCommandHandler
	BulkReweigh     commands.BulkReweighCommandHandler
	SubmitCorr      commands.SubmitCorrectionCommandHandler
	DecideCorr      commands.DecideCorrectionCommandHandler
	CreateTransit   commands.CreateTransitCommandHandler
	EditTransit     commands.EditTransitCommandHandler
	InboundScan     commands.InboundScanCommandHandler
	InboundConfirm  commands.InboundConfirmCommandHandler
	BypassReceive   commands.BypassReceiveCommandHandler
	StartDelivery   commands.StartDeliveryCommandHandler
	RevertToWaiting commands.RevertToWaitingCommandHandler
	AssignCourier   commands.AssignCourierCommandHandler

	ListTransits    queries.ListTransitsQueryHandler
	GetTransit      queries.GetTransitQueryHandler
	ListCorrections queries.ListCorrectionsQueryHandler
	SuggestCouriers queries.SuggestCouriersQueryHandler
}

// NewServer creates the HTTP server over the given use-case handlers.
func NewServer(h Handlers) *Server {
	return &Server{
		createOrder:     h.CreateOrder,
		cancelOrder:     h.CancelOrder,
		deleteOrder:     h.DeleteOrder,
		reweighPiece:    h.ReweighPiece,
		bulkReweigh:     h.BulkReweigh,
		submitCorr:      h.SubmitCorr,
		decideCorr:      h.DecideCorr,
		createTransit:   h.CreateTransit,
		editTransit:     h.EditTransit,
		inboundScan:     h.InboundScan,
		inboundConfirm:  h.InboundConfirm,
		bypassReceive:   h.BypassReceive,
		startDelivery:   h.StartDelivery,
		revertToWaiting: h.RevertToWaiting,
		assignCourier:   h.AssignCourier,
		listTransits:    h.ListTransits,
		getTransit:      h.GetTransit,
		listCorrections: h.ListCorrections,
		suggestCouriers: h.SuggestCouriers,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/:id/cancel", s.CancelOrder)
	v1.DELETE("/orders/:id", s.DeleteOrder)
	v1.POST("/orders/:id/bypass-receive", s.BypassReceive)
	v1.POST("/orders/:id/start-delivery", s.StartDelivery)
	v1.POST("/orders/:id/revert-to-waiting", s.RevertToWaiting)
	v1.POST("/orders/:id/assign-courier", s.AssignCourier)

	v1.POST("/pieces/:id/reweigh", s.ReweighPiece)
	v1.POST("/reweigh/bulk", s.BulkReweigh)

	v1.GET("/corrections", s.ListCorrections)
	v1.POST("/corrections", s.SubmitCorrection)
	v1.POST("/corrections/:id/decide", s.DecideCorrection)

	v1.GET("/transits", s.ListTransits)
	v1.GET("/transits/:id", s.GetTransit)
	v1.POST("/transits", s.CreateTransit)
	v1.PUT("/transits/:id", s.EditTransit)
	v1.POST("/transits/:id/arrive", s.InboundConfirm)

	v1.POST("/hubs/:id/inbound-scan", s.InboundScan)
	v1.GET("/hubs/:id/couriers/suggest", s.SuggestCouriers)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	sourceHubID, err := kernel.UUIDFromString(req.SourceHubID)
	if err != nil {
		return badRequest(ctx, err)
	}
	destHubID, err := kernel.UUIDFromString(req.DestHubID)
	if err != nil {
		return badRequest(ctx, err)
	}
	pieces, err := toDims(req.Pieces)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), sourceHubID, destHubID, pieces, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.createOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Envelope{
		Success: true,
		Message: "order created",
		Data: CreateOrderResponse{
			OrderNo:      result.OrderNo,
			TrackingCode: result.TrackingCode,
		},
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorID, req.Remark)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.cancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "order cancelled"})
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.deleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "order deleted"})
}

// ReweighPiece handles POST /api/v1/pieces/:id/reweigh.
func (s *Server) ReweighPiece(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	pieceID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ReweighPieceRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	dims, err := kernel.NewDimensions(req.Dims.Weight, req.Dims.Length, req.Dims.Width, req.Dims.Height)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewReweighPieceCommand(pieceID, dims, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.reweighPiece.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "piece reweighed"})
}

// BulkReweigh handles POST /api/v1/reweigh/bulk.
func (s *Server) BulkReweigh(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req BulkReweighRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	actions := make([]commands.BulkReweighAction, 0, len(req.Actions))
	for _, a := range req.Actions {
		action, actionErr := toBulkAction(a)
		if actionErr != nil {
			return badRequest(ctx, actionErr)
		}
		actions = append(actions, action)
	}

	cmd, err := commands.NewBulkReweighCommand(actions, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	outcomes, err := s.bulkReweigh.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "bulk reweigh processed",
		Data:    toBulkOutcomes(outcomes),
	})
}

// SubmitCorrection handles POST /api/v1/corrections.
func (s *Server) SubmitCorrection(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req SubmitCorrectionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	pieceID, err := kernel.UUIDFromString(req.PieceID)
	if err != nil {
		return badRequest(ctx, err)
	}
	proposed, err := kernel.NewDimensions(
		req.Proposed.Weight, req.Proposed.Length, req.Proposed.Width, req.Proposed.Height,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSubmitCorrectionCommand(pieceID, proposed, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	requestID, err := s.submitCorr.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Envelope{
		Success: true,
		Message: "correction submitted",
		Data:    SubmitCorrectionResponse{RequestID: requestID.String()},
	})
}

// DecideCorrection handles POST /api/v1/corrections/:id/decide.
func (s *Server) DecideCorrection(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	requestID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req DecideCorrectionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewDecideCorrectionCommand(requestID, req.Approve, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.decideCorr.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "correction decided"})
}

// ListCorrections handles GET /api/v1/corrections?status=pending.
func (s *Server) ListCorrections(ctx echo.Context) error {
	var status *correction.Status
	switch ctx.QueryParam("status") {
	case "":
	case "pending":
		v := correction.StatusPending
		status = &v
	case "approved":
		v := correction.StatusApproved
		status = &v
	case "rejected":
		v := correction.StatusRejected
		status = &v
	default:
		return badRequest(ctx, errs.NewValueIsInvalidErrorWithCause(
			"status filter", errors.New(ctx.QueryParam("status")),
		))
	}

	query, err := queries.NewListCorrectionsQuery(status)
	if err != nil {
		return badRequest(ctx, err)
	}

	requests, err := s.listCorrections.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "corrections",
		Data:    toCorrectionList(requests),
	})
}

// CreateTransit handles POST /api/v1/transits.
func (s *Server) CreateTransit(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CreateTransitRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	originHubID, err := kernel.UUIDFromString(req.OriginHubID)
	if err != nil {
		return badRequest(ctx, err)
	}
	destHubID, err := kernel.UUIDFromString(req.DestHubID)
	if err != nil {
		return badRequest(ctx, err)
	}
	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return badRequest(ctx, err)
	}
	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, err)
	}

	var transitHubID *kernel.UUID
	if req.TransitHubID != nil {
		viaID, viaErr := kernel.UUIDFromString(*req.TransitHubID)
		if viaErr != nil {
			return badRequest(ctx, viaErr)
		}
		transitHubID = &viaID
	}

	cmd, err := commands.NewCreateTransitCommand(
		kernel.NewUUID(), originHubID, destHubID, transitHubID,
		req.TrackingCodes, vehicleID, driverID, req.TypeTag, actorID,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	code, err := s.createTransit.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Envelope{
		Success: true,
		Message: "transit created",
		Data:    CreateTransitResponse{Code: code},
	})
}

// EditTransit handles PUT /api/v1/transits/:id.
func (s *Server) EditTransit(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	documentID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req EditTransitRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewEditTransitCommand(documentID, req.TrackingCodes, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.editTransit.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "transit updated"})
}

// ListTransits handles GET /api/v1/transits?destHubId=...&date=2026-01-31.
func (s *Server) ListTransits(ctx echo.Context) error {
	var destHubID *kernel.UUID
	if raw := ctx.QueryParam("destHubId"); raw != "" {
		hubID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, err)
		}
		destHubID = &hubID
	}

	var date *time.Time
	if raw := ctx.QueryParam("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(ctx, err)
		}
		date = &day
	}

	query, err := queries.NewListTransitsQuery(destHubID, date)
	if err != nil {
		return badRequest(ctx, err)
	}

	docs, err := s.listTransits.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "transits",
		Data:    toTransitList(docs),
	})
}

// GetTransit handles GET /api/v1/transits/:id.
func (s *Server) GetTransit(ctx echo.Context) error {
	documentID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetTransitQuery(documentID)
	if err != nil {
		return badRequest(ctx, err)
	}

	detail, err := s.getTransit.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "transit",
		Data:    toTransitDetail(detail),
	})
}

// InboundConfirm handles POST /api/v1/transits/:id/arrive. The receiving hub
// id comes as a query parameter because the route is keyed by document.
func (s *Server) InboundConfirm(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	documentID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	hubID, err := kernel.UUIDFromString(ctx.QueryParam("hubId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewInboundConfirmCommand(documentID, hubID, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.inboundConfirm.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "arrival confirmed"})
}

// InboundScan handles POST /api/v1/hubs/:id/inbound-scan.
func (s *Server) InboundScan(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	hubID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req InboundScanRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	pieceIDs := make([]kernel.UUID, 0, len(req.PieceIDs))
	for _, raw := range req.PieceIDs {
		pieceID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, idErr)
		}
		pieceIDs = append(pieceIDs, pieceID)
	}

	cmd, err := commands.NewInboundScanCommand(hubID, pieceIDs, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}

	outcomes, err := s.inboundScan.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "scan processed",
		Data:    toScanOutcomes(outcomes),
	})
}

// BypassReceive handles POST /api/v1/orders/:id/bypass-receive. The hub id
// comes as a query parameter; the proof document travels in the body.
func (s *Server) BypassReceive(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	hubID, err := kernel.UUIDFromString(ctx.QueryParam("hubId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req BypassReceiveRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewBypassReceiveCommand(orderID, hubID, req.Proof, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.bypassReceive.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "order received via bypass"})
}

// StartDelivery handles POST /api/v1/orders/:id/start-delivery.
func (s *Server) StartDelivery(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req StartDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewStartDeliveryCommand(orderID, courierID, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.startDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "delivery started"})
}

// RevertToWaiting handles POST /api/v1/orders/:id/revert-to-waiting.
func (s *Server) RevertToWaiting(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRevertToWaitingCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.revertToWaiting.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "order reverted to waiting"})
}

// AssignCourier handles POST /api/v1/orders/:id/assign-courier.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req AssignCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.assignCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true, Message: "courier assigned"})
}

// SuggestCouriers handles GET /api/v1/hubs/:id/couriers/suggest.
func (s *Server) SuggestCouriers(ctx echo.Context) error {
	hubID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewSuggestCouriersQuery(hubID)
	if err != nil {
		return badRequest(ctx, err)
	}

	ranked, err := s.suggestCouriers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: "couriers",
		Data:    toCourierSuggestions(ranked),
	})
}

// pathID parses the :id path parameter.
func pathID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// actorID parses the acting user from the request header.
func actorID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(actorHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(actorHeader + " header")
	}
	return kernel.UUIDFromString(raw)
}

// toDims converts dimension payloads, validating each entry.
func toDims(payloads []DimensionsPayload) ([]kernel.Dimensions, error) {
	dims := make([]kernel.Dimensions, 0, len(payloads))
	for _, p := range payloads {
		d, err := kernel.NewDimensions(p.Weight, p.Length, p.Width, p.Height)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, nil
}

// toBulkAction converts one bulk payload entry into a domain action.
func toBulkAction(a BulkReweighActionRequest) (commands.BulkReweighAction, error) {
	switch commands.BulkReweighActionKind(a.Kind) {
	case commands.BulkActionUpdate:
		pieceID, err := kernel.UUIDFromString(a.PieceID)
		if err != nil {
			return commands.BulkReweighAction{}, err
		}
		if a.Dims == nil {
			return commands.BulkReweighAction{}, errs.NewValueIsRequiredError("dims")
		}
		dims, err := kernel.NewDimensions(a.Dims.Weight, a.Dims.Length, a.Dims.Width, a.Dims.Height)
		if err != nil {
			return commands.BulkReweighAction{}, err
		}
		return commands.NewBulkReweighUpdateAction(pieceID, dims)

	case commands.BulkActionDelete:
		pieceID, err := kernel.UUIDFromString(a.PieceID)
		if err != nil {
			return commands.BulkReweighAction{}, err
		}
		return commands.NewBulkReweighDeleteAction(pieceID)

	case commands.BulkActionAdd:
		orderID, err := kernel.UUIDFromString(a.OrderID)
		if err != nil {
			return commands.BulkReweighAction{}, err
		}
		if a.Dims == nil {
			return commands.BulkReweighAction{}, errs.NewValueIsRequiredError("dims")
		}
		dims, err := kernel.NewDimensions(a.Dims.Weight, a.Dims.Length, a.Dims.Width, a.Dims.Height)
		if err != nil {
			return commands.BulkReweighAction{}, err
		}
		return commands.NewBulkReweighAddAction(orderID, dims)

	default:
		return commands.BulkReweighAction{}, errs.NewValueIsInvalidErrorWithCause(
			"action kind", errors.New(a.Kind),
		)
	}
}

// badRequest renders a 400 with the validation message.
func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Envelope{Success: false, Message: err.Error()})
}

// fail maps a use-case error onto an HTTP status.
func fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}
	return ctx.JSON(status, Envelope{Success: false, Message: err.Error()})
}
