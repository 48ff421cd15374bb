package commands_test

import (
	"strings"
	"testing"
	"time"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/hub"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/core/domain/model/vehicle"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// restoreOrderBetween builds an order with explicit source and destination
// hubs, which the transit handlers branch on.
func restoreOrderBetween(t *testing.T, no int64, status order.Status, reweighed bool, srcHub, dstHub kernel.UUID) *order.Order {
	t.Helper()
	ord, err := order.RestoreOrder(
		kernel.NewUUID(), no, testTrackingCode(no), status,
		srcHub, dstHub,
		&srcHub, nil, nil, nil, nil, nil,
		reweighed, false, false,
		nil,
		time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, err)
	return ord
}

func testHub(t *testing.T, id kernel.UUID, code string) *hub.Hub {
	t.Helper()
	loc, err := kernel.NewGeoPoint(-6.2, 106.8)
	require.NoError(t, err)
	h, err := hub.NewHub(id, code, code+" hub", loc)
	require.NoError(t, err)
	return h
}

func TestCreateTransitCommandHandler_Handle_DispatchesOrdersByDestination(t *testing.T) {
	ctx := t.Context()

	origin := kernel.NewUUID()
	dest := kernel.NewUUID()

	// ord1 terminates at the leg's destination, ord2 continues beyond it.
	ord1 := restoreOrderBetween(t, 70, order.PickedUp, true, origin, dest)
	ord2 := restoreOrderBetween(t, 71, order.PickedUp, true, origin, kernel.NewUUID())

	declared := testDims(t, 10, 50, 40, 30)
	row1, row2 := kernel.NewUUID(), kernel.NewUUID()
	p1 := restoreTestPiece(t, 70, 1, ord1.ID(), row1, declared, true)
	p2 := restoreTestPiece(t, 71, 1, ord2.ID(), row2, declared, true)

	veh, err := vehicle.RestoreVehicle(kernel.NewUUID(), "B 1234 XYZ", false)
	require.NoError(t, err)

	cmd, err := commands.NewCreateTransitCommand(
		kernel.NewUUID(), origin, dest, nil,
		[]string{ord1.TrackingCode(), ord2.TrackingCode()},
		veh.ID(), kernel.NewUUID(), "linehaul", kernel.NewUUID(),
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	pieceRepo := new(MockPieceRepository)
	transitRepo := new(MockTransitRepository)
	hubRepo := new(MockHubRepository)
	vehicleRepo := new(MockVehicleRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PieceRepository").Return(pieceRepo)
	uow.On("TransitRepository").Return(transitRepo)
	uow.On("HubRepository").Return(hubRepo)
	uow.On("VehicleRepository").Return(vehicleRepo)
	uow.On("OrderHistoryRepository").Return(historyRepo)

	orderRepo.On("GetByTrackingCode", ctx, ord1.TrackingCode()).Return(ord1, nil).Once()
	orderRepo.On("GetByTrackingCode", ctx, ord2.TrackingCode()).Return(ord2, nil).Once()
	hubRepo.On("Get", ctx, dest).Return(testHub(t, dest, "JKT"), nil).Once()
	transitRepo.On("NextSequenceForHubDate", ctx, dest, mock.AnythingOfType("time.Time")).
		Return(3, nil).Once()
	transitRepo.On("Add", ctx, mock.AnythingOfType("*transit.Document")).Return(nil).Once()
	vehicleRepo.On("Get", ctx, veh.ID()).Return(veh, nil).Once()
	vehicleRepo.On("Update", ctx, veh).Return(nil).Once()
	pieceRepo.On("GetAllForOrder", ctx, ord1.ID()).Return([]*piece.Piece{p1}, nil).Once()
	pieceRepo.On("GetAllForOrder", ctx, ord2.ID()).Return([]*piece.Piece{p2}, nil).Once()
	pieceRepo.On("Update", ctx, mock.AnythingOfType("*piece.Piece")).Return(nil).Twice()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Twice()
	historyRepo.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Twice()

	factory := new(MockTransitUoWFactory)
	factory.On("Create").Return(uow).Once()

	renderer := new(MockDocumentRenderer)
	renderer.On("RenderTransitDocument", ctx, mock.AnythingOfType("*transit.Document")).
		Return("manifest.txt", nil).Once()

	handler := commands.NewCreateTransitCommandHandler(factory, renderer, discardLogger())
	code, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(code, "JKT003"), "code %q", code)
	assert.Len(t, code, len("20060102JKT003"))

	assert.Equal(t, order.OutForDelivery, ord1.Status())
	assert.Equal(t, order.InTransit, ord2.Status())
	for _, ord := range []*order.Order{ord1, ord2} {
		require.NotNil(t, ord.CurrentHubID())
		assert.True(t, ord.CurrentHubID().IsEqual(origin))
		require.NotNil(t, ord.NextHubID())
		assert.True(t, ord.NextHubID().IsEqual(dest))
	}
	assert.True(t, p1.Outbound())
	assert.True(t, veh.InUse())

	orderRepo.AssertExpectations(t)
	transitRepo.AssertExpectations(t)
	vehicleRepo.AssertExpectations(t)
	uow.AssertCalled(t, "Commit", ctx)
}

func TestCreateTransitCommandHandler_Handle_ViaHubForcesInTransit(t *testing.T) {
	ctx := t.Context()

	origin := kernel.NewUUID()
	dest := kernel.NewUUID()
	via := kernel.NewUUID()

	// The order terminates at the document's destination, but the leg only
	// reaches the via hub, so it stays InTransit.
	ord := restoreOrderBetween(t, 72, order.PickedUp, true, origin, dest)
	p := restoreTestPiece(t, 72, 1, ord.ID(), kernel.NewUUID(), testDims(t, 10, 50, 40, 30), true)

	veh, err := vehicle.RestoreVehicle(kernel.NewUUID(), "B 5678 ABC", false)
	require.NoError(t, err)

	cmd, err := commands.NewCreateTransitCommand(
		kernel.NewUUID(), origin, dest, &via,
		[]string{ord.TrackingCode()},
		veh.ID(), kernel.NewUUID(), "linehaul", kernel.NewUUID(),
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	pieceRepo := new(MockPieceRepository)
	transitRepo := new(MockTransitRepository)
	hubRepo := new(MockHubRepository)
	vehicleRepo := new(MockVehicleRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PieceRepository").Return(pieceRepo)
	uow.On("TransitRepository").Return(transitRepo)
	uow.On("HubRepository").Return(hubRepo)
	uow.On("VehicleRepository").Return(vehicleRepo)
	uow.On("OrderHistoryRepository").Return(historyRepo)

	orderRepo.On("GetByTrackingCode", ctx, ord.TrackingCode()).Return(ord, nil).Once()
	hubRepo.On("Get", ctx, dest).Return(testHub(t, dest, "SBY"), nil).Once()
	transitRepo.On("NextSequenceForHubDate", ctx, dest, mock.AnythingOfType("time.Time")).
		Return(1, nil).Once()
	transitRepo.On("Add", ctx, mock.AnythingOfType("*transit.Document")).Return(nil).Once()
	vehicleRepo.On("Get", ctx, veh.ID()).Return(veh, nil).Once()
	vehicleRepo.On("Update", ctx, veh).Return(nil).Once()
	pieceRepo.On("GetAllForOrder", ctx, ord.ID()).Return([]*piece.Piece{p}, nil).Once()
	pieceRepo.On("Update", ctx, p).Return(nil).Once()
	orderRepo.On("Update", ctx, ord).Return(nil).Once()
	historyRepo.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once()

	factory := new(MockTransitUoWFactory)
	factory.On("Create").Return(uow).Once()

	renderer := new(MockDocumentRenderer)
	renderer.On("RenderTransitDocument", ctx, mock.AnythingOfType("*transit.Document")).
		Return("manifest.txt", nil).Once()

	handler := commands.NewCreateTransitCommandHandler(factory, renderer, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InTransit, ord.Status())
	require.NotNil(t, ord.NextHubID())
	assert.True(t, ord.NextHubID().IsEqual(via))
}

func TestCreateTransitCommandHandler_Handle_UnreweighedOrderRejected(t *testing.T) {
	ctx := t.Context()

	origin := kernel.NewUUID()
	dest := kernel.NewUUID()
	ord := restoreOrderBetween(t, 73, order.PickedUp, false, origin, dest)

	cmd, err := commands.NewCreateTransitCommand(
		kernel.NewUUID(), origin, dest, nil,
		[]string{ord.TrackingCode()},
		kernel.NewUUID(), kernel.NewUUID(), "linehaul", kernel.NewUUID(),
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)

	orderRepo.On("GetByTrackingCode", ctx, ord.TrackingCode()).Return(ord, nil).Once()

	factory := new(MockTransitUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateTransitCommandHandler(factory, new(MockDocumentRenderer), discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertNotCalled(t, "Commit", ctx)
}
