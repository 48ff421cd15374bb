package commands_test

import (
	"testing"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/core/domain/model/shipment"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoreTestShipment(t *testing.T, orderID kernel.UUID, dims kernel.Dimensions, qty int) *shipment.Shipment {
	t.Helper()
	s, err := shipment.RestoreShipment(
		kernel.NewUUID(), orderID, dims, qty, kernel.Dimensions{}, 0,
	)
	require.NoError(t, err)
	return s
}

func TestReweighPieceCommandHandler_Handle_SplitsRowWithoutFinalizing(t *testing.T) {
	ctx := t.Context()

	ord := restoreTestOrder(t, 55, order.ReadyForPickup, false)
	declared := testDims(t, 10, 50, 40, 30)
	row := restoreTestShipment(t, ord.ID(), declared, 2)
	p1 := restoreTestPiece(t, 55, 1, ord.ID(), row.ID(), declared, false)
	p2 := restoreTestPiece(t, 55, 2, ord.ID(), row.ID(), declared, false)

	measured := testDims(t, 12, 50, 40, 30)
	cmd, err := commands.NewReweighPieceCommand(p1.ID(), measured, kernel.NewUUID())
	require.NoError(t, err)

	pieceRepo := new(MockPieceRepository)
	shipmentRepo := new(MockShipmentRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("PieceRepository").Return(pieceRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("OrderHistoryRepository").Return(new(MockHistoryRepository))

	pieceRepo.On("Get", ctx, p1.ID()).Return(p1, nil).Once()
	pieceRepo.On("GetAllForOrder", ctx, ord.ID()).Return([]*piece.Piece{p1, p2}, nil).Once()
	shipmentRepo.On("GetAllForOrder", ctx, ord.ID()).Return([]*shipment.Shipment{row}, nil).Once()

	// The measured dims match no existing row, so a new reweighed row is
	// inserted and the declared row keeps the remaining piece.
	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	shipmentRepo.On("Update", ctx, row).Return(nil).Once()
	pieceRepo.On("Update", ctx, p1).Return(nil).Once()

	factory := new(MockReweighUoWFactory)
	factory.On("Create").Return(uow).Once()

	rates := new(MockRateProvider)
	notifier := new(MockNotifier)

	handler := commands.NewReweighPieceCommandHandler(factory, rates, notifier, discardLogger())
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.True(t, p1.Reweighed())
	assert.True(t, p1.Dimensions().IsEqual(measured))
	assert.Equal(t, 1, row.Qty())
	assert.False(t, p1.ShipmentID().IsEqual(row.ID()))

	orderRepo.AssertNotCalled(t, "Get", ctx, ord.ID())
	rates.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	pieceRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	uow.AssertCalled(t, "Commit", ctx)
}

func TestReweighPieceCommandHandler_Handle_LastPieceFinalizesAndSignalsInvoice(t *testing.T) {
	ctx := t.Context()

	ord := restoreTestOrder(t, 56, order.Draft, false)
	declared := testDims(t, 10, 50, 40, 30)
	row := restoreTestShipment(t, ord.ID(), declared, 1)
	pc := restoreTestPiece(t, 56, 1, ord.ID(), row.ID(), declared, false)

	measured := testDims(t, 15, 50, 40, 30)
	cmd, err := commands.NewReweighPieceCommand(pc.ID(), measured, kernel.NewUUID())
	require.NoError(t, err)

	pieceRepo := new(MockPieceRepository)
	shipmentRepo := new(MockShipmentRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("PieceRepository").Return(pieceRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("OrderHistoryRepository").Return(new(MockHistoryRepository))

	pieceRepo.On("Get", ctx, pc.ID()).Return(pc, nil).Once()
	pieceRepo.On("GetAllForOrder", ctx, ord.ID()).Return([]*piece.Piece{pc}, nil).Once()
	shipmentRepo.On("GetAllForOrder", ctx, ord.ID()).Return([]*shipment.Shipment{row}, nil).Once()

	// The only piece leaves the declared row, so that row is deleted and a
	// reweighed row takes its place.
	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	shipmentRepo.On("Delete", ctx, row.ID()).Return(nil).Once()
	pieceRepo.On("Update", ctx, pc).Return(nil).Once()

	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()
	orderRepo.On("Update", ctx, ord).Return(nil).Once()

	rates := new(MockRateProvider)
	rates.On("Quote", ctx, ord.SourceHubID(), ord.DestHubID(), mock.AnythingOfType("float64")).
		Return(int64(125000), nil).Once()
	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, "invoice-ready", ord.ID(), (*kernel.UUID)(nil)).Return(nil).Once()

	factory := new(MockReweighUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReweighPieceCommandHandler(factory, rates, notifier, discardLogger())
	require.NoError(t, handler.Handle(ctx, cmd))

	assert.True(t, ord.Reweighed())

	orderRepo.AssertExpectations(t)
	rates.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertCalled(t, "Commit", ctx)
}

func TestReweighPieceCommandHandler_Handle_AlreadyReweighedRejected(t *testing.T) {
	ctx := t.Context()

	orderID := kernel.NewUUID()
	declared := testDims(t, 10, 50, 40, 30)
	pc := restoreTestPiece(t, 57, 1, orderID, kernel.NewUUID(), declared, true)

	cmd, err := commands.NewReweighPieceCommand(pc.ID(), testDims(t, 11, 50, 40, 30), kernel.NewUUID())
	require.NoError(t, err)

	pieceRepo := new(MockPieceRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("PieceRepository").Return(pieceRepo)
	uow.On("ShipmentRepository").Return(new(MockShipmentRepository))
	uow.On("OrderRepository").Return(new(MockOrderRepository))

	pieceRepo.On("Get", ctx, pc.ID()).Return(pc, nil).Once()

	factory := new(MockReweighUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReweighPieceCommandHandler(
		factory, new(MockRateProvider), new(MockNotifier), discardLogger(),
	)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertNotCalled(t, "Commit", ctx)
	pieceRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}
