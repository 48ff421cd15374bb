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

func TestBulkReweighCommandHandler_Handle_PartialBatchKeepsEarlierActions(t *testing.T) {
	ctx := t.Context()

	ord := restoreTestOrder(t, 60, order.PickedUp, false)
	declared := testDims(t, 10, 50, 40, 30)
	row := restoreTestShipment(t, ord.ID(), declared, 2)
	p1 := restoreTestPiece(t, 60, 1, ord.ID(), row.ID(), declared, false)
	p2 := restoreTestPiece(t, 60, 2, ord.ID(), row.ID(), declared, false)
	// Resolvable by id but absent from the order's ledger, so the delete
	// targeting it fails at execution time.
	ghost := restoreTestPiece(t, 60, 3, ord.ID(), row.ID(), declared, false)

	measured := testDims(t, 13, 50, 40, 30)
	a1, err := commands.NewBulkReweighUpdateAction(p1.ID(), measured)
	require.NoError(t, err)
	a2, err := commands.NewBulkReweighDeleteAction(ghost.ID())
	require.NoError(t, err)
	a3, err := commands.NewBulkReweighDeleteAction(p2.ID())
	require.NoError(t, err)

	cmd, err := commands.NewBulkReweighCommand([]commands.BulkReweighAction{a1, a2, a3}, kernel.NewUUID())
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
	pieceRepo.On("Get", ctx, ghost.ID()).Return(ghost, nil).Once()
	pieceRepo.On("Get", ctx, p2.ID()).Return(p2, nil).Once()
	pieceRepo.On("GetAllForOrder", ctx, ord.ID()).Return([]*piece.Piece{p1, p2}, nil)
	shipmentRepo.On("GetAllForOrder", ctx, ord.ID()).Return([]*shipment.Shipment{row}, nil)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()

	// Action 1 splits p1 off to a fresh reweighed row.
	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	shipmentRepo.On("Update", ctx, row).Return(nil).Once()
	pieceRepo.On("Update", ctx, p1).Return(nil).Once()

	// Action 3 deletes the declared row's last piece along with the row.
	shipmentRepo.On("Delete", ctx, row.ID()).Return(nil).Once()
	pieceRepo.On("Delete", ctx, p2.ID()).Return(nil).Once()

	factory := new(MockReweighUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewBulkReweighCommandHandler(factory, discardLogger())
	outcomes, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Equal(t, commands.BulkActionUpdate, outcomes[0].Kind)
	assert.Equal(t, "P60-1", outcomes[0].PieceCode)
	assert.True(t, outcomes[0].OK)

	assert.Equal(t, commands.BulkActionDelete, outcomes[1].Kind)
	assert.False(t, outcomes[1].OK)
	assert.Contains(t, outcomes[1].Error, "not found")

	assert.Equal(t, commands.BulkActionDelete, outcomes[2].Kind)
	assert.Equal(t, "P60-2", outcomes[2].PieceCode)
	assert.True(t, outcomes[2].OK)

	assert.True(t, p1.Reweighed())
	pieceRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	// The ledger still holds the unweighed p2 row in the read model, so no
	// finalization write happens.
	orderRepo.AssertExpectations(t)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestBulkReweighCommandHandler_Handle_MixedOrdersRejected(t *testing.T) {
	ctx := t.Context()

	declared := testDims(t, 10, 50, 40, 30)
	p1 := restoreTestPiece(t, 61, 1, kernel.NewUUID(), kernel.NewUUID(), declared, false)
	p2 := restoreTestPiece(t, 62, 1, kernel.NewUUID(), kernel.NewUUID(), declared, false)

	a1, err := commands.NewBulkReweighUpdateAction(p1.ID(), declared)
	require.NoError(t, err)
	a2, err := commands.NewBulkReweighUpdateAction(p2.ID(), declared)
	require.NoError(t, err)
	cmd, err := commands.NewBulkReweighCommand([]commands.BulkReweighAction{a1, a2}, kernel.NewUUID())
	require.NoError(t, err)

	pieceRepo := new(MockPieceRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("PieceRepository").Return(pieceRepo)

	pieceRepo.On("Get", ctx, p1.ID()).Return(p1, nil).Once()
	pieceRepo.On("Get", ctx, p2.ID()).Return(p2, nil).Once()

	factory := new(MockReweighUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewBulkReweighCommandHandler(factory, discardLogger())
	outcomes, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderMismatch)
	assert.Nil(t, outcomes)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestBulkReweighCommandHandler_Handle_AddEntersLedgerReweighed(t *testing.T) {
	ctx := t.Context()

	ord := restoreTestOrder(t, 63, order.PickedUp, false)
	declared := testDims(t, 10, 50, 40, 30)
	row := restoreTestShipment(t, ord.ID(), declared, 1)
	existing := restoreTestPiece(t, 63, 1, ord.ID(), row.ID(), declared, true)

	added := testDims(t, 4, 20, 20, 20)
	action, err := commands.NewBulkReweighAddAction(ord.ID(), added)
	require.NoError(t, err)
	cmd, err := commands.NewBulkReweighCommand([]commands.BulkReweighAction{action}, kernel.NewUUID())
	require.NoError(t, err)

	pieceRepo := new(MockPieceRepository)
	shipmentRepo := new(MockShipmentRepository)
	orderRepo := new(MockOrderRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("PieceRepository").Return(pieceRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("OrderHistoryRepository").Return(historyRepo)

	pieceRepo.On("GetAllForOrder", ctx, ord.ID()).Return([]*piece.Piece{existing}, nil)
	shipmentRepo.On("GetAllForOrder", ctx, ord.ID()).Return([]*shipment.Shipment{row}, nil)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil)

	shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	pieceRepo.On("Add", ctx, mock.AnythingOfType("*piece.Piece")).Return(nil).Once()
	orderRepo.On("Update", ctx, ord).Return(nil).Once()
	historyRepo.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once()

	factory := new(MockReweighUoWFactory)
	factory.On("Create").Return(uow)

	handler := commands.NewBulkReweighCommandHandler(factory, discardLogger())
	outcomes, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].OK)
	assert.Equal(t, "P63-2", outcomes[0].PieceCode)

	var inserted *piece.Piece
	for _, call := range pieceRepo.Calls {
		if call.Method == "Add" {
			inserted = call.Arguments[1].(*piece.Piece)
		}
	}
	require.NotNil(t, inserted)
	assert.True(t, inserted.Reweighed())
	assert.True(t, ord.Reweighed())

	pieceRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
}

func TestBulkReweighCommandHandler_Handle_FinalizedOrderRejected(t *testing.T) {
	ctx := t.Context()

	ord := restoreTestOrder(t, 64, order.PickedUp, true)
	declared := testDims(t, 10, 50, 40, 30)
	row := restoreTestShipment(t, ord.ID(), declared, 1)
	pc := restoreTestPiece(t, 64, 1, ord.ID(), row.ID(), declared, true)

	measured := testDims(t, 99, 50, 40, 30)
	action, err := commands.NewBulkReweighUpdateAction(pc.ID(), measured)
	require.NoError(t, err)
	cmd, err := commands.NewBulkReweighCommand([]commands.BulkReweighAction{action}, kernel.NewUUID())
	require.NoError(t, err)

	pieceRepo := new(MockPieceRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("PieceRepository").Return(pieceRepo)
	uow.On("OrderRepository").Return(orderRepo)

	pieceRepo.On("Get", ctx, pc.ID()).Return(pc, nil).Once()
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()

	factory := new(MockReweighUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewBulkReweighCommandHandler(factory, discardLogger())
	outcomes, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Nil(t, outcomes)
	assert.Equal(t, float64(10), pc.Dimensions().Weight())

	uow.AssertNotCalled(t, "Commit", ctx)
	pieceRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestBulkReweighAction_Constructors(t *testing.T) {
	dims := kernel.Dimensions{}

	_, err := commands.NewBulkReweighUpdateAction(kernel.UUID{}, dims)
	require.Error(t, err)

	_, err = commands.NewBulkReweighDeleteAction(kernel.UUID{})
	require.Error(t, err)

	_, err = commands.NewBulkReweighAddAction(kernel.NewUUID(), dims)
	require.Error(t, err)

	_, err = commands.NewBulkReweighCommand(nil, kernel.NewUUID())
	require.ErrorIs(t, err, commands.ErrActionsAreRequired)
}
