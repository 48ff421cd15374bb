package commands_test

import (
	"testing"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartDeliveryHandler_AssignsCourierAndRecordsHistory(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()

	ord := restoreTestOrder(t, 80, order.OutForDelivery, true)
	c := eligibleCourier(t, kernel.NewUUID())
	tasksBefore := c.OpenTaskCount()

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockUoW)
	factory := new(MockDeliveryUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("OrderHistoryRepository").Return(historyRepo)

	orderRepo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once()
	orderRepo.On("Update", ctx, ord).Return(nil).Once()
	courierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once()
	courierRepo.On("Update", ctx, c).Return(nil).Once()
	historyRepo.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once()

	handler := commands.NewStartDeliveryCommandHandler(factory)
	cmd, err := commands.NewStartDeliveryCommand(ord.ID(), c.ID(), actorID)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	require.NotNil(t, ord.DeliveryCourierID())
	require.True(t, ord.DeliveryCourierID().IsEqual(c.ID()))
	require.Equal(t, tasksBefore+1, c.OpenTaskCount())

	for _, call := range historyRepo.Calls {
		if call.Method != "Add" {
			continue
		}
		entry := call.Arguments.Get(1).(*order.HistoryEntry)
		require.Equal(t, order.OutForDelivery, entry.Status())
		require.True(t, entry.ActorID().IsEqual(actorID))
	}

	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestStartDeliveryHandler_RejectsOrderNotOutForDelivery(t *testing.T) {
	ctx := t.Context()

	ord := restoreTestOrder(t, 81, order.InTransit, true)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockDeliveryUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)

	orderRepo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once()

	handler := commands.NewStartDeliveryCommandHandler(factory)
	cmd, err := commands.NewStartDeliveryCommand(ord.ID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	uow.AssertNotCalled(t, "Commit", ctx)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestStartDeliveryHandler_RejectsIneligibleCourier(t *testing.T) {
	ctx := t.Context()

	ord := restoreTestOrder(t, 82, order.OutForDelivery, true)
	c := offlineCourier(t, kernel.NewUUID())

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	factory := new(MockDeliveryUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)

	orderRepo.On("GetForUpdate", ctx, ord.ID()).Return(ord, nil).Once()
	courierRepo.On("Get", ctx, c.ID()).Return(c, nil).Once()

	handler := commands.NewStartDeliveryCommandHandler(factory)
	cmd, err := commands.NewStartDeliveryCommand(ord.ID(), c.ID(), kernel.NewUUID())
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	require.Nil(t, ord.DeliveryCourierID())
	uow.AssertNotCalled(t, "Commit", ctx)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	courierRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}
