package commands_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/correction"
	"cargo/internal/core/domain/model/courier"
	"cargo/internal/core/domain/model/hub"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/core/domain/model/shipment"
	"cargo/internal/core/domain/model/transit"
	"cargo/internal/core/domain/model/vehicle"
	"cargo/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDims(t *testing.T, weight, length, width, height float64) kernel.Dimensions {
	t.Helper()
	d, err := kernel.NewDimensions(weight, length, width, height)
	require.NoError(t, err)
	return d
}

// testTrackingCode renders the public tracking code for an order number.
func testTrackingCode(no int64) string {
	return fmt.Sprintf("CGO%08d", no)
}

// restoreTestOrder builds an order in an arbitrary status for handler tests.
func restoreTestOrder(t *testing.T, no int64, status order.Status, reweighed bool) *order.Order {
	t.Helper()
	ord, err := order.RestoreOrder(
		kernel.NewUUID(), no, testTrackingCode(no), status,
		kernel.NewUUID(), kernel.NewUUID(),
		nil, nil, nil, nil, nil, nil,
		reweighed, false, false,
		nil,
		time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, err)
	return ord
}

// restoreTestPiece builds a piece on the given order and shipment row.
func restoreTestPiece(t *testing.T, orderNo int64, n int, orderID, shipmentID kernel.UUID, dims kernel.Dimensions, reweighed bool) *piece.Piece {
	t.Helper()
	pc, err := piece.RestorePiece(
		kernel.NewUUID(), piece.BuildCode(orderNo, n), orderID, shipmentID,
		dims, reweighed, false, false, piece.InboundPending, false, nil,
	)
	require.NoError(t, err)
	return pc
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingCode(ctx context.Context, trackingCode string) (*order.Order, error) {
	args := m.Called(ctx, trackingCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllDueForPickupRelease(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllAwaitingPickupAssignment(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) NextOrderNo(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Add(ctx context.Context, entry *order.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.HistoryEntry), args.Error(1)
}

type MockPieceRepository struct{ mock.Mock }

func (m *MockPieceRepository) Add(ctx context.Context, pc *piece.Piece) error {
	args := m.Called(ctx, pc)
	return args.Error(0)
}

func (m *MockPieceRepository) Update(ctx context.Context, pc *piece.Piece) error {
	args := m.Called(ctx, pc)
	return args.Error(0)
}

func (m *MockPieceRepository) Get(ctx context.Context, id kernel.UUID) (*piece.Piece, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*piece.Piece), args.Error(1)
}

func (m *MockPieceRepository) GetByCode(ctx context.Context, code string) (*piece.Piece, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*piece.Piece), args.Error(1)
}

func (m *MockPieceRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*piece.Piece, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*piece.Piece), args.Error(1)
}

func (m *MockPieceRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPieceRepository) MarkAllReceivedForOrders(ctx context.Context, orderIDs []kernel.UUID, hubID kernel.UUID) error {
	args := m.Called(ctx, orderIDs, hubID)
	return args.Error(0)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, row *shipment.Shipment) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, row *shipment.Shipment) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockShipmentRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTransitRepository struct{ mock.Mock }

func (m *MockTransitRepository) Add(ctx context.Context, doc *transit.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockTransitRepository) Update(ctx context.Context, doc *transit.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockTransitRepository) Get(ctx context.Context, id kernel.UUID) (*transit.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transit.Document), args.Error(1)
}

func (m *MockTransitRepository) NextSequenceForHubDate(ctx context.Context, destHubID kernel.UUID, date time.Time) (int, error) {
	args := m.Called(ctx, destHubID, date)
	return args.Int(0), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllActive(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockCorrectionRepository struct{ mock.Mock }

func (m *MockCorrectionRepository) Add(ctx context.Context, req *correction.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockCorrectionRepository) Update(ctx context.Context, req *correction.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockCorrectionRepository) Get(ctx context.Context, id kernel.UUID) (*correction.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*correction.Request), args.Error(1)
}

func (m *MockCorrectionRepository) GetAllPendingForOrder(ctx context.Context, orderID kernel.UUID) ([]*correction.Request, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*correction.Request), args.Error(1)
}

type MockHubRepository struct{ mock.Mock }

func (m *MockHubRepository) Get(ctx context.Context, id kernel.UUID) (*hub.Hub, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hub.Hub), args.Error(1)
}

func (m *MockHubRepository) GetByCode(ctx context.Context, code string) (*hub.Hub, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hub.Hub), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// MockUoW satisfies every composite unit-of-work role interface in the
// package, so one mock serves all handler tests.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OrderHistoryRepository() ports.OrderHistoryRepository {
	return m.Called().Get(0).(ports.OrderHistoryRepository)
}

func (m *MockUoW) PieceRepository() ports.PieceRepository {
	return m.Called().Get(0).(ports.PieceRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) TransitRepository() ports.TransitRepository {
	return m.Called().Get(0).(ports.TransitRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	return m.Called().Get(0).(ports.CourierRepository)
}

func (m *MockUoW) CorrectionRepository() ports.CorrectionRepository {
	return m.Called().Get(0).(ports.CorrectionRepository)
}

func (m *MockUoW) HubRepository() ports.HubRepository {
	return m.Called().Get(0).(ports.HubRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	return m.Called().Get(0).(ports.VehicleRepository)
}

type MockIntakeUoWFactory struct{ mock.Mock }

func (m *MockIntakeUoWFactory) Create() commands.IntakeUoW {
	return m.Called().Get(0).(commands.IntakeUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockReweighUoWFactory struct{ mock.Mock }

func (m *MockReweighUoWFactory) Create() commands.ReweighUoW {
	return m.Called().Get(0).(commands.ReweighUoW)
}

type MockCorrectionUoWFactory struct{ mock.Mock }

func (m *MockCorrectionUoWFactory) Create() commands.CorrectionUoW {
	return m.Called().Get(0).(commands.CorrectionUoW)
}

type MockTransitUoWFactory struct{ mock.Mock }

func (m *MockTransitUoWFactory) Create() commands.TransitUoW {
	return m.Called().Get(0).(commands.TransitUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return m.Called().Get(0).(commands.DeliveryUoW)
}

type MockAssignUoWFactory struct{ mock.Mock }

func (m *MockAssignUoWFactory) Create() commands.AssignUoW {
	return m.Called().Get(0).(commands.AssignUoW)
}

type MockFileStorage struct{ mock.Mock }

func (m *MockFileStorage) Store(ctx context.Context, ownerID kernel.UUID, purpose string, content []byte) (string, error) {
	args := m.Called(ctx, ownerID, purpose, content)
	return args.String(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, category string, orderID kernel.UUID, hubID *kernel.UUID) error {
	args := m.Called(ctx, category, orderID, hubID)
	return args.Error(0)
}

type MockDocumentRenderer struct{ mock.Mock }

func (m *MockDocumentRenderer) RenderTransitDocument(ctx context.Context, doc *transit.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

type MockRateProvider struct{ mock.Mock }

func (m *MockRateProvider) Quote(ctx context.Context, sourceHubID, destHubID kernel.UUID, chargeableWeight float64) (int64, error) {
	args := m.Called(ctx, sourceHubID, destHubID, chargeableWeight)
	return args.Get(0).(int64), args.Error(1)
}
