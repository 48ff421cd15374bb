package piecerepo_test

import (
	"context"
	"testing"
	"time"

	"cargo/internal/adapters/out/postgres/piecerepo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker
// interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// PieceRepositoryIntegrationTestSuite provides integration tests for
// PieceRepository using PostgreSQL containers.
type PieceRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *piecerepo.GormPieceRepository
	tracker    *MockAggregateTracker
}

func (suite *PieceRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&piecerepo.PieceDTO{}))
}

func (suite *PieceRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE pieces").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = piecerepo.NewGormPieceRepository(suite.db, suite.tracker)
}

func (suite *PieceRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PieceRepositoryIntegrationTestSuite) createTestPiece(orderID kernel.UUID, n int) *piece.Piece {
	dims, err := kernel.NewDimensions(5, 40, 30, 20)
	suite.Require().NoError(err)

	pc, err := piece.NewPiece(kernel.NewUUID(), piece.BuildCode(1001, n), orderID, kernel.NewUUID(), dims)
	suite.Require().NoError(err)
	return pc
}

func (suite *PieceRepositoryIntegrationTestSuite) TestAdd_ValidPiece_Success() {
	ctx := context.Background()
	pc := suite.createTestPiece(kernel.NewUUID(), 1)

	suite.tracker.On("TrackAggregate", pc.ID(), pc).Once()

	err := suite.repository.Add(ctx, pc)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&piecerepo.PieceDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PieceRepositoryIntegrationTestSuite) TestGet_RoundTripsAllFlags() {
	ctx := context.Background()
	hubID := kernel.NewUUID()
	pc := suite.createTestPiece(kernel.NewUUID(), 1)

	measured, err := kernel.NewDimensions(6, 42, 30, 20)
	suite.Require().NoError(err)
	suite.Require().NoError(pc.Reweigh(measured))
	pc.MarkPickedUp()
	pc.MarkOutbound()
	suite.Require().NoError(pc.MarkReceived(hubID))

	suite.tracker.On("TrackAggregate", pc.ID(), pc).Once()
	suite.Require().NoError(suite.repository.Add(ctx, pc))

	retrieved, err := suite.repository.Get(ctx, pc.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.Reweighed())
	suite.True(retrieved.PickedUp())
	suite.True(retrieved.Outbound())
	suite.Equal(piece.InboundReceived, retrieved.Inbound())
	suite.Require().NotNil(retrieved.CurrentHubID())
	suite.True(retrieved.CurrentHubID().IsEqual(hubID))
	suite.True(retrieved.Dimensions().IsEqual(measured))
}

func (suite *PieceRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PieceRepositoryIntegrationTestSuite) TestGetByCode() {
	ctx := context.Background()
	pc := suite.createTestPiece(kernel.NewUUID(), 3)

	suite.tracker.On("TrackAggregate", pc.ID(), pc).Once()
	suite.Require().NoError(suite.repository.Add(ctx, pc))

	retrieved, err := suite.repository.GetByCode(ctx, pc.Code())
	suite.Require().NoError(err)
	suite.Equal(pc.ID(), retrieved.ID())

	_, err = suite.repository.GetByCode(ctx, "P9999-1")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PieceRepositoryIntegrationTestSuite) TestGetAllForOrder_OrderedByCode() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	for _, n := range []int{3, 1, 2} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.createTestPiece(orderID, n)))
	}
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestPiece(kernel.NewUUID(), 1)))

	pieces, err := suite.repository.GetAllForOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(pieces, 3)
	suite.Equal("P1001-1", pieces[0].Code())
	suite.Equal("P1001-2", pieces[1].Code())
	suite.Equal("P1001-3", pieces[2].Code())
}

func (suite *PieceRepositoryIntegrationTestSuite) TestMarkAllReceivedForOrders() {
	ctx := context.Background()
	hubID := kernel.NewUUID()
	orderA := kernel.NewUUID()
	orderB := kernel.NewUUID()
	orderC := kernel.NewUUID()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestPiece(orderA, 1)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestPiece(orderA, 2)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestPiece(orderB, 1)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestPiece(orderC, 1)))

	err := suite.repository.MarkAllReceivedForOrders(ctx, []kernel.UUID{orderA, orderB}, hubID)
	suite.Require().NoError(err)

	for _, orderID := range []kernel.UUID{orderA, orderB} {
		pieces, piecesErr := suite.repository.GetAllForOrder(ctx, orderID)
		suite.Require().NoError(piecesErr)
		for _, pc := range pieces {
			suite.Equal(piece.InboundReceived, pc.Inbound())
			suite.Require().NotNil(pc.CurrentHubID())
			suite.True(pc.CurrentHubID().IsEqual(hubID))
		}
	}

	untouched, err := suite.repository.GetAllForOrder(ctx, orderC)
	suite.Require().NoError(err)
	suite.Equal(piece.InboundPending, untouched[0].Inbound())
}

func TestPieceRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(PieceRepositoryIntegrationTestSuite))
}
