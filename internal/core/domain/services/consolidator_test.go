package services_test

import (
	"testing"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/core/domain/model/shipment"
	"cargo/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dims(t *testing.T, w, l, wd, h float64) kernel.Dimensions {
	t.Helper()
	d, err := kernel.NewDimensions(w, l, wd, h)
	require.NoError(t, err)
	return d
}

func reweighedPiece(t *testing.T, orderID, shipmentID kernel.UUID, d kernel.Dimensions, code string) *piece.Piece {
	t.Helper()
	p, err := piece.RestorePiece(
		kernel.NewUUID(), code, orderID, shipmentID, d,
		true, false, false, piece.InboundPending, false, nil,
	)
	require.NoError(t, err)
	return p
}

func TestShipmentConsolidator_FindOrCreate(t *testing.T) {
	c := services.NewShipmentConsolidator()
	orderID := kernel.NewUUID()

	t.Run("creates new row on miss", func(t *testing.T) {
		res, err := c.FindOrCreate(orderID, nil, nil, dims(t, 10, 40, 30, 20))

		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, 1, res.Shipment.Qty())
		assert.Equal(t, 1, res.Shipment.QtyReweigh())
		assert.True(t, res.Shipment.ReweighDimensions().IsEqual(dims(t, 10, 40, 30, 20)))
	})

	t.Run("matches reweighed dimensions before original", func(t *testing.T) {
		d := dims(t, 10, 40, 30, 20)
		byOriginal, err := shipment.NewShipment(kernel.NewUUID(), orderID, d, 2)
		require.NoError(t, err)
		byReweigh, err := shipment.NewReweighedShipment(kernel.NewUUID(), orderID, d)
		require.NoError(t, err)

		res, err := c.FindOrCreate(orderID, []*shipment.Shipment{byOriginal, byReweigh}, nil, d)

		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.True(t, res.Shipment.ID().IsEqual(byReweigh.ID()))
	})

	t.Run("counters recomputed from piece ledger on hit", func(t *testing.T) {
		d := dims(t, 10, 40, 30, 20)
		row, err := shipment.NewReweighedShipment(kernel.NewUUID(), orderID, d)
		require.NoError(t, err)
		pieces := []*piece.Piece{
			reweighedPiece(t, orderID, row.ID(), d, "P1-1"),
			reweighedPiece(t, orderID, row.ID(), d, "P1-2"),
		}

		res, err := c.FindOrCreate(orderID, []*shipment.Shipment{row}, pieces, d)

		require.NoError(t, err)
		assert.Equal(t, 3, res.Shipment.Qty())
		assert.Equal(t, 3, res.Shipment.QtyReweigh())
	})
}

func TestShipmentConsolidator_Reduce(t *testing.T) {
	c := services.NewShipmentConsolidator()
	orderID := kernel.NewUUID()

	t.Run("last piece removes the row", func(t *testing.T) {
		d := dims(t, 10, 40, 30, 20)
		row, err := shipment.NewReweighedShipment(kernel.NewUUID(), orderID, d)
		require.NoError(t, err)
		p := reweighedPiece(t, orderID, row.ID(), d, "P1-1")

		res, err := c.Reduce([]*shipment.Shipment{row}, []*piece.Piece{p}, p)

		require.NoError(t, err)
		assert.True(t, res.Removed)
		assert.False(t, res.DriftRepaired)
	})

	t.Run("drift is repaired before decrement", func(t *testing.T) {
		d := dims(t, 10, 40, 30, 20)
		// Stored counters claim 5 reweighed pieces; the ledger holds 2.
		row, err := shipment.RestoreShipment(kernel.NewUUID(), orderID, d, 5, d, 5)
		require.NoError(t, err)
		p1 := reweighedPiece(t, orderID, row.ID(), d, "P1-1")
		p2 := reweighedPiece(t, orderID, row.ID(), d, "P1-2")

		res, err := c.Reduce([]*shipment.Shipment{row}, []*piece.Piece{p1, p2}, p1)

		require.NoError(t, err)
		assert.True(t, res.DriftRepaired)
		assert.False(t, res.Removed)
		assert.Equal(t, 4, res.Shipment.Qty())
		assert.Equal(t, 1, res.Shipment.QtyReweigh())
	})

	t.Run("unknown row is not found", func(t *testing.T) {
		p := reweighedPiece(t, orderID, kernel.NewUUID(), dims(t, 1, 2, 3, 4), "P1-1")

		_, err := c.Reduce(nil, []*piece.Piece{p}, p)

		require.Error(t, err)
	})
}

func TestShipmentConsolidator_AddThenDeleteIsIdempotent(t *testing.T) {
	c := services.NewShipmentConsolidator()
	orderID := kernel.NewUUID()
	d := dims(t, 10, 40, 30, 20)

	row, err := shipment.NewReweighedShipment(kernel.NewUUID(), orderID, d)
	require.NoError(t, err)
	existing := reweighedPiece(t, orderID, row.ID(), d, "P1-1")

	priorQty, priorReweigh := row.Qty(), row.QtyReweigh()

	// Add a second piece with the same dimensions.
	res, err := c.FindOrCreate(orderID, []*shipment.Shipment{row}, []*piece.Piece{existing}, d)
	require.NoError(t, err)
	require.False(t, res.Created)
	added := reweighedPiece(t, orderID, row.ID(), d, "P1-2")
	assert.Equal(t, 2, row.Qty())

	// Delete it again.
	reduce, err := c.Reduce([]*shipment.Shipment{row}, []*piece.Piece{existing, added}, added)
	require.NoError(t, err)
	require.False(t, reduce.Removed)

	assert.Equal(t, priorQty, row.Qty())
	assert.Equal(t, priorReweigh, row.QtyReweigh())
}

func TestShipmentConsolidator_Reassign(t *testing.T) {
	c := services.NewShipmentConsolidator()
	orderID := kernel.NewUUID()
	oldDims := dims(t, 10, 40, 30, 20)
	newDims := dims(t, 12, 40, 30, 20)

	t.Run("attaches to new row before reducing old", func(t *testing.T) {
		oldRow, err := shipment.RestoreShipment(kernel.NewUUID(), orderID, oldDims, 2, oldDims, 2)
		require.NoError(t, err)
		moving := reweighedPiece(t, orderID, oldRow.ID(), oldDims, "P1-1")
		staying := reweighedPiece(t, orderID, oldRow.ID(), oldDims, "P1-2")

		attach, reduce, err := c.Reassign(orderID, []*shipment.Shipment{oldRow}, []*piece.Piece{moving, staying}, moving, newDims)

		require.NoError(t, err)
		assert.True(t, attach.Created)
		assert.True(t, moving.ShipmentID().IsEqual(attach.Shipment.ID()))
		assert.False(t, reduce.Removed)
		assert.Equal(t, 1, oldRow.Qty())
		assert.GreaterOrEqual(t, oldRow.Qty(), 0)
	})

	t.Run("same row is a no-op reduction", func(t *testing.T) {
		row, err := shipment.NewReweighedShipment(kernel.NewUUID(), orderID, oldDims)
		require.NoError(t, err)
		p := reweighedPiece(t, orderID, row.ID(), oldDims, "P1-1")

		attach, reduce, err := c.Reassign(orderID, []*shipment.Shipment{row}, []*piece.Piece{p}, p, oldDims)

		require.NoError(t, err)
		assert.False(t, attach.Created)
		assert.False(t, reduce.Removed)
		assert.True(t, attach.Shipment.ID().IsEqual(row.ID()))
	})

	t.Run("old row emptied by reassignment is removed", func(t *testing.T) {
		oldRow, err := shipment.NewReweighedShipment(kernel.NewUUID(), orderID, oldDims)
		require.NoError(t, err)
		moving := reweighedPiece(t, orderID, oldRow.ID(), oldDims, "P1-1")

		_, reduce, err := c.Reassign(orderID, []*shipment.Shipment{oldRow}, []*piece.Piece{moving}, moving, newDims)

		require.NoError(t, err)
		assert.True(t, reduce.Removed)
		assert.True(t, reduce.Shipment.ID().IsEqual(oldRow.ID()))
	})
}

func TestShipmentConsolidator_SeedIntake(t *testing.T) {
	c := services.NewShipmentConsolidator()
	orderID := kernel.NewUUID()

	small := dims(t, 5, 20, 20, 20)
	big := dims(t, 10, 40, 30, 20)

	rows, index, err := c.SeedIntake(orderID, []kernel.Dimensions{small, big, small})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []int{0, 1, 0}, index)
	assert.Equal(t, 2, rows[0].Qty())
	assert.Equal(t, 1, rows[1].Qty())
	assert.Equal(t, 0, rows[0].QtyReweigh())
}
