package piece_test

import (
	"testing"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/piece"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDims(t *testing.T, w, l, wd, h float64) kernel.Dimensions {
	t.Helper()
	d, err := kernel.NewDimensions(w, l, wd, h)
	require.NoError(t, err)
	return d
}

func newTestPiece(t *testing.T) *piece.Piece {
	t.Helper()
	p, err := piece.NewPiece(
		kernel.NewUUID(),
		piece.BuildCode(42, 1),
		kernel.NewUUID(),
		kernel.NewUUID(),
		mustDims(t, 10, 100, 50, 50),
	)
	require.NoError(t, err)
	return p
}

func TestNewPiece(t *testing.T) {
	t.Run("valid piece", func(t *testing.T) {
		p := newTestPiece(t)

		require.NoError(t, p.Validate())
		assert.Equal(t, "P42-1", p.Code())
		assert.False(t, p.Reweighed())
		assert.Equal(t, piece.InboundPending, p.Inbound())
	})

	t.Run("empty code rejected", func(t *testing.T) {
		_, err := piece.NewPiece(kernel.NewUUID(), "", kernel.NewUUID(), kernel.NewUUID(), mustDims(t, 1, 1, 1, 1))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var p piece.Piece
		require.ErrorIs(t, p.Validate(), piece.ErrPieceIsNotConstructed)
	})
}

func TestPiece_Reweigh(t *testing.T) {
	t.Run("first reweigh succeeds", func(t *testing.T) {
		p := newTestPiece(t)
		measured := mustDims(t, 12, 90, 45, 45)

		require.NoError(t, p.Reweigh(measured))

		assert.True(t, p.Reweighed())
		assert.True(t, p.Dimensions().IsEqual(measured))
	})

	t.Run("second reweigh rejected", func(t *testing.T) {
		p := newTestPiece(t)
		require.NoError(t, p.Reweigh(mustDims(t, 12, 90, 45, 45)))

		err := p.Reweigh(mustDims(t, 13, 90, 45, 45))

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("correction bypasses the once-only guard", func(t *testing.T) {
		p := newTestPiece(t)
		require.NoError(t, p.Reweigh(mustDims(t, 12, 90, 45, 45)))

		corrected := mustDims(t, 11, 90, 45, 45)
		require.NoError(t, p.ApplyCorrection(corrected))
		assert.True(t, p.Dimensions().IsEqual(corrected))
	})
}

func TestPiece_StageTransitions(t *testing.T) {
	p := newTestPiece(t)
	hubID := kernel.NewUUID()

	p.MarkPickedUp()
	assert.True(t, p.StageFlags().PickedUp)

	p.MarkOutbound()
	assert.True(t, p.StageFlags().Outbound)
	assert.Equal(t, piece.InboundPending, p.StageFlags().Inbound)

	require.NoError(t, p.MarkReceived(hubID))
	assert.Equal(t, piece.InboundReceived, p.StageFlags().Inbound)
	require.NotNil(t, p.CurrentHubID())
	assert.True(t, p.CurrentHubID().IsEqual(hubID))

	p.MarkDelivered()
	assert.True(t, p.StageFlags().Delivered)
}

func TestNextCode(t *testing.T) {
	t.Run("increments max suffix", func(t *testing.T) {
		codes := []string{"P7-1", "P7-3", "P7-2"}
		assert.Equal(t, "P7-4", piece.NextCode(7, codes))
	})

	t.Run("ignores foreign and malformed codes", func(t *testing.T) {
		codes := []string{"P7-2", "P8-9", "P7-x"}
		assert.Equal(t, "P7-3", piece.NextCode(7, codes))
	})

	t.Run("starts at one", func(t *testing.T) {
		assert.Equal(t, "P7-1", piece.NextCode(7, nil))
	})
}
