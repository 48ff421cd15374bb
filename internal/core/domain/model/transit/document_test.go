package transit_test

import (
	"testing"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/transit"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCode(t *testing.T) {
	date := time.Date(2026, 3, 7, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "20260307JKT001", transit.BuildCode(date, "JKT", 1))
	assert.Equal(t, "20260307SBY012", transit.BuildCode(date, "SBY", 12))
	assert.Equal(t, "20260307SBY123", transit.BuildCode(date, "SBY", 123))
}

func newTestDocument(t *testing.T) *transit.Document {
	t.Helper()
	d, err := transit.NewDocument(
		kernel.NewUUID(), "20260307JKT001",
		kernel.NewUUID(), kernel.NewUUID(), nil,
		[]string{"TRK-1", "TRK-2"},
		kernel.NewUUID(), kernel.NewUUID(),
		"linehaul",
	)
	require.NoError(t, err)
	return d
}

func TestNewDocument(t *testing.T) {
	t.Run("starts created", func(t *testing.T) {
		d := newTestDocument(t)

		assert.Equal(t, transit.StatusCreated, d.Status())
		assert.True(t, d.Contains("TRK-1"))
		assert.False(t, d.Contains("TRK-9"))
	})

	t.Run("rejects same origin and destination", func(t *testing.T) {
		hub := kernel.NewUUID()

		_, err := transit.NewDocument(
			kernel.NewUUID(), "20260307JKT001",
			hub, hub, nil,
			[]string{"TRK-1"},
			kernel.NewUUID(), kernel.NewUUID(),
			"linehaul",
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects empty and duplicate tracking codes", func(t *testing.T) {
		_, err := transit.NewDocument(
			kernel.NewUUID(), "20260307JKT001",
			kernel.NewUUID(), kernel.NewUUID(), nil,
			nil,
			kernel.NewUUID(), kernel.NewUUID(),
			"linehaul",
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = transit.NewDocument(
			kernel.NewUUID(), "20260307JKT001",
			kernel.NewUUID(), kernel.NewUUID(), nil,
			[]string{"TRK-1", "TRK-1"},
			kernel.NewUUID(), kernel.NewUUID(),
			"linehaul",
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDocument_ReplaceTrackingCodes(t *testing.T) {
	t.Run("replaces while created", func(t *testing.T) {
		d := newTestDocument(t)

		require.NoError(t, d.ReplaceTrackingCodes([]string{"TRK-3"}))

		assert.Equal(t, []string{"TRK-3"}, d.TrackingCodes())
	})

	t.Run("blocked after arrival", func(t *testing.T) {
		d := newTestDocument(t)
		require.NoError(t, d.MarkArrived())

		err := d.ReplaceTrackingCodes([]string{"TRK-3"})

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, []string{"TRK-1", "TRK-2"}, d.TrackingCodes())
	})
}

func TestDocument_MarkArrived(t *testing.T) {
	d := newTestDocument(t)

	require.NoError(t, d.MarkArrived())
	assert.Equal(t, transit.StatusArrived, d.Status())

	require.ErrorIs(t, d.MarkArrived(), errs.ErrInvalidState)
}

func TestRestoreDocument(t *testing.T) {
	created := time.Date(2026, 3, 7, 8, 0, 0, 0, time.UTC)
	via := kernel.NewUUID()

	d, err := transit.RestoreDocument(
		kernel.NewUUID(), "20260307JKT002",
		kernel.NewUUID(), kernel.NewUUID(), &via,
		[]string{"TRK-5"},
		kernel.NewUUID(), kernel.NewUUID(),
		transit.StatusArrived, "linehaul", created,
	)

	require.NoError(t, err)
	assert.Equal(t, transit.StatusArrived, d.Status())
	assert.Equal(t, created, d.CreatedAt())
	require.NotNil(t, d.TransitHubID())
	assert.True(t, d.TransitHubID().IsEqual(via))

	_, err = transit.RestoreDocument(
		kernel.NewUUID(), "20260307JKT002",
		kernel.NewUUID(), kernel.NewUUID(), nil,
		[]string{"TRK-5"},
		kernel.NewUUID(), kernel.NewUUID(),
		transit.StatusUnknown, "linehaul", created,
	)
	require.Error(t, err)
}

func TestDocument_Validate(t *testing.T) {
	var zero transit.Document
	require.ErrorIs(t, zero.Validate(), transit.ErrDocumentIsNotConstructed)

	d := newTestDocument(t)
	assert.NoError(t, d.Validate())
}
