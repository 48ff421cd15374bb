package courier_test

import (
	"testing"
	"time"

	"cargo/internal/core/domain/model/courier"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCourier(t *testing.T) *courier.Courier {
	t.Helper()
	loc, err := kernel.NewGeoPoint(-6.2, 106.8)
	require.NoError(t, err)

	c, err := courier.NewCourier(kernel.NewUUID(), "Budi", kernel.NewUUID(), loc)
	require.NoError(t, err)
	return c
}

func TestNewCourier(t *testing.T) {
	t.Run("starts active but offline", func(t *testing.T) {
		c := newTestCourier(t)

		assert.False(t, c.IsEligible())

		c.SetOnline(true)
		assert.True(t, c.IsEligible())
	})

	t.Run("requires a name", func(t *testing.T) {
		loc, err := kernel.NewGeoPoint(-6.2, 106.8)
		require.NoError(t, err)

		_, err = courier.NewCourier(kernel.NewUUID(), "", kernel.NewUUID(), loc)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCourier_Eligibility(t *testing.T) {
	t.Run("funds freeze blocks", func(t *testing.T) {
		c := newTestCourier(t)
		c.SetOnline(true)
		c.FreezeFunds()
		assert.False(t, c.IsEligible())
	})

	t.Run("gps freeze blocks", func(t *testing.T) {
		c := newTestCourier(t)
		c.SetOnline(true)
		c.FreezeGPS()
		assert.False(t, c.IsEligible())
	})

	t.Run("deactivation blocks", func(t *testing.T) {
		c := newTestCourier(t)
		c.SetOnline(true)
		c.Deactivate()
		assert.False(t, c.IsEligible())
	})
}

func TestCourier_Workload(t *testing.T) {
	c := newTestCourier(t)
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	c.RecordAssignment(at)
	c.RecordAssignment(at.Add(time.Hour))

	assert.Equal(t, 2, c.OpenTaskCount())
	assert.Equal(t, at.Add(time.Hour), c.LastAssignedAt())

	c.CompleteTask()
	c.CompleteTask()
	c.CompleteTask()
	assert.Equal(t, 0, c.OpenTaskCount())
}

func TestCourier_MoveTo(t *testing.T) {
	c := newTestCourier(t)

	next, err := kernel.NewGeoPoint(-6.3, 106.9)
	require.NoError(t, err)
	require.NoError(t, c.MoveTo(next))
	assert.Equal(t, next, c.Location())

	require.Error(t, c.MoveTo(kernel.GeoPoint{}))
}
