package kernel_test

import (
	"testing"

	"cargo/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("accepts valid coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(-6.2088, 106.8456)

		require.NoError(t, err)
		assert.InDelta(t, -6.2088, p.Lat(), 1e-9)
		assert.InDelta(t, 106.8456, p.Lon(), 1e-9)
	})

	t.Run("rejects latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 0)
		require.Error(t, err)
	})

	t.Run("rejects longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -181)
		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceTo(t *testing.T) {
	t.Run("known distance Jakarta to Surabaya", func(t *testing.T) {
		jakarta, err := kernel.NewGeoPoint(-6.2088, 106.8456)
		require.NoError(t, err)
		surabaya, err := kernel.NewGeoPoint(-7.2575, 112.7521)
		require.NoError(t, err)

		distance := jakarta.DistanceTo(surabaya)

		// Great-circle distance is roughly 663 km.
		assert.InDelta(t, 663, distance, 10)
		assert.InDelta(t, distance, surabaya.DistanceTo(jakarta), 1e-9)
	})

	t.Run("distance to self is zero", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(1.5, 103.8)
		require.NoError(t, err)

		assert.InDelta(t, 0, p.DistanceTo(p), 1e-9)
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var p kernel.GeoPoint

		assert.True(t, p.IsZero())
		require.Error(t, p.Validate())
	})
}
