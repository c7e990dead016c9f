package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid_coordinates", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(6.3703, 2.3912)

		require.NoError(t, err)
		require.NoError(t, point.Validate())
		assert.InDelta(t, 6.3703, point.Latitude(), 1e-9)
		assert.InDelta(t, 2.3912, point.Longitude(), 1e-9)
	})

	t.Run("boundary_coordinates", func(t *testing.T) {
		for _, c := range [][2]float64{
			{kernel.MinLatitude, kernel.MinLongitude},
			{kernel.MaxLatitude, kernel.MaxLongitude},
			{0, 0},
		} {
			_, err := kernel.NewGeoPoint(c[0], c[1])
			require.NoError(t, err)
		}
	})

	t.Run("latitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.5, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("longitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, err := kernel.NewGeoPoint(1.5, 2.5)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(1.5, 2.5)
	require.NoError(t, err)
	c, err := kernel.NewGeoPoint(1.5, 3.5)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestGeoPoint_Validate_ZeroValue(t *testing.T) {
	var point kernel.GeoPoint

	require.Error(t, point.Validate())
}
