package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	officeLat, officeLon := 8.1631162, 77.4108498

	t.Run("zero at same point", func(t *testing.T) {
		assert.Equal(t, 0.0, Distance(officeLat, officeLon, officeLat, officeLon))
	})

	t.Run("symmetric", func(t *testing.T) {
		lat2, lon2 := 8.17, 77.42
		d1 := Distance(officeLat, officeLon, lat2, lon2)
		d2 := Distance(lat2, lon2, officeLat, officeLon)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("roughly one degree of latitude", func(t *testing.T) {
		// 1 degree of latitude is about 111.2 km
		d := Distance(0, 0, 1, 0)
		assert.InDelta(t, 111195, d, 200)
	})

	t.Run("small offset lands inside a 200m fence", func(t *testing.T) {
		// ~0.001 degree latitude is about 111m
		d := Distance(officeLat, officeLon, officeLat+0.001, officeLon)
		assert.Less(t, d, 200.0)
		assert.Greater(t, d, 100.0)
	})
}
