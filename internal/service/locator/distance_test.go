package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want float64
	}{
		{"one degree of longitude at the equator", Coordinate{0, 0}, Coordinate{0, 1}, 111.19492664455873},
		{"one degree of latitude", Coordinate{0, 0}, Coordinate{1, 0}, 111.19492664455873},
		{"bogota to south bogota", Coordinate{4.7110, -74.0721}, Coordinate{4.6097, -74.0817}, 11.314181644709388},
		{"bogota to medellin", Coordinate{4.7110, -74.0721}, Coordinate{6.2442, -75.5812}, 238.67296348370888},
		{"london to paris", Coordinate{51.5074, -0.1278}, Coordinate{48.8566, 2.3522}, 343.55606034104153},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), 1e-9)
		})
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	points := []Coordinate{
		{0, 0}, {4.7110, -74.0721}, {-33.4489, -70.6693}, {89.9, 179.9}, {-90, -180}, {35.6762, 139.6503},
	}
	for _, a := range points {
		for _, b := range points {
			assert.Equal(t, Distance(a, b), Distance(b, a), "distance(%v,%v)", a, b)
		}
	}
}

func TestHaversineDistance_SamePointIsZero(t *testing.T) {
	for _, c := range []Coordinate{{0, 0}, {90, 0}, {-90, 180}, {4.7110, -74.0721}} {
		assert.Zero(t, Distance(c, c))
	}
}

func TestHaversineDistance_Antipodal(t *testing.T) {
	// half of the circumference, and never NaN
	d := Distance(Coordinate{0, 0}, Coordinate{0, 180})
	assert.InDelta(t, 20015.086796020572, d, 1e-6)
}

func BenchmarkHaversineDistance(b *testing.B) {
	for b.Loop() {
		_ = HaversineDistance(4.7110, -74.0721, 6.2442, -75.5812)
	}
}
