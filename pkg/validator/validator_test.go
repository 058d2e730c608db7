package validator

import (
	"math"
	"testing"
)

func TestValidator_FirstErrorWins(t *testing.T) {
	v := New()
	v.Check(false, "latitude", "must be provided")
	v.Check(false, "latitude", "must be between -90 and 90")
	v.Check(true, "longitude", "must be provided")

	if v.Valid() {
		t.Fatalf("expected validator to be invalid")
	}
	if got := v.Errors["latitude"]; got != "must be provided" {
		t.Fatalf("unexpected message: %q", got)
	}
	if _, ok := v.Errors["longitude"]; ok {
		t.Fatalf("longitude must not have an error")
	}
}

func TestCoordinateRanges(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"lat upper bound", Latitude(90), true},
		{"lat above range", Latitude(90.0001), false},
		{"lat nan", Latitude(math.NaN()), false},
		{"lon lower bound", Longitude(-180), true},
		{"lon below range", Longitude(-180.5), false},
		{"lon inf", Longitude(math.Inf(1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestPermittedValue(t *testing.T) {
	if !PermittedValue("ACTIVE", "ACTIVE", "EXPIRED") {
		t.Fatalf("ACTIVE must be permitted")
	}
	if PermittedValue("PENDING", "ACTIVE", "EXPIRED") {
		t.Fatalf("PENDING must not be permitted")
	}
}
