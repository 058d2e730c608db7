package validator

import (
	"math"
	"slices"
)

// Validator collects validation errors keyed by field name.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the errors map doesn't contain any entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error message to the map (so long as no entry already exists for
// the given key).
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check adds an error message to the map only if a validation check is not 'ok'.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// PermittedValue returns true if a specific value is in a list of permitted values.
func PermittedValue[T comparable](value T, permittedValues ...T) bool {
	return slices.Contains(permittedValues, value)
}

// Between reports whether value is a finite number within [lo, hi].
func Between(value, lo, hi float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value >= lo && value <= hi
}

// Latitude reports whether lat is a valid latitude in degrees.
func Latitude(lat float64) bool {
	return Between(lat, -90, 90)
}

// Longitude reports whether lon is a valid longitude in degrees.
func Longitude(lon float64) bool {
	return Between(lon, -180, 180)
}
