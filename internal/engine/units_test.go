package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sitecraft/estimate-api/internal/domain"
)

func TestToMeters(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  domain.MeasurementUnit
		want  float64
	}{
		{"meters unchanged", 2.5, domain.UnitMeters, 2.5},
		{"feet", 10, domain.UnitFeet, 3.048},
		{"inches", 12, domain.UnitInches, 0.3048},
		{"centimeters", 250, domain.UnitCentimeters, 2.5},
		{"zero", 0, domain.UnitFeet, 0},
		{"negative preserved", -2, domain.UnitMeters, -2},
		{"unknown unit unchanged", 7, domain.MeasurementUnit("furlongs"), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToMeters(tt.value, tt.unit), 1e-9)
		})
	}
}

func TestToMeters_NonFinite(t *testing.T) {
	assert.Equal(t, 0.0, ToMeters(math.NaN(), domain.UnitMeters))
	assert.Equal(t, 0.0, ToMeters(math.Inf(1), domain.UnitFeet))
	assert.Equal(t, 0.0, ToMeters(math.Inf(-1), domain.UnitInches))
}
