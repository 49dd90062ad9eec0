package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialWastagePercent(t *testing.T) {
	tests := []struct {
		name     string
		declared float64
		area     float64
		want     float64
	}{
		{"low tier small area", 3, 40, 5},
		{"low tier at small boundary", 3, 55, 5},
		{"low tier medium area", 3, 150, 3},
		{"low tier large area", 3, 500, 2},
		{"mid tier small area", 5, 40, 10},
		{"mid tier medium area", 5, 200, 7},
		{"mid tier large area", 5, 201, 5},
		{"top tier small area", 10, 55, 15},
		{"top tier medium area", 10, 120, 12},
		{"top tier large area", 10, 1000, 10},
		{"zero declared falls in low tier", 0, 40, 5},
		{"just above mid threshold is top tier", 5.02, 40, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaterialWastagePercent(tt.declared, tt.area))
		})
	}
}

func TestMaterialWastageFactor(t *testing.T) {
	assert.InDelta(t, 1.05, MaterialWastageFactor(3, 40), 1e-9)
	assert.InDelta(t, 1.10, MaterialWastageFactor(5, 40), 1e-9)
	assert.InDelta(t, 1.15, MaterialWastageFactor(10, 40), 1e-9)
}

func TestRoomAreaWastageFactor(t *testing.T) {
	tests := []struct {
		area float64
		want float64
	}{
		{0, 1.20},
		{20, 1.20},
		{20.01, 1.16},
		{47, 1.16},
		{50, 1.16},
		{51, 1.08},
		{100, 1.08},
		{101, 1.05},
		{999, 1.05},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoomAreaWastageFactor(tt.area), "area %v", tt.area)
	}
}
