package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasalArea(t *testing.T) {
	// 30 cm DBH: π·15²/10000 ≈ 0.070686 m²
	assert.InDelta(t, 0.070686, BasalArea(30), 1e-5)
	assert.InDelta(t, math.Pi/4*1e-4, BasalArea(1), 1e-12)
	assert.Zero(t, BasalArea(0))
}

func TestStemVolume(t *testing.T) {
	// 30 cm DBH, 20 m tall at the default form factor ≈ 0.98960 m³
	got := StemVolume(30, 20, DefaultFormFactor)
	assert.InDelta(t, 0.98960, got, 1e-4)

	// Cylinder with form factor 1 is exactly AB·h.
	assert.InDelta(t, BasalArea(30)*20, StemVolume(30, 20, 1.0), 1e-12)
	assert.Zero(t, StemVolume(30, 0, DefaultFormFactor))
}

func TestCarbonChain(t *testing.T) {
	// 1 m³ of pine at 550 kg/m³.
	biomass := Biomass(1.0, 550)
	assert.InDelta(t, 550, biomass, 1e-9)

	carbon := Carbon(biomass)
	assert.InDelta(t, 275, carbon, 1e-9)

	co2 := CO2Equivalent(carbon)
	assert.InDelta(t, 275*44.0/12.0, co2, 1e-9)
	assert.Greater(t, co2, carbon)
}
