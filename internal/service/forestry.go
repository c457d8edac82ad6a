package service

import "math"

// Dendrometric calculations used across exports and reports. DBH in cm,
// heights in m, densities in kg/m³.

// DefaultFormFactor is the stem form factor of the simplified Smalian volume formula.
const DefaultFormFactor = 0.7

// carbonFraction is the carbon share of dry biomass.
const carbonFraction = 0.5

// BasalArea returns the cross-sectional area at breast height in m²:
// π·(DBH/2)²/10000.
func BasalArea(dbh float64) float64 {
	return math.Pi * math.Pow(dbh/2, 2) / 10000
}

// StemVolume returns the stem volume in m³: basal area · height · form factor.
func StemVolume(dbh, height, formFactor float64) float64 {
	return BasalArea(dbh) * height * formFactor
}

// Biomass returns dry biomass in kg from volume and wood density.
func Biomass(volume, woodDensity float64) float64 {
	return volume * woodDensity
}

// Carbon returns the carbon content in kg of a given biomass.
func Carbon(biomass float64) float64 {
	return biomass * carbonFraction
}

// CO2Equivalent converts stored carbon to CO₂ equivalent via the 44/12
// molecular mass ratio.
func CO2Equivalent(carbon float64) float64 {
	return carbon * (44.0 / 12.0)
}
