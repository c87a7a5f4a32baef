package physics

import (
	"math"

	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
)

// ConstructionQuality selects the empirical infiltration coefficients of a
// greenhouse envelope.
type ConstructionQuality string

const (
	Tight   ConstructionQuality = "tight"
	Average ConstructionQuality = "average"
	Loose   ConstructionQuality = "loose"
)

// InfiltrationRate converts air changes per hour to a volumetric flow in
// m³/s.
func InfiltrationRate(volume, ach float64) float64 {
	return volume * ach / 3600.0
}

// InfiltrationACH estimates greenhouse infiltration in air changes per
// hour from wind speed and the inside-outside temperature difference,
// ACH = c_base + c_wind.V + c_stack.√|ΔT|.
func InfiltrationACH(windSpeed, deltaT float64, quality ConstructionQuality) (float64, error) {
	var cBase, cWind, cStack float64
	switch quality {
	case Tight:
		cBase, cWind, cStack = 0.1, 0.01, 0.005
	case Average:
		cBase, cWind, cStack = 0.3, 0.02, 0.01
	case Loose:
		cBase, cWind, cStack = 0.6, 0.04, 0.02
	default:
		return 0, cloudgrow.ConfigurationError{
			Field:  "construction-quality",
			Reason: "unknown value '" + string(quality) + "'",
		}
	}
	return cBase + cWind*windSpeed + cStack*math.Sqrt(math.Abs(deltaT)), nil
}

// StackEffectPressure is the buoyancy pressure difference across a
// neutral-level height, ΔP = ρ_o.g.h.(T_i-T_o)/T_i in Pa.
func StackEffectPressure(height, tInside, tOutside float64) float64 {
	tiK := CelsiusToKelvin(tInside)
	toK := CelsiusToKelvin(tOutside)
	rhoO := AirDensity(tOutside, 0.0, StandardPressure)
	return rhoO * Gravity * height * (tiK - toK) / tiK
}

// StackEffectFlow is the buoyancy-driven flow through an opening in m³/s.
// Temperature differences under 0.1 K produce no flow.
func StackEffectFlow(openingArea, height, tInside, tOutside, dischargeCoefficient float64) float64 {
	deltaT := math.Abs(tInside - tOutside)
	if deltaT < 0.1 {
		return 0.0
	}
	tiK := CelsiusToKelvin(tInside)
	return dischargeCoefficient * openingArea *
		math.Sqrt(2*Gravity*height*deltaT/tiK)
}

// WindDrivenFlow through an opening, Q = C_d.A.V.√C_p in m³/s.
func WindDrivenFlow(openingArea, windSpeed, pressureCoefficient, dischargeCoefficient float64) float64 {
	if windSpeed <= 0 {
		return 0.0
	}
	return dischargeCoefficient * openingArea * windSpeed *
		math.Sqrt(math.Abs(pressureCoefficient))
}

// CombinedNaturalVentilation superposes stack and wind flows in quadrature.
func CombinedNaturalVentilation(openingArea, height, tInside, tOutside, windSpeed float64) float64 {
	const dischargeCoefficient = 0.65
	const pressureCoefficient = 0.6
	qStack := StackEffectFlow(openingArea, height, tInside, tOutside, dischargeCoefficient)
	qWind := WindDrivenFlow(openingArea, windSpeed, pressureCoefficient, dischargeCoefficient)
	return math.Sqrt(qStack*qStack + qWind*qWind)
}

// VentOpeningArea is the effective area of a partially open vent in m².
func VentOpeningArea(width, height, openingFraction float64) float64 {
	return width * height * openingFraction
}

// FanFlowRate totals the flow of identical fans at a speed fraction.
func FanFlowRate(fanCapacity float64, numFans int, speedFraction float64) float64 {
	return fanCapacity * float64(numFans) * speedFraction
}

// FanPower is the shaft power P = Q.ΔP/η of a fan in W.
func FanPower(flowRate, pressureRise, efficiency float64) (float64, error) {
	if efficiency <= 0 {
		return 0, cloudgrow.DomainError{Quantity: "fan efficiency", Value: efficiency, Min: 0, Max: 1}
	}
	return flowRate * pressureRise / efficiency, nil
}

// SensibleHeatVentilation computes the sensible heat carried by an air
// exchange, positive when the supply stream heats the space.
func SensibleHeatVentilation(flowRate, tSupply, tExhaust, rhAvg float64) (float64, error) {
	tAvg := (tSupply + tExhaust) / 2.0
	w, err := HumidityRatio(tAvg, rhAvg, StandardPressure)
	if err != nil {
		return 0, err
	}
	rho := AirDensity(tAvg, w, StandardPressure)
	return rho * flowRate * CpDryAir * (tSupply - tExhaust), nil
}

// LatentHeatVentilation computes the latent heat carried by the humidity
// ratio difference between supply and exhaust streams.
func LatentHeatVentilation(flowRate, tSupply, tExhaust, rhSupply, rhExhaust float64) (float64, error) {
	wSupply, err := HumidityRatio(tSupply, rhSupply, StandardPressure)
	if err != nil {
		return 0, err
	}
	wExhaust, err := HumidityRatio(tExhaust, rhExhaust, StandardPressure)
	if err != nil {
		return 0, err
	}
	tAvg := (tSupply + tExhaust) / 2.0
	rho := AirDensity(tAvg, (wSupply+wExhaust)/2.0, StandardPressure)
	hfg := LatentHeatOfVaporization(tAvg)
	return rho * flowRate * hfg * (wSupply - wExhaust), nil
}

// TotalHeatVentilation is the sum of sensible and latent exchange.
func TotalHeatVentilation(flowRate, tSupply, tExhaust, rhSupply, rhExhaust float64) (float64, error) {
	qs, err := SensibleHeatVentilation(flowRate, tSupply, tExhaust, 50.0)
	if err != nil {
		return 0, err
	}
	ql, err := LatentHeatVentilation(flowRate, tSupply, tExhaust, rhSupply, rhExhaust)
	if err != nil {
		return 0, err
	}
	return qs + ql, nil
}

// MoistureRemovalRate from an air exchange in kg/s, positive for
// dehumidification.
func MoistureRemovalRate(flowRate, wSupply, wExhaust, tAvg float64) float64 {
	rho := AirDensity(tAvg, (wSupply+wExhaust)/2.0, StandardPressure)
	return rho * flowRate * (wExhaust - wSupply)
}

// RequiredVentilationCooling is the flow needed to remove a sensible heat
// gain with outside air, Q = q/(ρ.c_p.ΔT).
func RequiredVentilationCooling(heatGain, tInside, tOutside, rhAvg float64) (float64, error) {
	deltaT := tInside - tOutside
	if deltaT <= 0 {
		return 0, cloudgrow.DomainError{Quantity: "cooling delta-t", Value: deltaT, Min: 0, Max: math.Inf(1)}
	}
	tAvg := (tInside + tOutside) / 2.0
	w, err := HumidityRatio(tAvg, rhAvg, StandardPressure)
	if err != nil {
		return 0, err
	}
	rho := AirDensity(tAvg, w, StandardPressure)
	return heatGain / (rho * CpDryAir * deltaT), nil
}

// RequiredACHHumidityControl is the air change rate needed to remove an
// interior moisture generation with drier outside air.
func RequiredACHHumidityControl(moistureGeneration, volume, wInside, wOutside, tAvg float64) (float64, error) {
	deltaW := wInside - wOutside
	if deltaW <= 0 {
		return 0, cloudgrow.DomainError{Quantity: "dehumidification delta-w", Value: deltaW, Min: 0, Max: math.Inf(1)}
	}
	rho := AirDensity(tAvg, (wInside+wOutside)/2.0, StandardPressure)
	q := moistureGeneration / (rho * deltaW)
	return q * 3600.0 / volume, nil
}
