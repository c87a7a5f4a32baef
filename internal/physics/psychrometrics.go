package physics

import (
	"math"

	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
)

// Psychrometric constants in kJ based units, as used by the ASHRAE
// psychrometric equation (Handbook-Fundamentals 2021, Chapter 1).
const (
	latentHeat0C        = 2501.0 // kJ/kg
	latentHeatCoefWater = 2.326  // kJ/(kg.°C)
	cpDryAirKJ          = 1.006
	cpWaterVaporKJ      = 1.86
	cpLiquidWaterKJ     = 4.186
	latentHeatSubl0C    = 2830.0 // kJ/kg
	latentHeatCoefIce   = 0.24
	cpIceKJ             = 2.1

	wetBulbMinTemp = -100.0
	// Absolute floor for humidity ratio comparisons, keeps the wet-bulb
	// bisection stable in very dry air.
	humidityRatioMinTol = 1e-8

	// (M_air / M_water) - 1 = (28.966 / 18.015) - 1
	molecularWeightRatioFactor = 1.6078
)

// SaturationPressure computes the saturation vapor pressure in Pa using the
// Hyland-Wexler correlation. Below 0°C the correlation over ice is used.
func SaturationPressure(t float64) (float64, error) {
	tK := CelsiusToKelvin(t)
	if t < 0 {
		if t < -100 {
			return 0, cloudgrow.DomainError{Quantity: "saturation temperature", Value: t, Min: -100, Max: 200}
		}
		lnPws := satIceC1/tK +
			satIceC2 +
			satIceC3*tK +
			satIceC4*tK*tK +
			satIceC5*tK*tK*tK +
			satIceC6*tK*tK*tK*tK +
			satIceC7*math.Log(tK)
		return math.Exp(lnPws), nil
	}
	if t > 200 {
		return 0, cloudgrow.DomainError{Quantity: "saturation temperature", Value: t, Min: -100, Max: 200}
	}
	lnPws := satWaterC1/tK +
		satWaterC2 +
		satWaterC3*tK +
		satWaterC4*tK*tK +
		satWaterC5*tK*tK*tK +
		satWaterC6*math.Log(tK)
	return math.Exp(lnPws), nil
}

// HumidityRatio computes the mass of water vapor per unit mass of dry air,
// in kg/kg, from dry-bulb temperature in °C, relative humidity in % and
// total pressure in Pa.
func HumidityRatio(t, rh, p float64) (float64, error) {
	if rh < 0 || rh > 100 {
		return 0, cloudgrow.DomainError{Quantity: "relative humidity", Value: rh, Min: 0, Max: 100}
	}
	pws, err := SaturationPressure(t)
	if err != nil {
		return 0, err
	}
	pw := (rh / 100.0) * pws
	if p-pw <= 0 {
		return 0, cloudgrow.DomainError{Quantity: "pressure", Value: p, Min: pw, Max: math.Inf(1)}
	}
	return Epsilon * pw / (p - pw), nil
}

// HumidityRatioFromWetBulb applies the ASHRAE psychrometric equation
// (Equation 35) relating dry-bulb and wet-bulb temperatures.
func HumidityRatioFromWetBulb(tDb, tWb, p float64) (float64, error) {
	if tWb > tDb {
		return 0, cloudgrow.DomainError{Quantity: "wet-bulb temperature", Value: tWb, Min: math.Inf(-1), Max: tDb}
	}
	wsWb, err := HumidityRatio(tWb, 100.0, p)
	if err != nil {
		return 0, err
	}
	var w float64
	if tWb >= 0 {
		num := (latentHeat0C-latentHeatCoefWater*tWb)*wsWb - cpDryAirKJ*(tDb-tWb)
		den := latentHeat0C + cpWaterVaporKJ*tDb - cpLiquidWaterKJ*tWb
		w = num / den
	} else {
		num := (latentHeatSubl0C-latentHeatCoefIce*tWb)*wsWb - cpDryAirKJ*(tDb-tWb)
		den := latentHeatSubl0C + cpWaterVaporKJ*tDb - cpIceKJ*tWb
		w = num / den
	}
	return math.Max(0.0, w), nil
}

// RelativeHumidity inverts HumidityRatio, returning a percentage clamped to
// [0,100].
func RelativeHumidity(t, w, p float64) (float64, error) {
	pws, err := SaturationPressure(t)
	if err != nil {
		return 0, err
	}
	pw := p * w / (Epsilon + w)
	rh := 100.0 * pw / pws
	return math.Min(100.0, math.Max(0.0, rh)), nil
}

// WetBulbTemperature solves the psychrometric equation for the wet-bulb
// temperature by bisection between the dew point and the dry-bulb.
func WetBulbTemperature(t, rh, p float64) (float64, error) {
	wTarget, err := HumidityRatio(t, rh, p)
	if err != nil {
		return 0, err
	}
	tDew, err := DewPoint(t, rh)
	if err != nil {
		return 0, err
	}
	tLow := math.Max(wetBulbMinTemp, tDew-1)
	tHigh := t

	const maxIter = 100
	const tol = 0.001
	effectiveTol := math.Max(tol*wTarget, humidityRatioMinTol)
	residual := math.Inf(1)
	for i := 0; i < maxIter; i++ {
		tMid := (tLow + tHigh) / 2
		wCalc, err := HumidityRatioFromWetBulb(t, tMid, p)
		if err != nil {
			return 0, err
		}
		residual = math.Abs(wCalc - wTarget)
		if residual < effectiveTol {
			return tMid, nil
		}
		if wCalc < wTarget {
			tLow = tMid
		} else {
			tHigh = tMid
		}
	}
	return 0, cloudgrow.ConvergenceError{
		Computation: "wet-bulb temperature",
		Iterations:  maxIter,
		Residual:    residual,
	}
}

// DewPoint uses the Magnus-Tetens approximation. At 0% relative humidity
// there is no moisture and absolute zero is returned.
func DewPoint(t, rh float64) (float64, error) {
	if rh == 0 {
		return -AbsoluteZeroOffset, nil
	}
	if rh < 0 || rh > 100 {
		return 0, cloudgrow.DomainError{Quantity: "relative humidity", Value: rh, Min: 0, Max: 100}
	}
	const a = 17.27
	const b = 237.7
	alpha := (a*t)/(b+t) + math.Log(rh/100.0)
	return (b * alpha) / (a - alpha), nil
}

// DewPointFromHumidityRatio finds the temperature at which the given
// humidity ratio saturates, by bisection on the saturation pressure.
func DewPointFromHumidityRatio(w, p float64) (float64, error) {
	pw := p * w / (Epsilon + w)
	tLow := -100.0
	tHigh := 100.0
	tMid := 0.0
	for i := 0; i < 100; i++ {
		tMid = (tLow + tHigh) / 2
		pws, err := SaturationPressure(tMid)
		if err != nil {
			return 0, err
		}
		if math.Abs(pws-pw) < 0.1 {
			return tMid, nil
		}
		if pws < pw {
			tLow = tMid
		} else {
			tHigh = tMid
		}
	}
	return tMid, nil
}

// Enthalpy of moist air in kJ/kg of dry air, referenced to dry air and
// liquid water at 0°C.
func Enthalpy(t, w float64) float64 {
	return cpDryAirKJ*t + w*(latentHeat0C+cpWaterVaporKJ*t)
}

// AirDensity of moist air in kg/m³. The molecular weight correction makes
// moist air lighter than dry air at equal temperature and pressure.
func AirDensity(t, w, p float64) float64 {
	tK := CelsiusToKelvin(t)
	return p / (GasConstantDryAir * tK * (1 + molecularWeightRatioFactor*w))
}

// SpecificVolume of moist air in m³/kg of dry air.
func SpecificVolume(t, w, p float64) float64 {
	tK := CelsiusToKelvin(t)
	return GasConstantDryAir * tK * (1 + molecularWeightRatioFactor*w) / p
}

// VaporPressure is the partial pressure of water vapor in Pa.
func VaporPressure(t, rh float64) (float64, error) {
	pws, err := SaturationPressure(t)
	if err != nil {
		return 0, err
	}
	return (rh / 100.0) * pws, nil
}

// DegreeOfSaturation is the ratio of the humidity ratio to the saturation
// humidity ratio at the same temperature.
func DegreeOfSaturation(t, rh, p float64) (float64, error) {
	w, err := HumidityRatio(t, rh, p)
	if err != nil {
		return 0, err
	}
	ws, err := HumidityRatio(t, 100.0, p)
	if err != nil {
		return 0, err
	}
	if ws == 0 {
		return 0, nil
	}
	return w / ws, nil
}

// LatentHeatOfVaporization in J/kg, linear approximation valid for 0-100°C.
func LatentHeatOfVaporization(t float64) float64 {
	return LatentHeatVaporization0C - 2370.0*t
}

// PressureAtElevation computes barometric pressure in Pa at the given
// elevation in meters, ASHRAE Handbook-Fundamentals Equation 3.
func PressureAtElevation(elevation float64) float64 {
	return StandardPressure * math.Pow(1-2.25577e-5*elevation, 5.2559)
}

// MixAirStreams mixes two moist air streams adiabatically by mass-weighted
// conservation of enthalpy and humidity ratio, returning the mixed dry-bulb
// temperature in °C and humidity ratio in kg/kg.
func MixAirStreams(m1, t1, w1, m2, t2, w2 float64) (float64, float64, error) {
	if m1 < 0 || m2 < 0 {
		return 0, 0, cloudgrow.DomainError{Quantity: "mass flow", Value: math.Min(m1, m2), Min: 0, Max: math.Inf(1)}
	}
	total := m1 + m2
	if total == 0 {
		return 0, 0, cloudgrow.DomainError{Quantity: "total mass flow", Value: 0, Min: 0, Max: math.Inf(1)}
	}
	w := (m1*w1 + m2*w2) / total
	h := (m1*Enthalpy(t1, w1) + m2*Enthalpy(t2, w2)) / total
	// Invert h = 1.006 t + w (2501 + 1.86 t) for t.
	t := (h - w*latentHeat0C) / (cpDryAirKJ + w*cpWaterVaporKJ)
	return t, w, nil
}
