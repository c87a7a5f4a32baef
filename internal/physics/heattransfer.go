package physics

import (
	"math"

	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
)

type SurfaceOrientation int

const (
	Vertical SurfaceOrientation = iota
	HorizontalUp
	HorizontalDown
)

type ForcedGeometry int

const (
	FlatPlate ForcedGeometry = iota
	Cylinder
)

// ConductionHeatTransfer computes the steady-state conduction Q = U.A.ΔT in
// W, positive for heat loss from the inside.
func ConductionHeatTransfer(uValue, area, tInside, tOutside float64) float64 {
	return uValue * area * (tInside - tOutside)
}

// ConductionResistance is the thermal resistance R = L/k of a layer in
// (m².K)/W.
func ConductionResistance(thickness, conductivity float64) (float64, error) {
	if conductivity <= 0 {
		return 0, cloudgrow.DomainError{Quantity: "conductivity", Value: conductivity, Min: 0, Max: math.Inf(1)}
	}
	return thickness / conductivity, nil
}

// OverallUValue combines layer resistances with inside and outside surface
// film coefficients.
func OverallUValue(resistances []float64, hInside, hOutside float64) float64 {
	rTotal := 1.0/hInside + 1.0/hOutside
	for _, r := range resistances {
		rTotal += r
	}
	return 1.0 / rTotal
}

// GrashofNumber for natural convection, with the expansion coefficient of
// an ideal gas evaluated at the film temperature.
func GrashofNumber(tSurface, tFluid, length float64) float64 {
	tFilmK := CelsiusToKelvin((tSurface + tFluid) / 2.0)
	beta := 1.0 / tFilmK
	deltaT := math.Abs(tSurface - tFluid)
	return Gravity * beta * deltaT * length * length * length /
		(KinematicViscosity * KinematicViscosity)
}

func RayleighNumber(tSurface, tFluid, length float64) float64 {
	return GrashofNumber(tSurface, tFluid, length) * PrandtlAir
}

func ReynoldsNumber(velocity, length float64) float64 {
	return velocity * length / KinematicViscosity
}

// NaturalConvectionCoefficient computes the natural convection h in
// W/(m².K) using the Churchill-Chu correlation for vertical plates and
// the ASHRAE horizontal plate correlations. A floor of 0.5 keeps the
// result physical in still air.
func NaturalConvectionCoefficient(tSurface, tFluid, length float64, orientation SurfaceOrientation) float64 {
	ra := RayleighNumber(tSurface, tFluid, length)
	if ra < 1 {
		return 0.5
	}

	var nu float64
	switch orientation {
	case Vertical:
		if ra < 1e9 {
			nu = 0.68 + 0.67*math.Pow(ra, 0.25)/
				math.Pow(1+math.Pow(0.492/PrandtlAir, 9.0/16.0), 4.0/9.0)
		} else {
			nu = math.Pow(0.825+0.387*math.Pow(ra, 1.0/6.0)/
				math.Pow(1+math.Pow(0.492/PrandtlAir, 9.0/16.0), 8.0/27.0), 2)
		}
	case HorizontalUp:
		if ra < 1e7 {
			nu = 0.54 * math.Pow(ra, 0.25)
		} else {
			nu = 0.15 * math.Pow(ra, 1.0/3.0)
		}
	case HorizontalDown:
		nu = 0.27 * math.Pow(ra, 0.25)
	}

	return math.Max(0.5, nu*ConductivityAir/length)
}

// ForcedConvectionCoefficient computes the forced convection h in W/(m².K)
// for flat plates or cylinders in crossflow (Churchill-Bernstein).
func ForcedConvectionCoefficient(velocity, length float64, geometry ForcedGeometry) float64 {
	if velocity <= 0 {
		return 0.5
	}
	re := ReynoldsNumber(velocity, length)

	var nu float64
	switch geometry {
	case FlatPlate:
		if re < 5e5 {
			nu = 0.664 * math.Sqrt(re) * math.Pow(PrandtlAir, 1.0/3.0)
		} else {
			nu = (0.037*math.Pow(re, 0.8) - 871) * math.Pow(PrandtlAir, 1.0/3.0)
		}
	case Cylinder:
		nu = 0.3 + 0.62*math.Sqrt(re)*math.Pow(PrandtlAir, 1.0/3.0)/
			math.Pow(1+math.Pow(0.4/PrandtlAir, 2.0/3.0), 0.25)*
			math.Pow(1+math.Pow(re/282000, 5.0/8.0), 0.8)
	}

	return math.Max(0.5, nu*ConductivityAir/length)
}

// MixedConvectionCoefficient blends natural and forced convection with the
// Churchill-Usagi correlation, exponent 3.
func MixedConvectionCoefficient(hNatural, hForced float64) float64 {
	const n = 3.0
	return math.Pow(math.Pow(hNatural, n)+math.Pow(hForced, n), 1.0/n)
}

// RadiationHeatTransfer applies the Stefan-Boltzmann law between a surface
// and its surroundings, in W, positive for heat loss from the surface.
func RadiationHeatTransfer(emissivity, area, tSurface, tSurroundings float64) float64 {
	tsK := CelsiusToKelvin(tSurface)
	tsuK := CelsiusToKelvin(tSurroundings)
	return emissivity * StefanBoltzmann * area *
		(tsK*tsK*tsK*tsK - tsuK*tsuK*tsuK*tsuK)
}

// RadiationCoefficient linearizes the radiation exchange so it can be
// combined with convection coefficients.
func RadiationCoefficient(emissivity, tSurface, tSurroundings float64) float64 {
	tsK := CelsiusToKelvin(tSurface)
	tsuK := CelsiusToKelvin(tSurroundings)
	return emissivity * StefanBoltzmann * (tsK*tsK + tsuK*tsuK) * (tsK + tsuK)
}

// SkyTemperature estimates the effective sky temperature in °C with the
// Berdahl-Fromberg clear sky emissivity. The correlation takes the dew
// point in °C, not Kelvin.
func SkyTemperature(tAmbient, rh, cloudCover float64) (float64, error) {
	tDp, err := DewPoint(tAmbient, rh)
	if err != nil {
		return 0, err
	}
	epsilonClear := 0.741 + 0.0062*tDp
	epsilonClear = math.Max(0.0, math.Min(1.0, epsilonClear))
	epsilonSky := epsilonClear + cloudCover*(1.0-epsilonClear)
	tSkyK := CelsiusToKelvin(tAmbient) * math.Pow(epsilonSky, 0.25)
	return KelvinToCelsius(tSkyK), nil
}

// ViewFactorToSky is the fraction of a tilted surface's hemisphere covered
// by sky, (1+cos(tilt))/2.
func ViewFactorToSky(tilt float64) float64 {
	return (1.0 + math.Cos(radians(tilt))) / 2.0
}

// GroundTemperatureAtDepth uses the ASHRAE sinusoidal ground model with
// exponential damping and phase lag at depth.
func GroundTemperatureAtDepth(tMeanAnnual, tAmplitude float64, day int, depth float64) float64 {
	const dayOfMinimum = 35
	const thermalDiffusivity = 0.5e-6 // m²/s, typical soil

	alphaDay := thermalDiffusivity * 86400
	d0 := math.Sqrt(365 * alphaDay / math.Pi)
	damping := math.Exp(-depth / d0)
	phase := depth / d0

	return tMeanAnnual - tAmplitude*damping*
		math.Cos(2*math.Pi*float64(day-dayOfMinimum)/365-phase)
}

// GroundSurfaceTemperature is the undamped surface form of the sinusoidal
// ground model.
func GroundSurfaceTemperature(tMeanAnnual, tAmplitude float64, day int) float64 {
	const dayOfMinimum = 35
	return tMeanAnnual - tAmplitude*math.Cos(2*math.Pi*float64(day-dayOfMinimum)/365)
}

// SurfaceHeatBalance nets solar gain against convective, radiative and
// conductive losses, in W.
func SurfaceHeatBalance(qSolar, qConvection, qRadiation, qConduction float64) float64 {
	return qSolar - qConvection - qRadiation - qConduction
}
