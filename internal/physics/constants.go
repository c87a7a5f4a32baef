// Package physics implements the stateless physical computations of the
// simulator: psychrometrics, solar geometry and irradiance, heat transfer
// correlations and ventilation flows. All functions use SI units and follow
// the ASHRAE Handbook-Fundamentals (2021) formulations.
package physics

// Universal constants.
const (
	StefanBoltzmann = 5.670374419e-8 // W/(m².K⁴)
	Gravity         = 9.80665        // m/s²
)

// Solar constants.
const (
	SolarConstant  = 1367.0 // extraterrestrial irradiance, W/m²
	EarthAxialTilt = 23.45  // degrees
)

// Air properties at 20°C.
const (
	CpDryAir           = 1006.0  // J/(kg.K)
	CpWaterVapor       = 1860.0  // J/(kg.K)
	GasConstantDryAir  = 287.055 // J/(kg.K)
	GasConstantVapor   = 461.5   // J/(kg.K)
	ConductivityAir    = 0.0257  // W/(m.K)
	KinematicViscosity = 1.5e-5  // m²/s
	PrandtlAir         = 0.71
	StandardAirDensity = 1.225 // kg/m³ at 15°C, 101325 Pa
)

// Ratio of molecular weights of water and dry air, 18.015/28.966.
const Epsilon = 0.62198

// Water properties.
const (
	LatentHeatVaporization0C = 2501000.0 // J/kg
	CpWater                  = 4186.0    // J/(kg.K)
)

// Moist soil properties.
const (
	SoilDensity      = 1500.0 // kg/m³
	SoilSpecificHeat = 1200.0 // J/(kg.K)
)

// Standard conditions.
const (
	StandardPressure    = 101325.0 // Pa
	StandardTemperature = 15.0     // °C
	AbsoluteZeroOffset  = 273.15
	AmbientCO2          = 420.0 // ppm
	PARFraction         = 0.45
	PARConversionFactor = 4.57 // µmol/J
)

// Hyland-Wexler saturation pressure coefficients, temperature in K and
// result in Pa. Water coefficients valid 0°C to 200°C, ice coefficients
// valid -100°C to 0°C.
const (
	satWaterC1 = -5.8002206e3
	satWaterC2 = 1.3914993
	satWaterC3 = -4.8640239e-2
	satWaterC4 = 4.1764768e-5
	satWaterC5 = -1.4452093e-8
	satWaterC6 = 6.5459673

	satIceC1 = -5.6745359e3
	satIceC2 = 6.3925247
	satIceC3 = -9.6778430e-3
	satIceC4 = 6.2215701e-7
	satIceC5 = 2.0747825e-9
	satIceC6 = -9.4840240e-13
	satIceC7 = 4.1635019
)

// Ground reflectances.
const (
	AlbedoGrass    = 0.25
	AlbedoSoilDry  = 0.20
	AlbedoSoilWet  = 0.10
	AlbedoConcrete = 0.30
	AlbedoSnow     = 0.80
)

func CelsiusToKelvin(t float64) float64 {
	return t + AbsoluteZeroOffset
}

func KelvinToCelsius(t float64) float64 {
	return t - AbsoluteZeroOffset
}
