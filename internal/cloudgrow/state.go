package cloudgrow

import (
	"math"
	"time"
)

// AirState is the thermodynamic state of an air mass. All units are SI:
// dry-bulb temperature in °C, relative humidity in %, pressure in Pa and
// CO2 concentration in ppm.
type AirState struct {
	Temperature float64 `yaml:"temperature"`
	Humidity    float64 `yaml:"humidity"`
	Pressure    float64 `yaml:"pressure"`
	CO2         float64 `yaml:"co2"`
}

func (s *AirState) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type AirStateYAML struct {
		Temperature *float64 `yaml:"temperature"`
		Humidity    *float64 `yaml:"humidity"`
		Pressure    *float64 `yaml:"pressure"`
		CO2         *float64 `yaml:"co2"`
	}
	res := AirStateYAML{}
	if err := unmarshal(&res); err != nil {
		return err
	}
	*s = DefaultAirState()
	if res.Temperature != nil {
		s.Temperature = *res.Temperature
	}
	if res.Humidity != nil {
		s.Humidity = *res.Humidity
	}
	if res.Pressure != nil {
		s.Pressure = *res.Pressure
	}
	if res.CO2 != nil {
		s.CO2 = *res.CO2
	}
	return s.Validate()
}

func DefaultAirState() AirState {
	return AirState{
		Temperature: 20.0,
		Humidity:    50.0,
		Pressure:    101325.0,
		CO2:         400.0,
	}
}

func (s AirState) Validate() error {
	if s.Temperature < -50 || s.Temperature > 60 {
		return DomainError{Quantity: "temperature", Value: s.Temperature, Min: -50, Max: 60}
	}
	if s.Humidity < 0 || s.Humidity > 100 {
		return DomainError{Quantity: "humidity", Value: s.Humidity, Min: 0, Max: 100}
	}
	if s.Pressure < 80000 || s.Pressure > 120000 {
		return DomainError{Quantity: "pressure", Value: s.Pressure, Min: 80000, Max: 120000}
	}
	if s.CO2 < 0 || s.CO2 > 5000 {
		return DomainError{Quantity: "co2", Value: s.CO2, Min: 0, Max: 5000}
	}
	return nil
}

// Clamp returns a copy with every field forced into its valid range.
func (s AirState) Clamp() AirState {
	clamp := func(v, min, max float64) float64 {
		return math.Min(math.Max(v, min), max)
	}
	return AirState{
		Temperature: clamp(s.Temperature, -50, 60),
		Humidity:    clamp(s.Humidity, 0, 100),
		Pressure:    clamp(s.Pressure, 80000, 120000),
		CO2:         clamp(s.CO2, 0, 5000),
	}
}

// Location is a geographic position used for solar computations. Latitude
// is positive north, longitude positive east, both in degrees.
type Location struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Elevation float64 `yaml:"elevation"`
	TimeZone  string  `yaml:"timezone"`
}

func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return DomainError{Quantity: "latitude", Value: l.Latitude, Min: -90, Max: 90}
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return DomainError{Quantity: "longitude", Value: l.Longitude, Min: -180, Max: 180}
	}
	if l.Elevation < -500 || l.Elevation > 9000 {
		return DomainError{Quantity: "elevation", Value: l.Elevation, Min: -500, Max: 9000}
	}
	return nil
}

type GeometryType string

const (
	Gable      GeometryType = "gable"
	Quonset    GeometryType = "quonset"
	Gothic     GeometryType = "gothic"
	Venlo      GeometryType = "venlo"
	HighTunnel GeometryType = "high_tunnel"
	Custom     GeometryType = "custom"
)

// GreenhouseGeometry holds the physical dimensions of the structure, in
// meters. Derived areas are always recomputed from the dimensions rather
// than stored.
type GreenhouseGeometry struct {
	Type        GeometryType `yaml:"type"`
	Length      float64      `yaml:"length"`
	Width       float64      `yaml:"width"`
	RidgeHeight float64      `yaml:"ridge-height"`
	EaveHeight  float64      `yaml:"eave-height"`
	Orientation float64      `yaml:"orientation"`
}

func DefaultGeometry() GreenhouseGeometry {
	return GreenhouseGeometry{
		Type:        Gable,
		Length:      30.0,
		Width:       10.0,
		RidgeHeight: 5.0,
		EaveHeight:  3.0,
	}
}

func (g *GreenhouseGeometry) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type GeometryYAML GreenhouseGeometry
	res := GeometryYAML(DefaultGeometry())
	if err := unmarshal(&res); err != nil {
		return err
	}
	*g = GreenhouseGeometry(res)
	return g.Validate()
}

func (g GreenhouseGeometry) Validate() error {
	if g.Length <= 0 {
		return ConfigurationError{Field: "geometry.length", Reason: "must be positive"}
	}
	if g.Width <= 0 {
		return ConfigurationError{Field: "geometry.width", Reason: "must be positive"}
	}
	if g.RidgeHeight <= 0 {
		return ConfigurationError{Field: "geometry.ridge-height", Reason: "must be positive"}
	}
	if g.EaveHeight <= 0 {
		return ConfigurationError{Field: "geometry.eave-height", Reason: "must be positive"}
	}
	if g.EaveHeight > g.RidgeHeight {
		return ConfigurationError{Field: "geometry.eave-height", Reason: "cannot exceed ridge height"}
	}
	return nil
}

func (g GreenhouseGeometry) FloorArea() float64 {
	return g.Length * g.Width
}

// Volume approximates the interior volume with a trapezoidal section.
func (g GreenhouseGeometry) Volume() float64 {
	avgHeight := (g.EaveHeight + g.RidgeHeight) / 2
	return g.Length * g.Width * avgHeight
}

// WallArea is the exterior wall area, sidewalls plus trapezoidal end
// walls, excluding floor and roof.
func (g GreenhouseGeometry) WallArea() float64 {
	sidewalls := 2 * g.Length * g.EaveHeight
	endRect := g.Width * g.EaveHeight
	endTriangle := 0.5 * g.Width * (g.RidgeHeight - g.EaveHeight)
	return sidewalls + 2*(endRect+endTriangle)
}

// RoofArea accounts for the roof slope on both sides of the ridge.
func (g GreenhouseGeometry) RoofArea() float64 {
	halfWidth := g.Width / 2
	rise := g.RidgeHeight - g.EaveHeight
	slope := math.Sqrt(halfWidth*halfWidth + rise*rise)
	return 2 * g.Length * slope
}

func (g GreenhouseGeometry) SurfaceArea() float64 {
	return g.WallArea() + g.RoofArea()
}

// CoveringProperties are the optical and thermal properties of the
// covering material. Transmittances and reflectance are fractions in
// [0,1], UValue in W/(m².K).
type CoveringProperties struct {
	Name                 string  `yaml:"name"`
	SolarTransmittance   float64 `yaml:"solar-transmittance"`
	PARTransmittance     float64 `yaml:"par-transmittance"`
	ThermalTransmittance float64 `yaml:"thermal-transmittance"`
	UValue               float64 `yaml:"u-value"`
	SolarReflectance     float64 `yaml:"solar-reflectance"`
}

func (c CoveringProperties) Validate() error {
	fractions := map[string]float64{
		"covering.solar-transmittance":   c.SolarTransmittance,
		"covering.par-transmittance":     c.PARTransmittance,
		"covering.thermal-transmittance": c.ThermalTransmittance,
		"covering.solar-reflectance":     c.SolarReflectance,
	}
	for _, field := range []string{
		"covering.solar-transmittance",
		"covering.par-transmittance",
		"covering.thermal-transmittance",
		"covering.solar-reflectance",
	} {
		if v := fractions[field]; v < 0 || v > 1 {
			return ConfigurationError{Field: field, Reason: "must be in [0,1]"}
		}
	}
	if c.UValue <= 0 {
		return ConfigurationError{Field: "covering.u-value", Reason: "must be positive"}
	}
	return nil
}

func (c CoveringProperties) SolarAbsorptance() float64 {
	return 1.0 - c.SolarTransmittance - c.SolarReflectance
}

var coveringMaterials = map[string]CoveringProperties{
	"single_glass":         {"single_glass", 0.85, 0.83, 0.02, 5.8, 0.08},
	"double_glass":         {"double_glass", 0.75, 0.73, 0.02, 3.0, 0.12},
	"single_polyethylene":  {"single_polyethylene", 0.87, 0.85, 0.70, 6.0, 0.08},
	"double_polyethylene":  {"double_polyethylene", 0.77, 0.75, 0.05, 4.0, 0.13},
	"polycarbonate_twin":   {"polycarbonate_twin", 0.80, 0.78, 0.03, 3.5, 0.10},
	"polycarbonate_triple": {"polycarbonate_triple", 0.72, 0.70, 0.02, 2.5, 0.12},
}

// CoveringByName looks up a covering material from the built-in catalog.
func CoveringByName(name string) (CoveringProperties, error) {
	res, ok := coveringMaterials[name]
	if ok == false {
		return CoveringProperties{}, ConfigurationError{
			Field:  "covering",
			Reason: "unknown material '" + name + "'",
		}
	}
	return res, nil
}

// CoveringNames lists the catalog in a stable order.
func CoveringNames() []string {
	return []string{
		"single_glass",
		"double_glass",
		"single_polyethylene",
		"double_polyethylene",
		"polycarbonate_twin",
		"polycarbonate_triple",
	}
}

func DefaultCovering() CoveringProperties {
	return coveringMaterials["double_polyethylene"]
}

// GreenhouseState is the complete simulation state handed through the
// stepping loop.
type GreenhouseState struct {
	Time           time.Time
	Interior       AirState
	Exterior       AirState
	SolarRadiation float64
	WindSpeed      float64
	WindDirection  float64
	Location       Location
	Geometry       GreenhouseGeometry
	Covering       CoveringProperties
}

func (s GreenhouseState) Validate() error {
	if s.SolarRadiation < 0 {
		return DomainError{Quantity: "solar radiation", Value: s.SolarRadiation, Min: 0, Max: math.Inf(1)}
	}
	if s.WindSpeed < 0 {
		return DomainError{Quantity: "wind speed", Value: s.WindSpeed, Min: 0, Max: math.Inf(1)}
	}
	if err := s.Interior.Validate(); err != nil {
		return err
	}
	if err := s.Exterior.Validate(); err != nil {
		return err
	}
	if err := s.Location.Validate(); err != nil {
		return err
	}
	if err := s.Geometry.Validate(); err != nil {
		return err
	}
	return s.Covering.Validate()
}

// DeltaT is the interior minus exterior temperature difference.
func (s GreenhouseState) DeltaT() float64 {
	return s.Interior.Temperature - s.Exterior.Temperature
}
