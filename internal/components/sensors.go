package components

import (
	"math"
	"math/rand"

	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
	"github.com/cloudgrow/cloudgrow/internal/physics"
)

// Placement selects which air state a sensor observes.
type Placement string

const (
	Interior Placement = "interior"
	Exterior Placement = "exterior"
)

// sensorBase holds placement and the seeded noise source shared by all
// sensors. The same seed always reproduces the same noise sequence,
// and Reset rewinds it.
type sensorBase struct {
	componentBase
	placement Placement
	noiseStd  float64
	seed      int64
	rng       *rand.Rand
}

// SensorArgs configures placement and measurement noise common to all
// sensor types.
type SensorArgs struct {
	Placement Placement `yaml:"placement"`
	NoiseStd  float64   `yaml:"noise-std"`
	Seed      int64     `yaml:"seed"`
}

func newSensorBase(name string, args SensorArgs) (sensorBase, error) {
	placement := args.Placement
	if placement == "" {
		placement = Interior
	}
	if placement != Interior && placement != Exterior {
		return sensorBase{}, cloudgrow.ConfigurationError{
			Field:  name + ".placement",
			Reason: "unknown placement '" + string(placement) + "'",
		}
	}
	if args.NoiseStd < 0 {
		return sensorBase{}, cloudgrow.ConfigurationError{
			Field:  name + ".noise-std",
			Reason: "noise standard deviation must be non-negative",
		}
	}
	return sensorBase{
		componentBase: componentBase{name: name, enabled: true},
		placement:     placement,
		noiseStd:      args.NoiseStd,
		seed:          args.Seed,
		rng:           rand.New(rand.NewSource(args.Seed)),
	}, nil
}

func (s *sensorBase) Placement() Placement {
	return s.placement
}

func (s *sensorBase) addNoise(value, std float64) float64 {
	if std <= 0 {
		return value
	}
	return value + s.rng.NormFloat64()*std
}

func (s *sensorBase) air(state cloudgrow.GreenhouseState) cloudgrow.AirState {
	if s.placement == Exterior {
		return state.Exterior
	}
	return state.Interior
}

func (s *sensorBase) Reset() {
	s.rng = rand.New(rand.NewSource(s.seed))
}

// TemperatureSensor measures air temperature in degrees Celsius.
type TemperatureSensor struct {
	sensorBase
}

func NewTemperatureSensor(name string, args SensorArgs) (*TemperatureSensor, error) {
	base, err := newSensorBase(name, args)
	if err != nil {
		return nil, err
	}
	return &TemperatureSensor{sensorBase: base}, nil
}

func (s *TemperatureSensor) Read(state cloudgrow.GreenhouseState) (Measurement, bool) {
	if s.enabled == false {
		return nil, false
	}
	return Measurement{
		"temperature": s.addNoise(s.air(state).Temperature, s.noiseStd),
	}, true
}

// HumiditySensor measures relative humidity in percent, clamped to the
// physical range.
type HumiditySensor struct {
	sensorBase
}

func NewHumiditySensor(name string, args SensorArgs) (*HumiditySensor, error) {
	base, err := newSensorBase(name, args)
	if err != nil {
		return nil, err
	}
	return &HumiditySensor{sensorBase: base}, nil
}

func (s *HumiditySensor) Read(state cloudgrow.GreenhouseState) (Measurement, bool) {
	if s.enabled == false {
		return nil, false
	}
	rh := s.addNoise(s.air(state).Humidity, s.noiseStd)
	return Measurement{
		"humidity": math.Min(100.0, math.Max(0.0, rh)),
	}, true
}

// CO2Sensor measures carbon dioxide concentration in ppm.
type CO2Sensor struct {
	sensorBase
}

func NewCO2Sensor(name string, args SensorArgs) (*CO2Sensor, error) {
	base, err := newSensorBase(name, args)
	if err != nil {
		return nil, err
	}
	return &CO2Sensor{sensorBase: base}, nil
}

func (s *CO2Sensor) Read(state cloudgrow.GreenhouseState) (Measurement, bool) {
	if s.enabled == false {
		return nil, false
	}
	return Measurement{
		"co2": math.Max(0.0, s.addNoise(s.air(state).CO2, s.noiseStd)),
	}, true
}

// RadiationSensor measures solar radiation in W/m^2 and the derived
// PAR in umol/(m^2.s). Interior sensors see the radiation transmitted
// through the covering.
type RadiationSensor struct {
	sensorBase
}

func NewRadiationSensor(name string, args SensorArgs) (*RadiationSensor, error) {
	if args.Placement == "" {
		args.Placement = Exterior
	}
	base, err := newSensorBase(name, args)
	if err != nil {
		return nil, err
	}
	return &RadiationSensor{sensorBase: base}, nil
}

func (s *RadiationSensor) Read(state cloudgrow.GreenhouseState) (Measurement, bool) {
	if s.enabled == false {
		return nil, false
	}
	solar := state.SolarRadiation
	par := physics.PARFromSolar(solar)
	if s.placement == Interior {
		solar *= state.Covering.SolarTransmittance
		par = physics.PARFromSolar(state.SolarRadiation * state.Covering.PARTransmittance)
	}
	return Measurement{
		"solar_radiation": math.Max(0.0, s.addNoise(solar, s.noiseStd)),
		"par":             math.Max(0.0, s.addNoise(par, s.noiseStd)),
	}, true
}

// WindSensor measures wind speed in m/s and direction in degrees from
// north. Direction noise is configured separately from speed noise.
type WindSensor struct {
	sensorBase
	directionNoiseStd float64
}

type WindSensorArgs struct {
	SensorArgs        `yaml:",inline"`
	DirectionNoiseStd float64 `yaml:"direction-noise-std"`
}

func NewWindSensor(name string, args WindSensorArgs) (*WindSensor, error) {
	if args.Placement == "" {
		args.Placement = Exterior
	}
	base, err := newSensorBase(name, args.SensorArgs)
	if err != nil {
		return nil, err
	}
	return &WindSensor{
		sensorBase:        base,
		directionNoiseStd: args.DirectionNoiseStd,
	}, nil
}

func (s *WindSensor) Read(state cloudgrow.GreenhouseState) (Measurement, bool) {
	if s.enabled == false {
		return nil, false
	}
	speed := math.Max(0.0, s.addNoise(state.WindSpeed, s.noiseStd))
	direction := math.Mod(s.addNoise(state.WindDirection, s.directionNoiseStd), 360.0)
	if direction < 0 {
		direction += 360.0
	}
	return Measurement{
		"wind_speed":     speed,
		"wind_direction": direction,
	}, true
}
