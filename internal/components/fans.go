package components

import (
	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
	"github.com/cloudgrow/cloudgrow/internal/physics"
)

// FanArgs configures a mechanical fan. MaxFlowRate is the airflow at
// full speed in m^3/s, Power the electrical draw at full speed in W.
type FanArgs struct {
	MaxFlowRate float64 `yaml:"max-flow-rate"`
	Power       float64 `yaml:"power"`
	Count       int     `yaml:"count"`
	SlewTime    float64 `yaml:"slew-time"`
	OutputMin   float64 `yaml:"output-min"`
	OutputMax   float64 `yaml:"output-max"`
}

func (a *FanArgs) withDefaults(flowRate, power float64) {
	if a.MaxFlowRate == 0 {
		a.MaxFlowRate = flowRate
	}
	if a.Power == 0 {
		a.Power = power
	}
	if a.Count == 0 {
		a.Count = 1
	}
}

func (a FanArgs) validate(name string) error {
	if a.MaxFlowRate < 0 {
		return cloudgrow.ConfigurationError{
			Field:  name + ".max-flow-rate",
			Reason: "flow rate must be non-negative",
		}
	}
	if a.Count < 1 {
		return cloudgrow.ConfigurationError{
			Field:  name + ".count",
			Reason: "fan count must be at least 1",
		}
	}
	return nil
}

// ExhaustFan draws interior air out of the greenhouse, pulling
// exterior air in through openings. Power follows the fan affinity
// laws, scaling with the cube of speed.
type ExhaustFan struct {
	actuatorBase
	maxFlowRate float64
	power       float64
	count       int
}

func NewExhaustFan(name string, args FanArgs) (*ExhaustFan, error) {
	args.withDefaults(5.0, 500.0)
	if err := args.validate(name); err != nil {
		return nil, err
	}
	min, max, err := outputLimits(args.OutputMin, args.OutputMax)
	if err != nil {
		return nil, err
	}
	return &ExhaustFan{
		actuatorBase: newActuatorBase(name, min, max, args.SlewTime),
		maxFlowRate:  args.MaxFlowRate,
		power:        args.Power,
		count:        args.Count,
	}, nil
}

// FlowRate returns the current airflow in m^3/s.
func (f *ExhaustFan) FlowRate() float64 {
	return physics.FanFlowRate(f.maxFlowRate, f.count, f.output)
}

func (f *ExhaustFan) Effect(state cloudgrow.GreenhouseState) (Effect, error) {
	if f.enabled == false || f.output <= 0 {
		return Effect{}, nil
	}
	speed := f.output
	return Effect{
		VentilationRate: f.FlowRate(),
		PowerDraw:       f.power * float64(f.count) * speed * speed * speed,
	}, nil
}

// IntakeFan pushes exterior air into the greenhouse, typically paired
// with an evaporative pad on the intake wall.
type IntakeFan struct {
	actuatorBase
	maxFlowRate float64
	power       float64
	count       int
}

func NewIntakeFan(name string, args FanArgs) (*IntakeFan, error) {
	args.withDefaults(5.0, 500.0)
	if err := args.validate(name); err != nil {
		return nil, err
	}
	min, max, err := outputLimits(args.OutputMin, args.OutputMax)
	if err != nil {
		return nil, err
	}
	return &IntakeFan{
		actuatorBase: newActuatorBase(name, min, max, args.SlewTime),
		maxFlowRate:  args.MaxFlowRate,
		power:        args.Power,
		count:        args.Count,
	}, nil
}

func (f *IntakeFan) FlowRate() float64 {
	return physics.FanFlowRate(f.maxFlowRate, f.count, f.output)
}

func (f *IntakeFan) Effect(state cloudgrow.GreenhouseState) (Effect, error) {
	if f.enabled == false || f.output <= 0 {
		return Effect{}, nil
	}
	speed := f.output
	return Effect{
		VentilationRate: f.FlowRate(),
		PowerDraw:       f.power * float64(f.count) * speed * speed * speed,
	}, nil
}

// CirculationFan mixes interior air without exchanging any with the
// exterior. It contributes only electrical load and a small sensible
// gain from the motor; power scales linearly since circulation fans
// run against negligible static pressure.
type CirculationFan struct {
	actuatorBase
	power float64
}

type CirculationFanArgs struct {
	Power     float64 `yaml:"power"`
	SlewTime  float64 `yaml:"slew-time"`
	OutputMin float64 `yaml:"output-min"`
	OutputMax float64 `yaml:"output-max"`
}

func NewCirculationFan(name string, args CirculationFanArgs) (*CirculationFan, error) {
	if args.Power == 0 {
		args.Power = 100.0
	}
	if args.Power < 0 {
		return nil, cloudgrow.ConfigurationError{
			Field:  name + ".power",
			Reason: "power must be non-negative",
		}
	}
	min, max, err := outputLimits(args.OutputMin, args.OutputMax)
	if err != nil {
		return nil, err
	}
	return &CirculationFan{
		actuatorBase: newActuatorBase(name, min, max, args.SlewTime),
		power:        args.Power,
	}, nil
}

func (f *CirculationFan) Effect(state cloudgrow.GreenhouseState) (Effect, error) {
	if f.enabled == false || f.output <= 0 {
		return Effect{}, nil
	}
	power := f.power * f.output
	// All the motor's electrical input ends up as heat in the air.
	return Effect{
		HeatFlux:  power,
		PowerDraw: power,
	}, nil
}
