package components

import (
	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
	"github.com/cloudgrow/cloudgrow/internal/physics"
)

// VentArgs configures a natural ventilation opening. Width and Height
// describe the opening in meters, HeightAboveFloor the center of the
// opening which drives the stack effect.
type VentArgs struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	HeightAboveFloor float64 `yaml:"height-above-floor"`
	SlewTime         float64 `yaml:"slew-time"`
	OutputMin        float64 `yaml:"output-min"`
	OutputMax        float64 `yaml:"output-max"`
}

func (a VentArgs) validate(name string) error {
	if a.Width <= 0 || a.Height <= 0 {
		return cloudgrow.ConfigurationError{
			Field:  name + ".width",
			Reason: "opening dimensions must be positive",
		}
	}
	if a.HeightAboveFloor <= 0 {
		return cloudgrow.ConfigurationError{
			Field:  name + ".height-above-floor",
			Reason: "height above floor must be positive",
		}
	}
	return nil
}

type vent struct {
	actuatorBase
	width            float64
	height           float64
	heightAboveFloor float64
}

func newVent(name string, args VentArgs) (vent, error) {
	if err := args.validate(name); err != nil {
		return vent{}, err
	}
	min, max, err := outputLimits(args.OutputMin, args.OutputMax)
	if err != nil {
		return vent{}, err
	}
	return vent{
		actuatorBase:     newActuatorBase(name, min, max, args.SlewTime),
		width:            args.Width,
		height:           args.Height,
		heightAboveFloor: args.HeightAboveFloor,
	}, nil
}

// OpeningArea returns the current open area in m^2.
func (v *vent) OpeningArea() float64 {
	return physics.VentOpeningArea(v.width, v.height, v.output)
}

func (v *vent) naturalFlow(state cloudgrow.GreenhouseState) Effect {
	if v.enabled == false || v.output <= 0 {
		return Effect{}
	}
	flow := physics.CombinedNaturalVentilation(
		v.OpeningArea(),
		v.heightAboveFloor,
		state.Interior.Temperature,
		state.Exterior.Temperature,
		state.WindSpeed,
	)
	return Effect{VentilationRate: flow}
}

// RoofVent is a ridge opening driven by both stack effect and wind.
type RoofVent struct {
	vent
}

func NewRoofVent(name string, args VentArgs) (*RoofVent, error) {
	if args.Width == 0 {
		args.Width = 1.0
	}
	if args.Height == 0 {
		args.Height = 0.5
	}
	if args.HeightAboveFloor == 0 {
		args.HeightAboveFloor = 4.0
	}
	v, err := newVent(name, args)
	if err != nil {
		return nil, err
	}
	return &RoofVent{vent: v}, nil
}

func (v *RoofVent) Effect(state cloudgrow.GreenhouseState) (Effect, error) {
	return v.naturalFlow(state), nil
}

// SideVent is a wall opening, lower than roof vents and mostly
// wind-driven. Commonly the intake side of a natural cross flow.
type SideVent struct {
	vent
}

func NewSideVent(name string, args VentArgs) (*SideVent, error) {
	if args.Width == 0 {
		args.Width = 2.0
	}
	if args.Height == 0 {
		args.Height = 1.0
	}
	if args.HeightAboveFloor == 0 {
		args.HeightAboveFloor = 1.0
	}
	v, err := newVent(name, args)
	if err != nil {
		return nil, err
	}
	return &SideVent{vent: v}, nil
}

func (v *SideVent) Effect(state cloudgrow.GreenhouseState) (Effect, error) {
	return v.naturalFlow(state), nil
}
