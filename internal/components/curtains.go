package components

import (
	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
)

// ShadeCurtain blocks part of the incoming solar radiation when
// deployed, protecting crops from excess light and heat.
type ShadeCurtain struct {
	actuatorBase
	shadeFactor float64
}

// ShadeCurtainArgs configures a shade curtain. ShadeFactor is the
// fraction of radiation blocked when fully deployed.
type ShadeCurtainArgs struct {
	ShadeFactor float64 `yaml:"shade-factor"`
	SlewTime    float64 `yaml:"slew-time"`
	OutputMin   float64 `yaml:"output-min"`
	OutputMax   float64 `yaml:"output-max"`
}

func NewShadeCurtain(name string, args ShadeCurtainArgs) (*ShadeCurtain, error) {
	if args.ShadeFactor == 0 {
		args.ShadeFactor = 0.5
	}
	if args.ShadeFactor < 0 || args.ShadeFactor > 1 {
		return nil, cloudgrow.ConfigurationError{
			Field:  name + ".shade-factor",
			Reason: "shade factor must be in [0,1]",
		}
	}
	min, max, err := outputLimits(args.OutputMin, args.OutputMax)
	if err != nil {
		return nil, err
	}
	return &ShadeCurtain{
		actuatorBase: newActuatorBase(name, min, max, args.SlewTime),
		shadeFactor:  args.ShadeFactor,
	}, nil
}

// CurrentShading returns the fraction of radiation blocked at the
// current deployment.
func (s *ShadeCurtain) CurrentShading() float64 {
	return s.shadeFactor * s.output
}

func (s *ShadeCurtain) Effect(state cloudgrow.GreenhouseState) (Effect, error) {
	if s.enabled == false || s.output <= 0 {
		return Effect{}, nil
	}
	return Effect{ShadeFactor: s.CurrentShading()}, nil
}

// ThermalCurtain retains heat at night by adding an insulating layer
// under the covering. It also blocks some solar radiation, so it is
// normally retracted during the day.
type ThermalCurtain struct {
	actuatorBase
	thermalResistance  float64
	solarTransmittance float64
}

// ThermalCurtainArgs configures a thermal curtain. ThermalResistance
// is the R-value added when fully deployed, in m^2.K/W.
type ThermalCurtainArgs struct {
	ThermalResistance  float64 `yaml:"thermal-resistance"`
	SolarTransmittance float64 `yaml:"solar-transmittance"`
	SlewTime           float64 `yaml:"slew-time"`
	OutputMin          float64 `yaml:"output-min"`
	OutputMax          float64 `yaml:"output-max"`
}

func NewThermalCurtain(name string, args ThermalCurtainArgs) (*ThermalCurtain, error) {
	if args.ThermalResistance == 0 {
		args.ThermalResistance = 0.5
	}
	if args.SolarTransmittance == 0 {
		args.SolarTransmittance = 0.3
	}
	if args.ThermalResistance < 0 {
		return nil, cloudgrow.ConfigurationError{
			Field:  name + ".thermal-resistance",
			Reason: "thermal resistance must be non-negative",
		}
	}
	if args.SolarTransmittance < 0 || args.SolarTransmittance > 1 {
		return nil, cloudgrow.ConfigurationError{
			Field:  name + ".solar-transmittance",
			Reason: "solar transmittance must be in [0,1]",
		}
	}
	min, max, err := outputLimits(args.OutputMin, args.OutputMax)
	if err != nil {
		return nil, err
	}
	return &ThermalCurtain{
		actuatorBase:       newActuatorBase(name, min, max, args.SlewTime),
		thermalResistance:  args.ThermalResistance,
		solarTransmittance: args.SolarTransmittance,
	}, nil
}

// CurrentResistance returns the R-value added at the current
// deployment, in m^2.K/W.
func (t *ThermalCurtain) CurrentResistance() float64 {
	return t.thermalResistance * t.output
}

func (t *ThermalCurtain) Effect(state cloudgrow.GreenhouseState) (Effect, error) {
	if t.enabled == false || t.output <= 0 {
		return Effect{}, nil
	}
	return Effect{
		ExtraResistance: t.CurrentResistance(),
		ShadeFactor:     t.output * (1.0 - t.solarTransmittance),
	}, nil
}
