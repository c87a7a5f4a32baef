package components

import (
	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
)

// CO2Injector enriches the interior air with carbon dioxide, either
// from liquid CO2 tanks or flue gas recovery. Injection is wasted
// while vents are open, but that tradeoff belongs to the controller
// driving it.
type CO2Injector struct {
	actuatorBase
	injectionRate float64
}

// CO2InjectorArgs configures an injector. InjectionRate is the CO2
// delivery at full output in kg/h.
type CO2InjectorArgs struct {
	InjectionRate float64 `yaml:"injection-rate"`
	SlewTime      float64 `yaml:"slew-time"`
	OutputMin     float64 `yaml:"output-min"`
	OutputMax     float64 `yaml:"output-max"`
}

func NewCO2Injector(name string, args CO2InjectorArgs) (*CO2Injector, error) {
	if args.InjectionRate == 0 {
		args.InjectionRate = 5.0
	}
	if args.InjectionRate < 0 {
		return nil, cloudgrow.ConfigurationError{
			Field:  name + ".injection-rate",
			Reason: "injection rate must be non-negative",
		}
	}
	min, max, err := outputLimits(args.OutputMin, args.OutputMax)
	if err != nil {
		return nil, err
	}
	return &CO2Injector{
		actuatorBase:  newActuatorBase(name, min, max, args.SlewTime),
		injectionRate: args.InjectionRate,
	}, nil
}

// CurrentRate returns the injection rate in kg/s at the current
// output.
func (i *CO2Injector) CurrentRate() float64 {
	return i.injectionRate * i.output / 3600.0
}

func (i *CO2Injector) Effect(state cloudgrow.GreenhouseState) (Effect, error) {
	if i.enabled == false || i.output <= 0 {
		return Effect{}, nil
	}
	return Effect{CO2Flux: i.CurrentRate()}, nil
}
