package components

import (
	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
	"github.com/cloudgrow/cloudgrow/internal/physics"
)

// EvaporativePad cools incoming air by evaporating water from a wetted
// pad. The supply air approaches the exterior wet-bulb temperature
// according to the pad's saturation efficiency. Output drives the
// water flow over the pad.
type EvaporativePad struct {
	actuatorBase
	area                 float64
	saturationEfficiency float64
	airflow              float64
	waterConsumptionRate float64
}

// EvaporativePadArgs configures a pad. Airflow is the air drawn
// through the pad in m^3/s, normally matched to the intake fans on the
// same wall. WaterConsumptionRate is in m^3/s per m^2 of pad at full
// output.
type EvaporativePadArgs struct {
	Area                 float64 `yaml:"area"`
	SaturationEfficiency float64 `yaml:"saturation-efficiency"`
	Airflow              float64 `yaml:"airflow"`
	WaterConsumptionRate float64 `yaml:"water-consumption-rate"`
	SlewTime             float64 `yaml:"slew-time"`
	OutputMin            float64 `yaml:"output-min"`
	OutputMax            float64 `yaml:"output-max"`
}

func NewEvaporativePad(name string, args EvaporativePadArgs) (*EvaporativePad, error) {
	if args.Area == 0 {
		args.Area = 10.0
	}
	if args.SaturationEfficiency == 0 {
		args.SaturationEfficiency = 0.85
	}
	if args.Airflow == 0 {
		args.Airflow = 5.0
	}
	if args.WaterConsumptionRate == 0 {
		args.WaterConsumptionRate = 0.001
	}
	if args.SaturationEfficiency < 0 || args.SaturationEfficiency > 1 {
		return nil, cloudgrow.ConfigurationError{
			Field:  name + ".saturation-efficiency",
			Reason: "saturation efficiency must be in [0,1]",
		}
	}
	if args.Area < 0 || args.Airflow < 0 {
		return nil, cloudgrow.ConfigurationError{
			Field:  name + ".area",
			Reason: "area and airflow must be non-negative",
		}
	}
	min, max, err := outputLimits(args.OutputMin, args.OutputMax)
	if err != nil {
		return nil, err
	}
	return &EvaporativePad{
		actuatorBase:         newActuatorBase(name, min, max, args.SlewTime),
		area:                 args.Area,
		saturationEfficiency: args.SaturationEfficiency,
		airflow:              args.Airflow,
		waterConsumptionRate: args.WaterConsumptionRate,
	}, nil
}

// CurrentEfficiency returns the effective saturation efficiency at the
// current water flow.
func (p *EvaporativePad) CurrentEfficiency() float64 {
	return p.saturationEfficiency * p.output
}

// SupplyTemperature returns the temperature of air leaving the pad.
func (p *EvaporativePad) SupplyTemperature(state cloudgrow.GreenhouseState) (float64, error) {
	tDb := state.Exterior.Temperature
	tWb, err := physics.WetBulbTemperature(tDb, state.Exterior.Humidity, state.Exterior.Pressure)
	if err != nil {
		return 0, err
	}
	return tDb - p.CurrentEfficiency()*(tDb-tWb), nil
}

// WaterConsumption returns the water use in m^3/s at the current
// output.
func (p *EvaporativePad) WaterConsumption() float64 {
	return p.waterConsumptionRate * p.area * p.output
}

func (p *EvaporativePad) Effect(state cloudgrow.GreenhouseState) (Effect, error) {
	if p.enabled == false || p.output <= 0 {
		return Effect{}, nil
	}
	tSupply, err := p.SupplyTemperature(state)
	if err != nil {
		return Effect{}, err
	}
	tDb := state.Exterior.Temperature
	cooling := physics.StandardAirDensity * physics.CpDryAir * p.airflow * (tDb - tSupply)
	evaporated := cooling / physics.LatentHeatOfVaporization(tDb)
	return Effect{
		HeatFlux:     -cooling,
		MoistureFlux: evaporated,
	}, nil
}

// Fogger sprays fine droplets directly into the interior air, cooling
// it by evaporation while raising humidity.
type Fogger struct {
	actuatorBase
	nozzleCount       int
	flowRatePerNozzle float64
}

// FoggerArgs configures a fogger. FlowRatePerNozzle is in L/h.
type FoggerArgs struct {
	NozzleCount       int     `yaml:"nozzle-count"`
	FlowRatePerNozzle float64 `yaml:"flow-rate-per-nozzle"`
	SlewTime          float64 `yaml:"slew-time"`
	OutputMin         float64 `yaml:"output-min"`
	OutputMax         float64 `yaml:"output-max"`
}

func NewFogger(name string, args FoggerArgs) (*Fogger, error) {
	if args.NozzleCount == 0 {
		args.NozzleCount = 20
	}
	if args.FlowRatePerNozzle == 0 {
		args.FlowRatePerNozzle = 5.0
	}
	if args.NozzleCount < 0 || args.FlowRatePerNozzle < 0 {
		return nil, cloudgrow.ConfigurationError{
			Field:  name + ".nozzle-count",
			Reason: "nozzle count and flow rate must be non-negative",
		}
	}
	min, max, err := outputLimits(args.OutputMin, args.OutputMax)
	if err != nil {
		return nil, err
	}
	return &Fogger{
		actuatorBase:      newActuatorBase(name, min, max, args.SlewTime),
		nozzleCount:       args.NozzleCount,
		flowRatePerNozzle: args.FlowRatePerNozzle,
	}, nil
}

// WaterFlow returns the current water flow in kg/s, all of which is
// assumed to evaporate.
func (f *Fogger) WaterFlow() float64 {
	return float64(f.nozzleCount) * f.flowRatePerNozzle * f.output / 3600.0
}

func (f *Fogger) Effect(state cloudgrow.GreenhouseState) (Effect, error) {
	if f.enabled == false || f.output <= 0 {
		return Effect{}, nil
	}
	flow := f.WaterFlow()
	return Effect{
		HeatFlux:     -flow * physics.LatentHeatOfVaporization(state.Interior.Temperature),
		MoistureFlux: flow,
	}, nil
}
