package components

import (
	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
)

// ThermalMass buffers temperature swings: water barrels or a concrete
// floor absorb heat while the air is warmer than they are and release
// it back when the air cools. It integrates its own temperature with
// Newton cooling against the interior air.
type ThermalMass struct {
	componentBase
	mass                    float64
	specificHeat            float64
	surfaceArea             float64
	heatTransferCoefficient float64
	initialTemperature      float64
	temperature             float64
}

// ThermalMassArgs configures a thermal mass element. Mass is in kg,
// SpecificHeat in J/(kg.K), SurfaceArea the area exposed to the air in
// m^2.
type ThermalMassArgs struct {
	Preset                  string  `yaml:"preset"`
	Mass                    float64 `yaml:"mass"`
	SpecificHeat            float64 `yaml:"specific-heat"`
	SurfaceArea             float64 `yaml:"surface-area"`
	HeatTransferCoefficient float64 `yaml:"heat-transfer-coefficient"`
	InitialTemperature      float64 `yaml:"initial-temperature"`
}

// thermalMassPresets holds common storage elements. Per-area presets
// (concrete) are given per m^2 and scale with SurfaceArea.
var thermalMassPresets = map[string]ThermalMassArgs{
	"water_barrel_200l":   {Mass: 200.0, SpecificHeat: 4186.0, SurfaceArea: 1.5},
	"water_barrel_55gal":  {Mass: 208.0, SpecificHeat: 4186.0, SurfaceArea: 1.6},
	"concrete_floor_10cm": {Mass: 2400.0, SpecificHeat: 880.0, SurfaceArea: 1.0},
	"concrete_block_wall": {Mass: 150.0, SpecificHeat: 880.0, SurfaceArea: 1.0},
}

// ThermalMassPresetNames lists the available presets.
func ThermalMassPresetNames() []string {
	return []string{
		"water_barrel_200l",
		"water_barrel_55gal",
		"concrete_floor_10cm",
		"concrete_block_wall",
	}
}

func NewThermalMass(name string, args ThermalMassArgs) (*ThermalMass, error) {
	if args.Preset != "" {
		preset, ok := thermalMassPresets[args.Preset]
		if ok == false {
			return nil, cloudgrow.ConfigurationError{
				Field:  name + ".preset",
				Reason: "unknown preset '" + args.Preset + "'",
			}
		}
		if args.Mass == 0 {
			args.Mass = preset.Mass
		}
		if args.SpecificHeat == 0 {
			args.SpecificHeat = preset.SpecificHeat
		}
		if args.SurfaceArea == 0 {
			args.SurfaceArea = preset.SurfaceArea
		}
	}
	if args.Mass == 0 {
		args.Mass = 1000.0
	}
	if args.SpecificHeat == 0 {
		args.SpecificHeat = 4186.0
	}
	if args.SurfaceArea == 0 {
		args.SurfaceArea = 10.0
	}
	if args.HeatTransferCoefficient == 0 {
		args.HeatTransferCoefficient = 10.0
	}
	if args.InitialTemperature == 0 {
		args.InitialTemperature = 20.0
	}
	if args.Mass < 0 || args.SpecificHeat <= 0 || args.SurfaceArea < 0 {
		return nil, cloudgrow.ConfigurationError{
			Field:  name + ".mass",
			Reason: "mass, specific heat and surface area must be positive",
		}
	}
	return &ThermalMass{
		componentBase:           componentBase{name: name, enabled: true},
		mass:                    args.Mass,
		specificHeat:            args.SpecificHeat,
		surfaceArea:             args.SurfaceArea,
		heatTransferCoefficient: args.HeatTransferCoefficient,
		initialTemperature:      args.InitialTemperature,
		temperature:             args.InitialTemperature,
	}, nil
}

// Temperature returns the current storage temperature in Celsius.
func (m *ThermalMass) Temperature() float64 {
	return m.temperature
}

// ThermalCapacity returns the total heat capacity in J/K.
func (m *ThermalMass) ThermalCapacity() float64 {
	return m.mass * m.specificHeat
}

// HeatExchange returns the heat flow to the air in W at the given air
// temperature. Positive when the mass is warmer than the air.
func (m *ThermalMass) HeatExchange(airTemperature float64) float64 {
	return m.heatTransferCoefficient * m.surfaceArea * (m.temperature - airTemperature)
}

func (m *ThermalMass) Step(dt float64, state cloudgrow.GreenhouseState) Effect {
	if m.enabled == false {
		return Effect{}
	}
	q := m.HeatExchange(state.Interior.Temperature)
	m.temperature -= q * dt / m.ThermalCapacity()
	return Effect{HeatFlux: q}
}

func (m *ThermalMass) Reset() {
	m.temperature = m.initialTemperature
}
