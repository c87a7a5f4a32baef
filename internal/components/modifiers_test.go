package components

import (
	. "gopkg.in/check.v1"
)

type ModifierSuite struct{}

var _ = Suite(&ModifierSuite{})

func (s *ModifierSuite) TestThermalMassReleasesHeatWhenWarmer(c *C) {
	mass, err := NewThermalMass("barrels", ThermalMassArgs{
		Mass:                    1000.0,
		SpecificHeat:            4186.0,
		SurfaceArea:             10.0,
		HeatTransferCoefficient: 10.0,
		InitialTemperature:      30.0,
	})
	c.Assert(err, IsNil)

	state := testState() // interior at 24 C
	effect := mass.Step(60.0, state)
	// Q = h * A * (T_mass - T_air) = 10 * 10 * 6
	checkClose(c, effect.HeatFlux, 600.0, 1e-9, Commentf("heat to air"))
	// Releasing heat cools the mass down.
	c.Check(mass.Temperature() < 30.0, Equals, true)
}

func (s *ModifierSuite) TestThermalMassAbsorbsHeatWhenCooler(c *C) {
	mass, err := NewThermalMass("floor", ThermalMassArgs{InitialTemperature: 18.0})
	c.Assert(err, IsNil)

	effect := mass.Step(60.0, testState())
	c.Check(effect.HeatFlux < 0, Equals, true)
	c.Check(mass.Temperature() > 18.0, Equals, true)
}

func (s *ModifierSuite) TestThermalMassApproachesAirTemperature(c *C) {
	mass, err := NewThermalMass("barrels", ThermalMassArgs{
		Mass:               100.0,
		InitialTemperature: 30.0,
	})
	c.Assert(err, IsNil)

	state := testState()
	for i := 0; i < 10000; i++ {
		mass.Step(60.0, state)
	}
	checkClose(c, mass.Temperature(), state.Interior.Temperature, 0.01,
		Commentf("equilibrium"))
}

func (s *ModifierSuite) TestThermalMassEnergyConservation(c *C) {
	mass, err := NewThermalMass("barrels", ThermalMassArgs{InitialTemperature: 30.0})
	c.Assert(err, IsNil)

	state := testState()
	effect := mass.Step(60.0, state)
	// The energy handed to the air equals the energy lost by the mass.
	expectedDrop := effect.HeatFlux * 60.0 / mass.ThermalCapacity()
	checkClose(c, 30.0-mass.Temperature(), expectedDrop, 1e-12, Commentf("energy balance"))
}

func (s *ModifierSuite) TestThermalMassReset(c *C) {
	mass, err := NewThermalMass("barrels", ThermalMassArgs{InitialTemperature: 30.0})
	c.Assert(err, IsNil)
	mass.Step(600.0, testState())
	c.Assert(mass.Temperature(), Not(Equals), 30.0)
	mass.Reset()
	c.Check(mass.Temperature(), Equals, 30.0)
}

func (s *ModifierSuite) TestThermalMassDisabled(c *C) {
	mass, err := NewThermalMass("barrels", ThermalMassArgs{InitialTemperature: 30.0})
	c.Assert(err, IsNil)
	mass.SetEnabled(false)
	c.Check(mass.Step(60.0, testState()), Equals, Effect{})
	c.Check(mass.Temperature(), Equals, 30.0)
}

func (s *ModifierSuite) TestThermalMassPresets(c *C) {
	mass, err := NewThermalMass("barrel", ThermalMassArgs{Preset: "water_barrel_200l"})
	c.Assert(err, IsNil)
	c.Check(mass.ThermalCapacity(), Equals, 200.0*4186.0)

	for _, name := range ThermalMassPresetNames() {
		_, err := NewThermalMass("m", ThermalMassArgs{Preset: name})
		c.Check(err, IsNil, Commentf("preset %s", name))
	}

	_, err = NewThermalMass("m", ThermalMassArgs{Preset: "granite_slab"})
	c.Check(err, ErrorMatches, "invalid configuration for m.preset: unknown preset 'granite_slab'")
}
