package engine

import (
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
	. "gopkg.in/check.v1"
)

type ScenarioSuite struct{}

var _ = Suite(&ScenarioSuite{})

var scenarioYAML = `cloudgrow-version: development
name: summer-day
start-time: 2026-06-01T00:00:00Z
duration: 12h
time-step: 1m
emit-interval: 5
location:
  latitude: 43.6
  longitude: 3.8
geometry:
  type: gable
  length: 30
  width: 10
  ridge-height: 5
  eave-height: 3
covering:
  material: double_polyethylene
interior:
  temperature: 20
  humidity: 60
  co2: 800
exterior:
  temperature: 15
  humidity: 70
weather:
  source: synthetic
  synthetic:
    latitude: 43.6
    temp-mean: 18
sensors:
  - type: temperature
    name: air
  - type: humidity
    name: rh
    noise-std: 0.5
    seed: 7
actuators:
  - type: unit-heater
    name: heater
    capacity: 25000
  - type: roof-vent
    name: vent
    width: 1.5
controllers:
  - type: pid
    name: heating
    sensor: air.temperature
    actuators: [heater]
    kp: 0.5
    ki: 0.01
    setpoint: 22
modifiers:
  - type: thermal-mass
    name: barrels
    preset: water_barrel_200l
`

func (s *ScenarioSuite) TestParsing(c *C) {
	scenario, err := ParseScenario([]byte(scenarioYAML))
	c.Assert(err, IsNil)

	c.Check(scenario.Name, Equals, "summer-day")
	c.Check(scenario.StartTime, Equals, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	c.Check(scenario.Duration, Equals, Duration(12*time.Hour))
	c.Check(scenario.TimeStep, Equals, Duration(time.Minute))
	c.Check(scenario.EmitInterval, Equals, 5)
	c.Check(scenario.Location.Latitude, Equals, 43.6)
	c.Check(scenario.Geometry.Length, Equals, 30.0)
	c.Check(scenario.Interior.Temperature, Equals, 20.0)
	// Omitted fields fall back to their defaults.
	c.Check(scenario.Interior.Pressure, Equals, 101325.0)
	c.Check(scenario.Weather.Synthetic.TempMean, Equals, 18.0)
	c.Check(scenario.Weather.Synthetic.TempAmplitudeAnnual, Equals, 12.0)

	c.Assert(scenario.Sensors, HasLen, 2)
	c.Check(scenario.Sensors[0].Type, Equals, "temperature")
	c.Check(scenario.Sensors[0].Name, Equals, "air")
	c.Assert(scenario.Actuators, HasLen, 2)
	c.Check(scenario.Actuators[1].Type, Equals, "roof-vent")
	c.Assert(scenario.Controllers, HasLen, 1)
	c.Check(scenario.Controllers[0].Sensor, Equals, "air.temperature")
	c.Check(scenario.Controllers[0].Actuators, DeepEquals, []string{"heater"})
	c.Assert(scenario.Modifiers, HasLen, 1)
	c.Check(scenario.Modifiers[0].Name, Equals, "barrels")
}

func (s *ScenarioSuite) TestBuildEngine(c *C) {
	scenario, err := ParseScenario([]byte(scenarioYAML))
	c.Assert(err, IsNil)

	engine, err := scenario.BuildEngine(nil)
	c.Assert(err, IsNil)
	c.Check(engine.Status(), Equals, Initialized)
	c.Check(engine.State().Covering.Name, Equals, "double_polyethylene")
	c.Check(engine.State().Interior.CO2, Equals, 800.0)
	c.Check(engine.CurrentTime(), Equals, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	ok, err := engine.Step()
	c.Assert(err, IsNil)
	c.Check(ok, Equals, true)
}

func (s *ScenarioSuite) TestReadScenario(c *C) {
	path := filepath.Join(c.MkDir(), "scenario.yml")
	err := ioutil.WriteFile(path, []byte(scenarioYAML), 0644)
	c.Assert(err, IsNil)

	scenario, err := ReadScenario(path)
	c.Assert(err, IsNil)
	c.Check(scenario.Name, Equals, "summer-day")

	_, err = ReadScenario(filepath.Join(c.MkDir(), "missing.yml"))
	c.Check(err, Not(IsNil))
}

func (s *ScenarioSuite) TestDefaults(c *C) {
	scenario, err := ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
`))
	c.Assert(err, IsNil)
	c.Check(scenario.Duration, Equals, Duration(24*time.Hour))
	c.Check(scenario.TimeStep, Equals, Duration(time.Minute))
	c.Check(scenario.Geometry, DeepEquals, cloudgrow.DefaultGeometry())
	c.Check(scenario.Interior, DeepEquals, cloudgrow.DefaultAirState())
}

func (s *ScenarioSuite) TestMissingVersion(c *C) {
	_, err := ParseScenario([]byte(`name: no-version
start-time: 2026-06-01T00:00:00Z
`))
	c.Check(err, ErrorMatches,
		"invalid configuration for cloudgrow-version: scenario does not declare a version")
}

func (s *ScenarioSuite) TestIncompatibleVersion(c *C) {
	defer func(saved string) { cloudgrow.CLOUDGROW_VERSION = saved }(cloudgrow.CLOUDGROW_VERSION)
	cloudgrow.CLOUDGROW_VERSION = "0.4.0"

	_, err := ParseScenario([]byte(`cloudgrow-version: 0.3.0
start-time: 2026-06-01T00:00:00Z
`))
	c.Check(err, ErrorMatches,
		"invalid configuration for cloudgrow-version: scenario version 0.3.0 is incompatible with 0.4.0")

	_, err = ParseScenario([]byte(`cloudgrow-version: 0.4.2
start-time: 2026-06-01T00:00:00Z
`))
	c.Check(err, IsNil)
}

func (s *ScenarioSuite) TestMissingStartTime(c *C) {
	_, err := ParseScenario([]byte(`cloudgrow-version: development
`))
	c.Check(err, ErrorMatches,
		"invalid configuration for start-time: scenario does not declare a start time")
}

func (s *ScenarioSuite) TestInvalidDuration(c *C) {
	_, err := ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
duration: three days
`))
	c.Check(err, ErrorMatches, "invalid duration 'three days': .*")
}

func (s *ScenarioSuite) TestUnknownComponentTypes(c *C) {
	_, err := ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
sensors:
  - type: barometer
    name: baro
`))
	c.Check(err, ErrorMatches, ".*unknown sensor type 'barometer'")

	_, err = ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
actuators:
  - type: heat-pump
    name: pump
`))
	c.Check(err, ErrorMatches, ".*unknown actuator type 'heat-pump'")

	_, err = ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
controllers:
  - type: fuzzy
    name: logic
`))
	c.Check(err, ErrorMatches, ".*unknown controller type 'fuzzy'")

	_, err = ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
modifiers:
  - type: rock-pile
    name: rocks
`))
	c.Check(err, ErrorMatches, ".*unknown modifier type 'rock-pile'")
}

func (s *ScenarioSuite) TestInvalidComponentArguments(c *C) {
	_, err := ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
actuators:
  - type: unit-heater
    name: heater
    efficiency: 1.5
`))
	c.Check(err, ErrorMatches, ".*efficiency.*")
}

func (s *ScenarioSuite) TestWeatherDeclErrors(c *C) {
	scenario, err := ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
weather:
  source: csv
`))
	c.Assert(err, IsNil)
	_, err = scenario.BuildEngine(nil)
	c.Check(err, ErrorMatches,
		"invalid configuration for weather.file: csv weather source requires a file")

	scenario, err = ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
weather:
  source: satellite
`))
	c.Assert(err, IsNil)
	_, err = scenario.BuildEngine(nil)
	c.Check(err, ErrorMatches,
		"invalid configuration for weather.source: unknown source 'satellite'")
}

func (s *ScenarioSuite) TestCustomCovering(c *C) {
	scenario, err := ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
covering:
  custom:
    name: experimental-film
    solar-transmittance: 0.82
    par-transmittance: 0.80
    thermal-transmittance: 0.1
    u-value: 5.0
    solar-reflectance: 0.1
`))
	c.Assert(err, IsNil)

	engine, err := scenario.BuildEngine(nil)
	c.Assert(err, IsNil)
	c.Check(engine.State().Covering.Name, Equals, "experimental-film")
	c.Check(engine.State().Covering.SolarTransmittance, Equals, 0.82)
}

func (s *ScenarioSuite) TestUnknownCoveringMaterial(c *C) {
	scenario, err := ParseScenario([]byte(`cloudgrow-version: development
start-time: 2026-06-01T00:00:00Z
covering:
  material: unobtainium
`))
	c.Assert(err, IsNil)
	_, err = scenario.BuildEngine(nil)
	c.Check(err, Not(IsNil))
}
