package engine

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
	"github.com/cloudgrow/cloudgrow/internal/components"
	"github.com/cloudgrow/cloudgrow/internal/controllers"
	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"
)

// Duration wraps time.Duration to accept "24h" / "90s" strings in
// scenario files.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(str)
	if err != nil {
		return fmt.Errorf("invalid duration '%s': %s", str, err)
	}
	*d = Duration(parsed)
	return nil
}

// CoveringDecl selects a covering either by catalog material name or
// with fully custom properties.
type CoveringDecl struct {
	Material string                        `yaml:"material"`
	Custom   *cloudgrow.CoveringProperties `yaml:"custom"`
}

func (d CoveringDecl) resolve() (cloudgrow.CoveringProperties, error) {
	if d.Custom != nil {
		return *d.Custom, d.Custom.Validate()
	}
	if d.Material == "" {
		return cloudgrow.DefaultCovering(), nil
	}
	return cloudgrow.CoveringByName(d.Material)
}

// WeatherDecl selects the weather source for a scenario.
type WeatherDecl struct {
	Source    string               `yaml:"source"`
	File      string               `yaml:"file"`
	Synthetic SyntheticWeatherArgs `yaml:"synthetic"`
}

func (d WeatherDecl) resolve() (WeatherSource, error) {
	switch d.Source {
	case "", "synthetic":
		return NewSyntheticWeatherSource(d.Synthetic), nil
	case "csv":
		if d.File == "" {
			return nil, cloudgrow.ConfigurationError{
				Field:  "weather.file",
				Reason: "csv weather source requires a file",
			}
		}
		return NewCSVWeatherSource(d.File)
	}
	return nil, cloudgrow.ConfigurationError{
		Field:  "weather.source",
		Reason: fmt.Sprintf("unknown source '%s'", d.Source),
	}
}

// SensorDecl builds the declared sensor while unmarshaling, resolving
// the type tag through a fixed factory table.
type SensorDecl struct {
	Name   string
	Type   string
	sensor components.Sensor
}

var sensorFactories = map[string]func(name string, unmarshal func(interface{}) error) (components.Sensor, error){
	"temperature": func(name string, unmarshal func(interface{}) error) (components.Sensor, error) {
		args := components.SensorArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewTemperatureSensor(name, args)
	},
	"humidity": func(name string, unmarshal func(interface{}) error) (components.Sensor, error) {
		args := components.SensorArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewHumiditySensor(name, args)
	},
	"co2": func(name string, unmarshal func(interface{}) error) (components.Sensor, error) {
		args := components.SensorArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewCO2Sensor(name, args)
	},
	"radiation": func(name string, unmarshal func(interface{}) error) (components.Sensor, error) {
		args := components.SensorArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewRadiationSensor(name, args)
	},
	"wind": func(name string, unmarshal func(interface{}) error) (components.Sensor, error) {
		args := components.WindSensorArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewWindSensor(name, args)
	},
}

func (d *SensorDecl) UnmarshalYAML(unmarshal func(interface{}) error) error {
	head := struct {
		Type string `yaml:"type"`
		Name string `yaml:"name"`
	}{}
	if err := unmarshal(&head); err != nil {
		return err
	}
	factory, ok := sensorFactories[head.Type]
	if ok == false {
		return cloudgrow.ConfigurationError{
			Field:  "sensors",
			Reason: fmt.Sprintf("unknown sensor type '%s'", head.Type),
		}
	}
	sensor, err := factory(head.Name, unmarshal)
	if err != nil {
		return err
	}
	d.Name = head.Name
	d.Type = head.Type
	d.sensor = sensor
	return nil
}

// ActuatorDecl builds the declared actuator while unmarshaling.
type ActuatorDecl struct {
	Name     string
	Type     string
	actuator components.Actuator
}

var actuatorFactories = map[string]func(name string, unmarshal func(interface{}) error) (components.Actuator, error){
	"exhaust-fan": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.FanArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewExhaustFan(name, args)
	},
	"intake-fan": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.FanArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewIntakeFan(name, args)
	},
	"circulation-fan": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.CirculationFanArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewCirculationFan(name, args)
	},
	"unit-heater": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.HeaterArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewUnitHeater(name, args)
	},
	"radiant-heater": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.RadiantHeaterArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewRadiantHeater(name, args)
	},
	"roof-vent": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.VentArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewRoofVent(name, args)
	},
	"side-vent": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.VentArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewSideVent(name, args)
	},
	"evaporative-pad": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.EvaporativePadArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewEvaporativePad(name, args)
	},
	"fogger": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.FoggerArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewFogger(name, args)
	},
	"co2-injector": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.CO2InjectorArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewCO2Injector(name, args)
	},
	"shade-curtain": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.ShadeCurtainArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewShadeCurtain(name, args)
	},
	"thermal-curtain": func(name string, unmarshal func(interface{}) error) (components.Actuator, error) {
		args := components.ThermalCurtainArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewThermalCurtain(name, args)
	},
}

func (d *ActuatorDecl) UnmarshalYAML(unmarshal func(interface{}) error) error {
	head := struct {
		Type string `yaml:"type"`
		Name string `yaml:"name"`
	}{}
	if err := unmarshal(&head); err != nil {
		return err
	}
	factory, ok := actuatorFactories[head.Type]
	if ok == false {
		return cloudgrow.ConfigurationError{
			Field:  "actuators",
			Reason: fmt.Sprintf("unknown actuator type '%s'", head.Type),
		}
	}
	actuator, err := factory(head.Name, unmarshal)
	if err != nil {
		return err
	}
	d.Name = head.Name
	d.Type = head.Type
	d.actuator = actuator
	return nil
}

// ControllerDecl builds the declared controller and carries its
// bindings.
type ControllerDecl struct {
	Name       string
	Type       string
	Sensor     string
	Actuators  []string
	controller controllers.Controller
}

var controllerFactories = map[string]func(name string, unmarshal func(interface{}) error) (controllers.Controller, error){
	"pid": func(name string, unmarshal func(interface{}) error) (controllers.Controller, error) {
		args := controllers.PIDArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return controllers.NewPID(name, args), nil
	},
	"staged": func(name string, unmarshal func(interface{}) error) (controllers.Controller, error) {
		args := controllers.StagedArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return controllers.NewStaged(name, args), nil
	},
	"hysteresis": func(name string, unmarshal func(interface{}) error) (controllers.Controller, error) {
		args := controllers.HysteresisArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return controllers.NewHysteresis(name, args), nil
	},
	"schedule": func(name string, unmarshal func(interface{}) error) (controllers.Controller, error) {
		args := controllers.ScheduleArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return controllers.NewSchedule(name, args)
	},
}

func (d *ControllerDecl) UnmarshalYAML(unmarshal func(interface{}) error) error {
	head := struct {
		Type      string   `yaml:"type"`
		Name      string   `yaml:"name"`
		Sensor    string   `yaml:"sensor"`
		Actuators []string `yaml:"actuators"`
	}{}
	if err := unmarshal(&head); err != nil {
		return err
	}
	factory, ok := controllerFactories[head.Type]
	if ok == false {
		return cloudgrow.ConfigurationError{
			Field:  "controllers",
			Reason: fmt.Sprintf("unknown controller type '%s'", head.Type),
		}
	}
	controller, err := factory(head.Name, unmarshal)
	if err != nil {
		return err
	}
	d.Name = head.Name
	d.Type = head.Type
	d.Sensor = head.Sensor
	d.Actuators = head.Actuators
	d.controller = controller
	return nil
}

// ModifierDecl builds the declared passive modifier.
type ModifierDecl struct {
	Name     string
	Type     string
	modifier components.Modifier
}

var modifierFactories = map[string]func(name string, unmarshal func(interface{}) error) (components.Modifier, error){
	"thermal-mass": func(name string, unmarshal func(interface{}) error) (components.Modifier, error) {
		args := components.ThermalMassArgs{}
		if err := unmarshal(&args); err != nil {
			return nil, err
		}
		return components.NewThermalMass(name, args)
	},
}

func (d *ModifierDecl) UnmarshalYAML(unmarshal func(interface{}) error) error {
	head := struct {
		Type string `yaml:"type"`
		Name string `yaml:"name"`
	}{}
	if err := unmarshal(&head); err != nil {
		return err
	}
	factory, ok := modifierFactories[head.Type]
	if ok == false {
		return cloudgrow.ConfigurationError{
			Field:  "modifiers",
			Reason: fmt.Sprintf("unknown modifier type '%s'", head.Type),
		}
	}
	modifier, err := factory(head.Name, unmarshal)
	if err != nil {
		return err
	}
	d.Name = head.Name
	d.Type = head.Type
	d.modifier = modifier
	return nil
}

// Scenario is a complete simulation description loaded from a YAML
// file.
type Scenario struct {
	Version      string                       `yaml:"cloudgrow-version"`
	Name         string                       `yaml:"name"`
	StartTime    time.Time                    `yaml:"start-time"`
	Duration     Duration                     `yaml:"duration"`
	TimeStep     Duration                     `yaml:"time-step"`
	EmitInterval int                          `yaml:"emit-interval"`
	Location     cloudgrow.Location           `yaml:"location"`
	Geometry     cloudgrow.GreenhouseGeometry `yaml:"geometry"`
	Covering     CoveringDecl                 `yaml:"covering"`
	Interior     cloudgrow.AirState           `yaml:"interior"`
	Exterior     cloudgrow.AirState           `yaml:"exterior"`
	Weather      WeatherDecl                  `yaml:"weather"`
	Sensors      []SensorDecl                 `yaml:"sensors"`
	Actuators    []ActuatorDecl               `yaml:"actuators"`
	Controllers  []ControllerDecl             `yaml:"controllers"`
	Modifiers    []ModifierDecl               `yaml:"modifiers"`
}

// ReadScenario parses a scenario and checks that its declared version
// is compatible with this build.
func ReadScenario(filename string) (*Scenario, error) {
	content, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseScenario(content)
}

// ParseScenario parses scenario YAML content.
func ParseScenario(content []byte) (*Scenario, error) {
	scenario := &Scenario{}
	if err := yaml.Unmarshal(content, scenario); err != nil {
		return nil, err
	}
	if scenario.Version == "" {
		return nil, cloudgrow.ConfigurationError{
			Field:  "cloudgrow-version",
			Reason: "scenario does not declare a version",
		}
	}
	compatible, err := cloudgrow.VersionAreCompatible(cloudgrow.CLOUDGROW_VERSION, scenario.Version)
	if err != nil {
		return nil, err
	}
	if compatible == false {
		return nil, cloudgrow.ConfigurationError{
			Field: "cloudgrow-version",
			Reason: fmt.Sprintf("scenario version %s is incompatible with %s",
				scenario.Version, cloudgrow.CLOUDGROW_VERSION),
		}
	}
	if scenario.StartTime.IsZero() {
		return nil, cloudgrow.ConfigurationError{
			Field:  "start-time",
			Reason: "scenario does not declare a start time",
		}
	}
	if scenario.Duration <= 0 {
		scenario.Duration = Duration(24 * time.Hour)
	}
	if scenario.TimeStep <= 0 {
		scenario.TimeStep = Duration(time.Minute)
	}
	if scenario.Geometry == (cloudgrow.GreenhouseGeometry{}) {
		scenario.Geometry = cloudgrow.DefaultGeometry()
	}
	if scenario.Interior == (cloudgrow.AirState{}) {
		scenario.Interior = cloudgrow.DefaultAirState()
	}
	if scenario.Exterior == (cloudgrow.AirState{}) {
		scenario.Exterior = cloudgrow.DefaultAirState()
	}
	return scenario, nil
}

// BuildEngine assembles a ready-to-run engine from the scenario. All
// wiring errors surface here, before the first step.
func (s *Scenario) BuildEngine(logger *logrus.Entry) (*Engine, error) {
	covering, err := s.Covering.resolve()
	if err != nil {
		return nil, err
	}
	weather, err := s.Weather.resolve()
	if err != nil {
		return nil, err
	}

	state := cloudgrow.GreenhouseState{
		Time:     s.StartTime,
		Interior: s.Interior,
		Exterior: s.Exterior,
		Location: s.Location,
		Geometry: s.Geometry,
		Covering: covering,
	}

	engine, err := New(Args{
		State:        state,
		Weather:      weather,
		StartTime:    s.StartTime,
		EndTime:      s.StartTime.Add(time.Duration(s.Duration)),
		TimeStep:     time.Duration(s.TimeStep),
		EmitInterval: s.EmitInterval,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	for _, decl := range s.Sensors {
		if err := engine.AddSensor(decl.sensor); err != nil {
			return nil, err
		}
	}
	for _, decl := range s.Actuators {
		if err := engine.AddActuator(decl.actuator); err != nil {
			return nil, err
		}
	}
	for _, decl := range s.Modifiers {
		if err := engine.AddModifier(decl.modifier); err != nil {
			return nil, err
		}
	}
	for _, decl := range s.Controllers {
		binding := Binding{Sensor: decl.Sensor, Actuators: decl.Actuators}
		if err := engine.AddController(decl.controller, binding); err != nil {
			return nil, err
		}
	}
	return engine, nil
}
