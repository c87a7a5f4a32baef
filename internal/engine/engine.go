// Package engine runs the time-stepped greenhouse climate simulation.
// Each step pulls exterior conditions from a WeatherSource, reads
// sensors, executes controllers, applies actuator effects, integrates
// the interior heat, moisture and CO2 balances, and publishes
// telemetry to the attached sinks.
package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/barkimedes/go-deepcopy"
	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
	"github.com/cloudgrow/cloudgrow/internal/components"
	"github.com/cloudgrow/cloudgrow/internal/controllers"
	"github.com/cloudgrow/cloudgrow/internal/physics"
	"github.com/sirupsen/logrus"
)

// Status is the engine lifecycle state.
type Status int

const (
	Initialized Status = iota
	Running
	Stopped
	Errored
)

func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Errored:
		return "errored"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Stats summarizes a simulation run.
type Stats struct {
	StepsCompleted    int
	SimulatedDuration time.Duration
	WallDuration      time.Duration
}

// AverageStepTime returns the wall time spent per step.
func (s Stats) AverageStepTime() time.Duration {
	if s.StepsCompleted == 0 {
		return 0
	}
	return s.WallDuration / time.Duration(s.StepsCompleted)
}

// Binding wires a controller to its process variable and the actuators
// it drives. Sensor is a "name.field" reference into a registered
// sensor's measurement.
type Binding struct {
	Sensor    string
	Actuators []string
}

type boundController struct {
	controller controllers.Controller
	sensor     components.Sensor
	field      string
	actuators  []components.Actuator
}

// Checkpoint is a restorable snapshot of the simulation clock and
// climate state. Component internals are not captured: restore to a
// checkpoint taken at a controller-quiescent point or accept a control
// transient.
type Checkpoint struct {
	State            cloudgrow.GreenhouseState
	FloorTemperature float64
	Time             time.Time
	Steps            int
}

// Args configures a new Engine.
type Args struct {
	State        cloudgrow.GreenhouseState
	Weather      WeatherSource
	StartTime    time.Time
	EndTime      time.Time
	TimeStep     time.Duration
	EmitInterval int
	Logger       *logrus.Entry
}

// Engine orchestrates the simulation loop. It is not safe for
// concurrent use.
type Engine struct {
	state        cloudgrow.GreenhouseState
	initialState cloudgrow.GreenhouseState
	weather      WeatherSource
	start, end   time.Time
	now          time.Time
	timeStep     time.Duration

	names         map[string]bool
	sensors       []components.Sensor
	actuators     map[string]components.Actuator
	actuatorOrder []components.Actuator
	controllers   []boundController
	modifiers     []components.Modifier
	sinks         []Sink

	status        Status
	stepCount     int
	emitInterval  int
	stats         Stats
	lastPowerDraw float64
	floorTemp     float64
	logger        *logrus.Entry

	lastReadings map[string]components.Measurement
}

func New(args Args) (*Engine, error) {
	if args.Weather == nil {
		args.Weather = NewSyntheticWeatherSource(DefaultSyntheticWeatherArgs())
	}
	if args.TimeStep <= 0 {
		args.TimeStep = time.Minute
	}
	if args.EmitInterval <= 0 {
		args.EmitInterval = 1
	}
	if args.Logger == nil {
		args.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if args.EndTime.IsZero() == false && args.EndTime.Before(args.StartTime) {
		return nil, cloudgrow.ConfigurationError{
			Field:  "end-time",
			Reason: "end time precedes start time",
		}
	}
	args.State.Time = args.StartTime
	if err := args.State.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		state:        args.State,
		initialState: args.State,
		weather:      args.Weather,
		start:        args.StartTime,
		end:          args.EndTime,
		now:          args.StartTime,
		timeStep:     args.TimeStep,
		names:        map[string]bool{},
		actuators:    map[string]components.Actuator{},
		status:       Initialized,
		emitInterval: args.EmitInterval,
		floorTemp:    args.State.Interior.Temperature,
		logger:       args.Logger.WithField("group", "engine"),
		lastReadings: map[string]components.Measurement{},
	}, nil
}

// State returns the current climate state.
func (e *Engine) State() cloudgrow.GreenhouseState {
	return e.state
}

// Status returns the current lifecycle state.
func (e *Engine) Status() Status {
	return e.status
}

// CurrentTime returns the simulation clock.
func (e *Engine) CurrentTime() time.Time {
	return e.now
}

// Stats returns the run statistics so far.
func (e *Engine) Stats() Stats {
	return e.stats
}

// LastReadings returns the sensor measurements from the most recent
// step, keyed by sensor name. Sensors that were disabled during that
// step have no entry.
func (e *Engine) LastReadings() map[string]components.Measurement {
	return e.lastReadings
}

// FloorTemperature returns the temperature of the floor slab, in °C.
func (e *Engine) FloorTemperature() float64 {
	return e.floorTemp
}

func (e *Engine) registerName(name string) error {
	if e.status != Initialized {
		return cloudgrow.StateError{Op: "register components", State: e.status.String()}
	}
	if e.names[name] {
		return cloudgrow.ConfigurationError{
			Field:  name,
			Reason: "a component with that name is already registered",
		}
	}
	e.names[name] = true
	return nil
}

func (e *Engine) AddSensor(sensor components.Sensor) error {
	if err := e.registerName(sensor.Name()); err != nil {
		return err
	}
	e.sensors = append(e.sensors, sensor)
	return nil
}

func (e *Engine) AddActuator(actuator components.Actuator) error {
	if err := e.registerName(actuator.Name()); err != nil {
		return err
	}
	e.actuators[actuator.Name()] = actuator
	e.actuatorOrder = append(e.actuatorOrder, actuator)
	return nil
}

func (e *Engine) AddModifier(modifier components.Modifier) error {
	if err := e.registerName(modifier.Name()); err != nil {
		return err
	}
	e.modifiers = append(e.modifiers, modifier)
	return nil
}

// AddController registers a controller with its bindings. The sensor
// and all actuators in the binding must already be registered: wiring
// errors surface here, before the first step.
func (e *Engine) AddController(controller controllers.Controller, binding Binding) error {
	if err := e.registerName(controller.Name()); err != nil {
		return err
	}
	bound := boundController{controller: controller}

	sensorName, field, ok := strings.Cut(binding.Sensor, ".")
	if ok == false {
		return cloudgrow.ConfigurationError{
			Field:  controller.Name() + ".sensor",
			Reason: fmt.Sprintf("'%s' is not a 'sensor.field' reference", binding.Sensor),
		}
	}
	for _, sensor := range e.sensors {
		if sensor.Name() == sensorName {
			bound.sensor = sensor
			break
		}
	}
	if bound.sensor == nil {
		return cloudgrow.ConfigurationError{
			Field:  controller.Name() + ".sensor",
			Reason: fmt.Sprintf("unknown sensor '%s'", sensorName),
		}
	}
	bound.field = field

	for _, name := range binding.Actuators {
		actuator, ok := e.actuators[name]
		if ok == false {
			return cloudgrow.ConfigurationError{
				Field:  controller.Name() + ".actuators",
				Reason: fmt.Sprintf("unknown actuator '%s'", name),
			}
		}
		bound.actuators = append(bound.actuators, actuator)
	}

	e.controllers = append(e.controllers, bound)
	return nil
}

// AddSink attaches a telemetry sink.
func (e *Engine) AddSink(sink Sink) {
	e.sinks = append(e.sinks, sink)
}

func (e *Engine) publish(eventType, message string, data map[string]float64) {
	event := Event{
		Type:    eventType,
		Time:    e.now,
		Source:  "engine",
		Message: message,
		Data:    data,
	}
	for _, sink := range e.sinks {
		sink.Publish(event)
	}
}

func (e *Engine) fail(err error) error {
	e.status = Errored
	e.publish(EventSimulationError, err.Error(), nil)
	e.logger.WithError(err).Error("simulation step failed")
	return err
}

// Step advances the simulation by one time step. It reports false once
// the end time is reached. A physics or weather error aborts the step
// and transitions the engine to Errored.
func (e *Engine) Step() (bool, error) {
	switch e.status {
	case Errored, Stopped:
		return false, cloudgrow.StateError{Op: "step", State: e.status.String()}
	}
	if e.end.IsZero() == false && e.now.Before(e.end) == false {
		e.status = Stopped
		return false, nil
	}
	dt := e.timeStep.Seconds()

	// 1. Exterior boundary from weather.
	conditions, err := e.weather.Conditions(e.now)
	if err != nil {
		return false, e.fail(fmt.Errorf("weather source: %w", err))
	}
	e.state.Time = e.now
	e.state.Exterior.Temperature = conditions.Temperature
	e.state.Exterior.Humidity = conditions.Humidity
	e.state.Exterior.Pressure = conditions.Pressure
	e.state.SolarRadiation = conditions.SolarRadiation
	e.state.WindSpeed = conditions.WindSpeed
	e.state.WindDirection = conditions.WindDirection
	if err := e.state.Validate(); err != nil {
		return false, e.fail(err)
	}

	// 2. Sensors. A disabled sensor yields no reading this step, not a
	// stale one: its bound controllers are skipped until it reads again.
	for _, sensor := range e.sensors {
		if measurement, ok := sensor.Read(e.state); ok {
			e.lastReadings[sensor.Name()] = measurement
		} else {
			delete(e.lastReadings, sensor.Name())
		}
	}

	// 3. Controllers drive their bound actuators.
	for _, bound := range e.controllers {
		if bound.controller.Enabled() == false {
			continue
		}
		if timeAware, ok := bound.controller.(controllers.TimeAware); ok {
			timeAware.SetSimulationTime(e.now)
		}
		measurement, ok := e.lastReadings[bound.sensor.Name()]
		if ok == false {
			continue
		}
		pv, ok := measurement[bound.field]
		if ok == false {
			return false, e.fail(cloudgrow.ConfigurationError{
				Field:  bound.controller.Name() + ".sensor",
				Reason: fmt.Sprintf("sensor '%s' does not measure '%s'", bound.sensor.Name(), bound.field),
			})
		}
		output := bound.controller.Compute(pv, dt)
		for _, actuator := range bound.actuators {
			actuator.SetOutput(output)
		}
	}

	// 4. Actuator effects, in registration order.
	var effects []components.Effect
	for _, actuator := range e.actuatorOrder {
		actuator.Step(dt)
		effect, err := actuator.Effect(e.state)
		if err != nil {
			return false, e.fail(fmt.Errorf("actuator '%s': %w", actuator.Name(), err))
		}
		effects = append(effects, effect)
	}

	// 5. Modifier effects.
	for _, modifier := range e.modifiers {
		effects = append(effects, modifier.Step(dt, e.state))
	}

	// 6. Integrate the interior balances.
	if err := e.integrate(dt, conditions.CloudCover, effects); err != nil {
		return false, e.fail(err)
	}

	// 7. Telemetry.
	if e.stepCount%e.emitInterval == 0 {
		e.publish(EventStateUpdate, "state update", e.snapshot())
	}

	e.now = e.now.Add(e.timeStep)
	e.stepCount++
	e.stats.StepsCompleted++
	e.stats.SimulatedDuration += e.timeStep
	return true, nil
}

// kgCO2PerPpmCubicMeter converts an injected CO2 mass to a volumetric
// concentration: 1 ppm in 1 m^3 of air at density 1.2 kg/m^3 weighs
// rho * M_CO2/M_air * 1e-6 kg.
const kgCO2PerPpmCubicMeter = 1.2 * (44.01 / 28.97) * 1e-6

// Floor slab coupling. The exposed floor exchanges heat with the
// interior air by convection and carries most of the short-term thermal
// inertia of the house. The slab starts in equilibrium with the
// interior air.
const (
	floorHeatTransferCoefficient = 10.0 // W/(m².K)
	floorSlabDepth               = 0.3  // m
)

func (e *Engine) integrate(dt, cloudCover float64, effects []components.Effect) error {
	geom := e.state.Geometry
	covering := e.state.Covering
	tInt := e.state.Interior.Temperature
	tExt := e.state.Exterior.Temperature

	totalHeat := 0.0
	totalMoisture := 0.0
	totalCO2 := 0.0
	totalVentilation := 0.0
	totalPower := 0.0
	extraResistance := 0.0
	solarTransmission := 1.0
	for _, effect := range effects {
		totalHeat += effect.HeatFlux
		totalMoisture += effect.MoistureFlux
		totalCO2 += effect.CO2Flux
		totalVentilation += effect.VentilationRate
		totalPower += effect.PowerDraw
		extraResistance += effect.ExtraResistance
		solarTransmission *= 1.0 - effect.ShadeFactor
	}
	e.lastPowerDraw = totalPower

	// Heat balance.
	uValue := covering.UValue
	if extraResistance > 0 {
		uValue = 1.0 / (1.0/covering.UValue + extraResistance)
	}
	solarGain := e.state.SolarRadiation * solarTransmission *
		covering.SolarTransmittance * geom.FloorArea()
	qConduction := physics.ConductionHeatTransfer(
		uValue, geom.WallArea()+geom.RoofArea(), tInt, tExt)
	qVentilation := totalVentilation * physics.StandardAirDensity *
		physics.CpDryAir * (tInt - tExt)

	tSky, err := physics.SkyTemperature(tExt, e.state.Exterior.Humidity, cloudCover)
	if err != nil {
		return err
	}
	tIntK := physics.CelsiusToKelvin(tInt)
	tSkyK := physics.CelsiusToKelvin(tSky)
	// Longwave loss through the covering with an effective system
	// emissivity of 0.1.
	qRadiation := 0.1 * physics.StefanBoltzmann * geom.RoofArea() *
		(math.Pow(tIntK, 4) - math.Pow(tSkyK, 4))

	qFloor := floorHeatTransferCoefficient * geom.FloorArea() * (e.floorTemp - tInt)

	qNet := solarGain + totalHeat + qFloor - qConduction - qVentilation - qRadiation

	airMass := geom.Volume() * physics.StandardAirDensity
	deltaT := qNet * dt / (airMass * physics.CpDryAir)
	deltaT = math.Max(-5.0, math.Min(5.0, deltaT))
	newTemp := math.Max(-50.0, math.Min(60.0, tInt+deltaT))

	floorCapacity := geom.FloorArea() * floorSlabDepth *
		physics.SoilDensity * physics.SoilSpecificHeat
	e.floorTemp -= qFloor * dt / floorCapacity

	// Moisture balance.
	wInt, err := physics.HumidityRatio(tInt, e.state.Interior.Humidity, e.state.Interior.Pressure)
	if err != nil {
		return err
	}
	wExt, err := physics.HumidityRatio(tExt, e.state.Exterior.Humidity, e.state.Exterior.Pressure)
	if err != nil {
		return err
	}
	moistureVentilation := totalVentilation * physics.StandardAirDensity * (wExt - wInt)
	newW := wInt + (moistureVentilation+totalMoisture)*dt/airMass
	newW = math.Max(0.001, newW)
	newRH, err := physics.RelativeHumidity(newTemp, newW, e.state.Interior.Pressure)
	if err != nil {
		return err
	}
	newRH = math.Max(10.0, math.Min(100.0, newRH))

	// CO2 balance, in ppm.
	co2Int := e.state.Interior.CO2
	co2Ventilation := totalVentilation * (e.state.Exterior.CO2 - co2Int) / geom.Volume()
	co2Injection := totalCO2 / (kgCO2PerPpmCubicMeter * geom.Volume())
	newCO2 := co2Int + (co2Ventilation+co2Injection)*dt
	newCO2 = math.Max(200.0, math.Min(5000.0, newCO2))

	e.state.Interior.Temperature = newTemp
	e.state.Interior.Humidity = newRH
	e.state.Interior.CO2 = newCO2
	return nil
}

func (e *Engine) snapshot() map[string]float64 {
	return map[string]float64{
		"interior_temperature": e.state.Interior.Temperature,
		"interior_humidity":    e.state.Interior.Humidity,
		"interior_co2":         e.state.Interior.CO2,
		"exterior_temperature": e.state.Exterior.Temperature,
		"exterior_humidity":    e.state.Exterior.Humidity,
		"solar_radiation":      e.state.SolarRadiation,
		"wind_speed":           e.state.WindSpeed,
		"power_draw":           e.lastPowerDraw,
		"floor_temperature":    e.floorTemp,
	}
}

// Run executes up to steps simulation steps, or until the end time
// when steps is zero or negative. A bounded run leaves the engine
// Running so it can be resumed with another call.
func (e *Engine) Run(steps int) (Stats, error) {
	if e.status != Initialized && e.status != Running {
		return e.stats, cloudgrow.StateError{Op: "run", State: e.status.String()}
	}
	e.status = Running
	e.publish(EventSimulationStart,
		fmt.Sprintf("simulation started at %s", e.now.Format(time.RFC3339)), nil)

	startWall := time.Now()
	completed := 0
	var runErr error
	for {
		if steps > 0 && completed >= steps {
			break
		}
		ok, err := e.Step()
		if err != nil {
			runErr = err
			break
		}
		if ok == false {
			break
		}
		completed++
	}
	e.stats.WallDuration += time.Since(startWall)

	if runErr != nil {
		return e.stats, runErr
	}
	e.publish(EventSimulationStop,
		fmt.Sprintf("simulation stopped after %d steps", e.stats.StepsCompleted), nil)
	return e.stats, nil
}

// Reset returns the engine to its initial state and resets every
// registered component.
func (e *Engine) Reset() {
	e.state = e.initialState
	e.now = e.start
	e.stepCount = 0
	e.stats = Stats{}
	e.lastPowerDraw = 0.0
	e.floorTemp = e.initialState.Interior.Temperature
	e.status = Initialized
	e.lastReadings = map[string]components.Measurement{}
	for _, sensor := range e.sensors {
		sensor.Reset()
	}
	for _, actuator := range e.actuatorOrder {
		actuator.Reset()
	}
	for _, bound := range e.controllers {
		bound.controller.Reset()
	}
	for _, modifier := range e.modifiers {
		modifier.Reset()
	}
}

// Checkpoint captures the simulation clock, the floor slab temperature
// and a deep copy of the climate state.
func (e *Engine) Checkpoint() (Checkpoint, error) {
	copied, err := deepcopy.Anything(e.state)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("could not copy state: %w", err)
	}
	return Checkpoint{
		State:            copied.(cloudgrow.GreenhouseState),
		FloorTemperature: e.floorTemp,
		Time:             e.now,
		Steps:            e.stepCount,
	}, nil
}

// Restore rewinds the engine to a previously taken checkpoint. The
// engine becomes steppable again even if it had stopped.
func (e *Engine) Restore(checkpoint Checkpoint) error {
	copied, err := deepcopy.Anything(checkpoint.State)
	if err != nil {
		return fmt.Errorf("could not copy state: %w", err)
	}
	e.state = copied.(cloudgrow.GreenhouseState)
	e.floorTemp = checkpoint.FloorTemperature
	e.now = checkpoint.Time
	e.stepCount = checkpoint.Steps
	e.status = Initialized
	return nil
}
