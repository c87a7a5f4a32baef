// Package components implements the equipment that populates a
// greenhouse: sensors that observe the climate state, actuators that
// push heat, moisture, CO2 or air through it, and passive modifiers
// that buffer it. The simulation engine only talks to the interfaces
// declared here.
package components

import (
	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
)

// Measurement maps measured field names to values, e.g.
// {"temperature": 21.3} or {"wind_speed": 3.2, "wind_direction": 270.0}.
type Measurement map[string]float64

// Effect aggregates every physical contribution an actuator or
// modifier makes during one step. Zero values mean no contribution;
// the engine sums effects over all components in registration order.
type Effect struct {
	// HeatFlux is sensible heat added to the interior air, in W.
	// Negative values cool.
	HeatFlux float64
	// MoistureFlux is water vapor added to the interior air, in kg/s.
	MoistureFlux float64
	// CO2Flux is carbon dioxide added to the interior air, in kg/s.
	CO2Flux float64
	// VentilationRate is air exchanged with the exterior, in m^3/s.
	VentilationRate float64
	// ShadeFactor is the fraction of incoming solar radiation blocked,
	// in [0,1]. Multiple shading components compound multiplicatively.
	ShadeFactor float64
	// ExtraResistance is thermal resistance added to the covering, in
	// m^2.K/W.
	ExtraResistance float64
	// PowerDraw is electrical power consumed, in W.
	PowerDraw float64
}

// Component is the common surface of everything registered with the
// engine.
type Component interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	Reset()
}

// Sensor measures one or more fields of the climate state. Read
// reports false when the sensor is disabled.
type Sensor interface {
	Component
	Read(state cloudgrow.GreenhouseState) (Measurement, bool)
}

// Actuator receives a control signal and produces physical effects.
// SetOutput stores a clamped target; Step advances the actual output
// toward it, instantaneously unless the actuator has a slew time.
// Effect errors are fatal to the simulation step: an actuator whose
// physics cannot be evaluated must not contribute a silent zero.
type Actuator interface {
	Component
	Output() float64
	SetOutput(value float64)
	Step(dt float64)
	Effect(state cloudgrow.GreenhouseState) (Effect, error)
}

// Modifier is a passive element that contributes effects without a
// control signal, possibly integrating internal state of its own.
type Modifier interface {
	Component
	Step(dt float64, state cloudgrow.GreenhouseState) Effect
}

type componentBase struct {
	name    string
	enabled bool
}

func (b *componentBase) Name() string {
	return b.name
}

func (b *componentBase) Enabled() bool {
	return b.enabled
}

func (b *componentBase) SetEnabled(enabled bool) {
	b.enabled = enabled
}

func (b *componentBase) Reset() {}

// actuatorBase carries the output clamping and first-order slew shared
// by all actuators. With SlewTime zero the output follows the target
// immediately.
type actuatorBase struct {
	componentBase
	output    float64
	target    float64
	outputMin float64
	outputMax float64
	slewTime  float64
}

func newActuatorBase(name string, outputMin, outputMax, slewTime float64) actuatorBase {
	return actuatorBase{
		componentBase: componentBase{name: name, enabled: true},
		output:        outputMin,
		target:        outputMin,
		outputMin:     outputMin,
		outputMax:     outputMax,
		slewTime:      slewTime,
	}
}

func (a *actuatorBase) Output() float64 {
	return a.output
}

func (a *actuatorBase) SetOutput(value float64) {
	if value < a.outputMin {
		value = a.outputMin
	}
	if value > a.outputMax {
		value = a.outputMax
	}
	a.target = value
	if a.slewTime <= 0 {
		a.output = value
	}
}

func (a *actuatorBase) Step(dt float64) {
	if a.slewTime <= 0 || dt <= 0 {
		a.output = a.target
		return
	}
	alpha := dt / (a.slewTime + dt)
	a.output += alpha * (a.target - a.output)
}

func (a *actuatorBase) Reset() {
	a.output = a.outputMin
	a.target = a.outputMin
}

// outputLimits applies the (0,1) default when both limits are zero.
func outputLimits(min, max float64) (float64, float64, error) {
	if min == 0.0 && max == 0.0 {
		return 0.0, 1.0, nil
	}
	if max <= min {
		return 0, 0, cloudgrow.ConfigurationError{
			Field:  "output-limits",
			Reason: "maximum must be greater than minimum",
		}
	}
	return min, max, nil
}
