// Package controllers implements the control algorithms driving the
// greenhouse actuators: PID, staged, hysteresis and schedule control. All
// controllers are deterministic state machines advanced by Compute.
package controllers

// Controller computes an actuator command from a measured process value
// and the elapsed step duration in seconds. Implementations keep internal
// state between calls and restore their construction-time state on Reset.
type Controller interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	Setpoint() float64
	SetSetpoint(setpoint float64)
	Compute(processValue, dt float64) float64
	Output() float64
	Reset()
}

type controllerBase struct {
	name     string
	enabled  bool
	setpoint float64
	output   float64
}

func (c *controllerBase) Name() string {
	return c.name
}

func (c *controllerBase) Enabled() bool {
	return c.enabled
}

func (c *controllerBase) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *controllerBase) Setpoint() float64 {
	return c.setpoint
}

func (c *controllerBase) SetSetpoint(setpoint float64) {
	c.setpoint = setpoint
}

func (c *controllerBase) Output() float64 {
	return c.output
}
