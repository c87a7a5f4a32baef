package controllers

import "math"

// PIDArgs configures a PID controller. Zero gains disable the matching
// term. OutputMin and OutputMax default to [0,1] when both are zero.
type PIDArgs struct {
	Kp               float64 `yaml:"kp"`
	Ki               float64 `yaml:"ki"`
	Kd               float64 `yaml:"kd"`
	Setpoint         float64 `yaml:"setpoint"`
	OutputMin        float64 `yaml:"output-min"`
	OutputMax        float64 `yaml:"output-max"`
	DisableWindup    bool    `yaml:"disable-anti-windup"`
	DerivativeFilter float64 `yaml:"derivative-filter"`
	ReverseActing    bool    `yaml:"reverse-acting"`
}

// PID is a proportional-integral-derivative controller with integral
// anti-windup by back-calculation and a low-pass filtered derivative
// computed on the process value, which avoids derivative kick on setpoint
// changes.
type PID struct {
	controllerBase
	kp, ki, kd       float64
	outputMin        float64
	outputMax        float64
	antiWindup       bool
	derivativeFilter float64
	reverseActing    bool

	integral       float64
	lastDerivative float64
	lastPV         float64
	hasLastPV      bool
}

func NewPID(name string, args PIDArgs) *PID {
	if args.OutputMin == 0 && args.OutputMax == 0 {
		args.OutputMax = 1.0
	}
	return &PID{
		controllerBase:   controllerBase{name: name, enabled: true, setpoint: args.Setpoint},
		kp:               args.Kp,
		ki:               args.Ki,
		kd:               args.Kd,
		outputMin:        args.OutputMin,
		outputMax:        args.OutputMax,
		antiWindup:       args.DisableWindup == false,
		derivativeFilter: args.DerivativeFilter,
		reverseActing:    args.ReverseActing,
	}
}

func (p *PID) Integral() float64 {
	return p.integral
}

// SetIntegral overrides the integral term, used for bumpless transfer when
// switching control in or out.
func (p *PID) SetIntegral(value float64) {
	p.integral = value
}

func (p *PID) Compute(processValue, dt float64) float64 {
	if dt <= 0 {
		return p.output
	}

	err := p.setpoint - processValue
	if p.reverseActing {
		err = -err
	}

	pTerm := p.kp * err

	p.integral += err * dt
	iTerm := p.ki * p.integral

	if p.hasLastPV {
		dPV := -(processValue - p.lastPV) / dt
		if p.derivativeFilter > 0 {
			alpha := dt / (p.derivativeFilter + dt)
			p.lastDerivative = alpha*dPV + (1-alpha)*p.lastDerivative
		} else {
			p.lastDerivative = dPV
		}
	} else {
		p.lastDerivative = 0.0
	}
	dTerm := p.kd * p.lastDerivative

	output := pTerm + iTerm + dTerm
	clamped := math.Max(p.outputMin, math.Min(p.outputMax, output))

	// Back-calculate the integral so the unsaturated output sits exactly
	// on the limit.
	if p.antiWindup && p.ki != 0 && output != clamped {
		p.integral = (clamped - pTerm - dTerm) / p.ki
	}

	p.lastPV = processValue
	p.hasLastPV = true
	p.output = clamped
	return clamped
}

func (p *PID) Reset() {
	p.integral = 0.0
	p.lastDerivative = 0.0
	p.lastPV = 0.0
	p.hasLastPV = false
	p.output = 0.0
}

// TuneZieglerNichols applies classic Ziegler-Nichols gains from the
// ultimate gain and oscillation period.
func (p *PID) TuneZieglerNichols(ku, tu float64, kind string) {
	switch kind {
	case "p":
		p.kp, p.ki, p.kd = 0.5*ku, 0.0, 0.0
	case "pi":
		p.kp, p.ki, p.kd = 0.45*ku, 0.54*ku/tu, 0.0
	default:
		p.kp, p.ki, p.kd = 0.6*ku, 1.2*ku/tu, 0.075*ku*tu
	}
}
