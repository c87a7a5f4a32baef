package controllers

// Hysteresis is a bang-bang controller with a deadband of total width
// Hysteresis centered on the setpoint. In the default heating mode the
// output turns on below the lower threshold, in reverse acting (cooling)
// mode above the upper one.
type Hysteresis struct {
	controllerBase
	hysteresis    float64
	outputOn      float64
	outputOff     float64
	reverseActing bool
	isOn          bool
}

type HysteresisArgs struct {
	Setpoint      float64 `yaml:"setpoint"`
	Hysteresis    float64 `yaml:"hysteresis"`
	OutputOn      float64 `yaml:"output-on"`
	OutputOff     float64 `yaml:"output-off"`
	ReverseActing bool    `yaml:"reverse-acting"`
}

func NewHysteresis(name string, args HysteresisArgs) *Hysteresis {
	if args.OutputOn == 0 && args.OutputOff == 0 {
		args.OutputOn = 1.0
	}
	if args.Hysteresis == 0 {
		args.Hysteresis = 2.0
	}
	return &Hysteresis{
		controllerBase: controllerBase{
			name:     name,
			enabled:  true,
			setpoint: args.Setpoint,
			output:   args.OutputOff,
		},
		hysteresis:     args.Hysteresis,
		outputOn:       args.OutputOn,
		outputOff:      args.OutputOff,
		reverseActing:  args.ReverseActing,
	}
}

func (h *Hysteresis) UpperThreshold() float64 {
	return h.setpoint + h.hysteresis/2
}

func (h *Hysteresis) LowerThreshold() float64 {
	return h.setpoint - h.hysteresis/2
}

func (h *Hysteresis) IsOn() bool {
	return h.isOn
}

func (h *Hysteresis) Compute(processValue, dt float64) float64 {
	if h.reverseActing {
		if processValue > h.UpperThreshold() {
			h.isOn = true
		} else if processValue < h.LowerThreshold() {
			h.isOn = false
		}
	} else {
		if processValue < h.LowerThreshold() {
			h.isOn = true
		} else if processValue > h.UpperThreshold() {
			h.isOn = false
		}
	}

	if h.isOn {
		h.output = h.outputOn
	} else {
		h.output = h.outputOff
	}
	return h.output
}

func (h *Hysteresis) Reset() {
	h.isOn = false
	h.output = h.outputOff
}
