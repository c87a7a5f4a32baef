package controllers

import "sort"

// Stage pairs a process value threshold with the output commanded while it
// is the highest active stage.
type Stage struct {
	Threshold float64 `yaml:"threshold"`
	Output    float64 `yaml:"output"`
}

// Staged is a multi-stage on/off controller, used for fan staging or
// shade deployment. Once a stage is active, its threshold is lowered by
// the hysteresis so the stage does not cycle at the boundary.
type Staged struct {
	controllerBase
	stages       []Stage
	hysteresis   float64
	currentStage int
}

type StagedArgs struct {
	Stages     []Stage `yaml:"stages"`
	Hysteresis float64 `yaml:"hysteresis"`
}

func NewStaged(name string, args StagedArgs) *Staged {
	stages := make([]Stage, len(args.Stages))
	copy(stages, args.Stages)
	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].Threshold < stages[j].Threshold
	})
	hysteresis := args.Hysteresis
	if hysteresis == 0 {
		hysteresis = 0.5
	}
	return &Staged{
		controllerBase: controllerBase{name: name, enabled: true},
		stages:         stages,
		hysteresis:     hysteresis,
		currentStage:   -1,
	}
}

func (s *Staged) Stages() []Stage {
	return s.stages
}

// CurrentStage is the active stage index, -1 when none is active.
func (s *Staged) CurrentStage() int {
	return s.currentStage
}

func (s *Staged) Compute(processValue, dt float64) float64 {
	if len(s.stages) == 0 {
		return 0.0
	}

	newStage := -1
	for i, stage := range s.stages {
		threshold := stage.Threshold
		if s.currentStage >= i {
			threshold -= s.hysteresis
		}
		if processValue >= threshold {
			newStage = i
		}
	}
	s.currentStage = newStage

	if s.currentStage >= 0 {
		s.output = s.stages[s.currentStage].Output
	} else {
		s.output = 0.0
	}
	return s.output
}

func (s *Staged) Reset() {
	s.currentStage = -1
	s.output = 0.0
}
