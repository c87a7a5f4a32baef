package controllers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
)

// ScheduleEntry holds a time of day, in minutes since midnight, and the
// value the schedule takes at that time.
type ScheduleEntry struct {
	Minutes int
	Value   float64
}

// ScheduleMode selects whether the schedule drives another controller's
// setpoint or commands an actuator directly.
type ScheduleMode string

const (
	SetpointMode ScheduleMode = "setpoint"
	DirectMode   ScheduleMode = "direct"
)

// TimeAware is implemented by controllers that need the simulation clock.
// The engine feeds every TimeAware controller the current simulation time
// before its Compute call.
type TimeAware interface {
	SetSimulationTime(t time.Time)
}

// Schedule provides time-of-day values with optional linear interpolation
// between the entries, wrapping around midnight. It never reads the wall
// clock: the simulation drives it through SetSimulationTime.
type Schedule struct {
	controllerBase
	entries      []ScheduleEntry
	interpolate  bool
	mode         ScheduleMode
	defaultValue float64
	now          time.Time
}

type ScheduleArgs struct {
	Entries      map[string]float64 `yaml:"entries"`
	Step         bool               `yaml:"step"`
	Mode         ScheduleMode       `yaml:"mode"`
	DefaultValue float64            `yaml:"default"`
}

func NewSchedule(name string, args ScheduleArgs) (*Schedule, error) {
	mode := args.Mode
	if mode == "" {
		mode = SetpointMode
	}
	if mode != SetpointMode && mode != DirectMode {
		return nil, cloudgrow.ConfigurationError{
			Field:  name + ".mode",
			Reason: fmt.Sprintf("unknown mode '%s'", mode),
		}
	}
	res := &Schedule{
		controllerBase: controllerBase{name: name, enabled: true, setpoint: args.DefaultValue},
		interpolate:    args.Step == false,
		mode:           mode,
		defaultValue:   args.DefaultValue,
	}
	for timeStr, value := range args.Entries {
		if err := res.AddEntry(timeStr, value); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// AddEntry parses a "HH:MM" time of day and inserts it in order.
func (s *Schedule) AddEntry(timeStr string, value float64) error {
	parts := strings.Split(timeStr, ":")
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return cloudgrow.ConfigurationError{Field: s.name + ".entries", Reason: "invalid time '" + timeStr + "'"}
	}
	minute := 0
	if len(parts) > 1 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil {
			return cloudgrow.ConfigurationError{Field: s.name + ".entries", Reason: "invalid time '" + timeStr + "'"}
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return cloudgrow.ConfigurationError{Field: s.name + ".entries", Reason: "invalid time '" + timeStr + "'"}
	}
	s.entries = append(s.entries, ScheduleEntry{Minutes: hour*60 + minute, Value: value})
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Minutes < s.entries[j].Minutes
	})
	return nil
}

func (s *Schedule) Entries() []ScheduleEntry {
	return s.entries
}

func (s *Schedule) Mode() ScheduleMode {
	return s.mode
}

func (s *Schedule) SetSimulationTime(t time.Time) {
	s.now = t
}

// ValueAt evaluates the schedule at a time of day given in minutes since
// midnight, interpolating across midnight when the lookup falls before the
// first entry or after the last.
func (s *Schedule) ValueAt(currentMinutes int) float64 {
	if len(s.entries) == 0 {
		return s.defaultValue
	}

	var prev, next *ScheduleEntry
	for i := range s.entries {
		entry := &s.entries[i]
		if entry.Minutes <= currentMinutes {
			prev = entry
		}
		if entry.Minutes > currentMinutes && next == nil {
			next = entry
		}
	}
	if prev == nil {
		prev = &s.entries[len(s.entries)-1]
	}
	if next == nil {
		next = &s.entries[0]
	}

	if s.interpolate == false {
		return prev.Value
	}

	prevMinutes := prev.Minutes
	nextMinutes := next.Minutes
	if nextMinutes < prevMinutes {
		nextMinutes += 24 * 60
	}
	if currentMinutes < prevMinutes {
		currentMinutes += 24 * 60
	}
	if nextMinutes == prevMinutes {
		return prev.Value
	}

	fraction := float64(currentMinutes-prevMinutes) / float64(nextMinutes-prevMinutes)
	return prev.Value + fraction*(next.Value-prev.Value)
}

func (s *Schedule) Compute(processValue, dt float64) float64 {
	scheduled := s.ValueAt(s.now.Hour()*60 + s.now.Minute())
	if s.mode == SetpointMode {
		s.setpoint = scheduled
	}
	s.output = scheduled
	return s.output
}

func (s *Schedule) Reset() {
	s.setpoint = s.defaultValue
	s.output = s.defaultValue
	s.now = time.Time{}
}
