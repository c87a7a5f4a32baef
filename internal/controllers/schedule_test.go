package controllers

import (
	"time"

	. "gopkg.in/check.v1"
)

type ScheduleSuite struct{}

var _ = Suite(&ScheduleSuite{})

func dayTimeSchedule(c *C) *Schedule {
	sched, err := NewSchedule("day-night", ScheduleArgs{
		Entries: map[string]float64{
			"06:00": 18.0,
			"08:00": 24.0,
			"18:00": 22.0,
			"22:00": 16.0,
		},
	})
	c.Assert(err, IsNil)
	return sched
}

func (s *ScheduleSuite) TestEntriesAreSorted(c *C) {
	sched := dayTimeSchedule(c)
	entries := sched.Entries()
	c.Assert(entries, HasLen, 4)
	for i := 1; i < len(entries); i++ {
		c.Check(entries[i].Minutes > entries[i-1].Minutes, Equals, true)
	}
}

func (s *ScheduleSuite) TestExactEntryTimes(c *C) {
	sched := dayTimeSchedule(c)
	c.Check(sched.ValueAt(6*60), Equals, 18.0)
	c.Check(sched.ValueAt(8*60), Equals, 24.0)
	c.Check(sched.ValueAt(18*60), Equals, 22.0)
	c.Check(sched.ValueAt(22*60), Equals, 16.0)
}

func (s *ScheduleSuite) TestLinearInterpolation(c *C) {
	sched := dayTimeSchedule(c)
	// Halfway between 06:00 (18°) and 08:00 (24°).
	c.Check(sched.ValueAt(7*60), Equals, 21.0)
	// Quarter of the way between 08:00 (24°) and 18:00 (22°).
	c.Check(sched.ValueAt(10*60+30), Equals, 23.5)
}

func (s *ScheduleSuite) TestMidnightWraparound(c *C) {
	sched := dayTimeSchedule(c)
	// 02:00 sits halfway through the 22:00 (16°) to 06:00 (18°) segment.
	c.Check(sched.ValueAt(2*60), Equals, 17.0)
	// Just before the first entry, still on the overnight segment.
	c.Check(sched.ValueAt(0), Equals, 16.5)
	// Just after the last entry.
	c.Check(sched.ValueAt(23*60), Equals, 16.25)
}

func (s *ScheduleSuite) TestStepMode(c *C) {
	sched, err := NewSchedule("day-night", ScheduleArgs{
		Entries: map[string]float64{
			"06:00": 18.0,
			"18:00": 22.0,
		},
		Step: true,
	})
	c.Assert(err, IsNil)
	c.Check(sched.ValueAt(12*60), Equals, 18.0)
	c.Check(sched.ValueAt(19*60), Equals, 22.0)
	c.Check(sched.ValueAt(2*60), Equals, 22.0)
}

func (s *ScheduleSuite) TestEmptyScheduleUsesDefault(c *C) {
	sched, err := NewSchedule("empty", ScheduleArgs{DefaultValue: 20.0})
	c.Assert(err, IsNil)
	c.Check(sched.ValueAt(12*60), Equals, 20.0)
}

func (s *ScheduleSuite) TestComputeUsesSimulationTime(c *C) {
	sched := dayTimeSchedule(c)
	sched.SetSimulationTime(time.Date(2025, 7, 1, 7, 0, 0, 0, time.UTC))
	c.Check(sched.Compute(0.0, 1.0), Equals, 21.0)
	// Setpoint mode publishes the scheduled value as setpoint.
	c.Check(sched.Setpoint(), Equals, 21.0)

	sched.SetSimulationTime(time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC))
	c.Check(sched.Compute(0.0, 1.0), Equals, 24.0)
}

func (s *ScheduleSuite) TestDirectMode(c *C) {
	sched, err := NewSchedule("shade", ScheduleArgs{
		Entries: map[string]float64{
			"10:00": 0.0,
			"14:00": 1.0,
		},
		Mode:         DirectMode,
		DefaultValue: 0.0,
	})
	c.Assert(err, IsNil)
	sched.SetSimulationTime(time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	c.Check(sched.Compute(0.0, 1.0), Equals, 0.5)
	// Direct mode leaves the setpoint alone.
	c.Check(sched.Setpoint(), Equals, 0.0)
}

func (s *ScheduleSuite) TestInvalidEntries(c *C) {
	_, err := NewSchedule("bad", ScheduleArgs{
		Entries: map[string]float64{"25:00": 20.0},
	})
	c.Check(err, ErrorMatches, "invalid configuration for bad.entries: invalid time '25:00'")

	_, err = NewSchedule("bad", ScheduleArgs{
		Entries: map[string]float64{"twelve": 20.0},
	})
	c.Check(err, NotNil)

	_, err = NewSchedule("bad", ScheduleArgs{Mode: ScheduleMode("cron")})
	c.Check(err, ErrorMatches, "invalid configuration for bad.mode: unknown mode 'cron'")
}
