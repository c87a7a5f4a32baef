package engine

import (
	"io/ioutil"
	"path/filepath"
	"time"

	. "gopkg.in/check.v1"
)

type WeatherSuite struct {
	csvPath string
}

var _ = Suite(&WeatherSuite{})

func (s *WeatherSuite) SetUpSuite(c *C) {
	content := `timestamp,temperature,humidity,solar_radiation,wind_speed
2026-06-01 00:00:00,15.0,80.0,0.0,1.0
2026-06-01 06:00:00,18.0,70.0,100.0,2.0
2026-06-01 12:00:00,28.0,50.0,800.0,4.0
2026-06-01 18:00:00,22.0,60.0,150.0,3.0
`
	s.csvPath = filepath.Join(c.MkDir(), "weather.csv")
	err := ioutil.WriteFile(s.csvPath, []byte(content), 0644)
	c.Assert(err, IsNil)
}

func (s *WeatherSuite) TestSyntheticIsDeterministic(c *C) {
	source := NewSyntheticWeatherSource(DefaultSyntheticWeatherArgs())
	at := time.Date(2026, 7, 14, 13, 30, 0, 0, time.UTC)

	a, err := source.Conditions(at)
	c.Assert(err, IsNil)
	b, err := source.Conditions(at)
	c.Assert(err, IsNil)
	c.Check(a, DeepEquals, b)
}

func (s *WeatherSuite) TestSyntheticDayNightCycle(c *C) {
	source := NewSyntheticWeatherSource(DefaultSyntheticWeatherArgs())

	night, err := source.Conditions(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	c.Assert(err, IsNil)
	noon, err := source.Conditions(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC))
	c.Assert(err, IsNil)

	c.Check(night.SolarRadiation, Equals, 0.0)
	c.Check(noon.SolarRadiation > 0.0, Equals, true)
	c.Check(noon.Temperature > night.Temperature, Equals, true)
}

func (s *WeatherSuite) TestSyntheticSeasonalCycle(c *C) {
	source := NewSyntheticWeatherSource(DefaultSyntheticWeatherArgs())

	winter, err := source.Conditions(time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC))
	c.Assert(err, IsNil)
	summer, err := source.Conditions(time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC))
	c.Assert(err, IsNil)

	c.Check(summer.Temperature > winter.Temperature, Equals, true)
}

func (s *WeatherSuite) TestSyntheticBounds(c *C) {
	source := NewSyntheticWeatherSource(DefaultSyntheticWeatherArgs())
	for hour := 0; hour < 24; hour++ {
		conditions, err := source.Conditions(time.Date(2026, 4, 10, hour, 0, 0, 0, time.UTC))
		c.Assert(err, IsNil)
		c.Check(conditions.Humidity >= 20.0, Equals, true)
		c.Check(conditions.Humidity <= 100.0, Equals, true)
		c.Check(conditions.SolarRadiation >= 0.0, Equals, true)
		c.Check(conditions.WindSpeed >= 0.0, Equals, true)
		c.Check(conditions.CloudCover, Equals, 0.3)
	}
}

func (s *WeatherSuite) TestCSVLoading(c *C) {
	source, err := NewCSVWeatherSource(s.csvPath)
	c.Assert(err, IsNil)
	c.Check(source.Len(), Equals, 4)

	first, last := source.TimeRange()
	c.Check(first, Equals, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	c.Check(last, Equals, time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC))
}

func (s *WeatherSuite) TestCSVExactRecord(c *C) {
	source, err := NewCSVWeatherSource(s.csvPath)
	c.Assert(err, IsNil)

	conditions, err := source.Conditions(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	c.Assert(err, IsNil)
	c.Check(conditions.Temperature, Equals, 28.0)
	c.Check(conditions.Humidity, Equals, 50.0)
	c.Check(conditions.SolarRadiation, Equals, 800.0)
}

func (s *WeatherSuite) TestCSVInterpolation(c *C) {
	source, err := NewCSVWeatherSource(s.csvPath)
	c.Assert(err, IsNil)

	conditions, err := source.Conditions(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	c.Assert(err, IsNil)
	c.Check(conditions.Temperature, Equals, 23.0)
	c.Check(conditions.Humidity, Equals, 60.0)
	c.Check(conditions.SolarRadiation, Equals, 450.0)
	c.Check(conditions.WindSpeed, Equals, 3.0)
}

func (s *WeatherSuite) TestCSVClampsOutsideRange(c *C) {
	source, err := NewCSVWeatherSource(s.csvPath)
	c.Assert(err, IsNil)

	before, err := source.Conditions(time.Date(2026, 5, 31, 12, 0, 0, 0, time.UTC))
	c.Assert(err, IsNil)
	c.Check(before.Temperature, Equals, 15.0)
	c.Check(before.Time, Equals, time.Date(2026, 5, 31, 12, 0, 0, 0, time.UTC))

	after, err := source.Conditions(time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC))
	c.Assert(err, IsNil)
	c.Check(after.Temperature, Equals, 22.0)
}

func (s *WeatherSuite) TestCSVDefaults(c *C) {
	source, err := NewCSVWeatherSource(s.csvPath)
	c.Assert(err, IsNil)

	conditions, err := source.Conditions(time.Date(2026, 6, 1, 6, 0, 0, 0, time.UTC))
	c.Assert(err, IsNil)
	c.Check(conditions.WindDirection, Equals, 180.0)
	c.Check(conditions.Pressure, Equals, 101325.0)
	c.Check(conditions.CloudCover, Equals, 0.0)
}

func (s *WeatherSuite) TestCSVErrors(c *C) {
	dir := c.MkDir()

	missing := filepath.Join(dir, "missing-column.csv")
	err := ioutil.WriteFile(missing, []byte("timestamp,temperature\n2026-06-01 00:00:00,15.0\n2026-06-01 01:00:00,16.0\n"), 0644)
	c.Assert(err, IsNil)
	_, err = NewCSVWeatherSource(missing)
	c.Check(err, ErrorMatches, ".*missing required column 'humidity'.*")

	empty := filepath.Join(dir, "empty.csv")
	err = ioutil.WriteFile(empty, []byte("timestamp,temperature,humidity,solar_radiation\n"), 0644)
	c.Assert(err, IsNil)
	_, err = NewCSVWeatherSource(empty)
	c.Check(err, ErrorMatches, ".*contains no weather records.*")

	badTime := filepath.Join(dir, "bad-time.csv")
	err = ioutil.WriteFile(badTime, []byte("timestamp,temperature,humidity,solar_radiation\nnot-a-time,15.0,80.0,0.0\n2026-06-01 00:00:00,15.0,80.0,0.0\n"), 0644)
	c.Assert(err, IsNil)
	_, err = NewCSVWeatherSource(badTime)
	c.Check(err, ErrorMatches, "invalid timestamp on line 2 of .*")

	_, err = NewCSVWeatherSource(filepath.Join(dir, "does-not-exist.csv"))
	c.Check(err, ErrorMatches, "could not open weather file: .*")
}

func (s *WeatherSuite) TestCSVRejectsDuplicateTimestamps(c *C) {
	duplicated := filepath.Join(c.MkDir(), "duplicated.csv")
	content := `timestamp,temperature,humidity,solar_radiation
2026-06-01 00:00:00,15.0,80.0,0.0
2026-06-01 01:00:00,16.0,78.0,0.0
2026-06-01 01:00:00,16.5,77.0,0.0
`
	err := ioutil.WriteFile(duplicated, []byte(content), 0644)
	c.Assert(err, IsNil)

	_, err = NewCSVWeatherSource(duplicated)
	c.Check(err, ErrorMatches, ".*has duplicate records for 2026-06-01 01:00:00")
}
