package engine

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
	"github.com/cloudgrow/cloudgrow/internal/physics"
)

// WeatherConditions describes the exterior boundary at a point in
// time.
type WeatherConditions struct {
	Time           time.Time
	Temperature    float64
	Humidity       float64
	SolarRadiation float64
	WindSpeed      float64
	WindDirection  float64
	CloudCover     float64
	Pressure       float64
}

//go:generate mockgen -source=weather.go -destination=mock_weather_test.go -package=engine

// WeatherSource provides the exterior boundary conditions for the
// simulation. Implementations must be deterministic: the same
// timestamp always yields the same conditions.
type WeatherSource interface {
	Conditions(t time.Time) (WeatherConditions, error)
}

// SyntheticWeatherArgs parameterizes the synthetic generator.
type SyntheticWeatherArgs struct {
	Latitude            float64 `yaml:"latitude"`
	TempMean            float64 `yaml:"temp-mean"`
	TempAmplitudeAnnual float64 `yaml:"temp-amplitude-annual"`
	TempAmplitudeDaily  float64 `yaml:"temp-amplitude-daily"`
	HumidityMean        float64 `yaml:"humidity-mean"`
	HumidityAmplitude   float64 `yaml:"humidity-amplitude"`
	SolarMax            float64 `yaml:"solar-max"`
	WindMean            float64 `yaml:"wind-mean"`
	WindStd             float64 `yaml:"wind-std"`
	CloudCoverMean      float64 `yaml:"cloud-cover-mean"`
}

func (a *SyntheticWeatherArgs) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain SyntheticWeatherArgs
	res := plain(DefaultSyntheticWeatherArgs())
	if err := unmarshal(&res); err != nil {
		return err
	}
	*a = SyntheticWeatherArgs(res)
	return nil
}

func DefaultSyntheticWeatherArgs() SyntheticWeatherArgs {
	return SyntheticWeatherArgs{
		Latitude:            37.0,
		TempMean:            15.0,
		TempAmplitudeAnnual: 12.0,
		TempAmplitudeDaily:  8.0,
		HumidityMean:        60.0,
		HumidityAmplitude:   20.0,
		SolarMax:            1000.0,
		WindMean:            2.5,
		WindStd:             1.5,
		CloudCoverMean:      0.3,
	}
}

// SyntheticWeatherSource generates plausible weather from sinusoidal
// annual and diurnal cycles. The coldest day falls in mid-January, the
// coldest hour near dawn and the warmest around 15:00. Solar radiation
// follows a bell between the computed sunrise and sunset. Wind varies
// pseudo-randomly but deterministically with the timestamp.
type SyntheticWeatherSource struct {
	args SyntheticWeatherArgs
}

func NewSyntheticWeatherSource(args SyntheticWeatherArgs) *SyntheticWeatherSource {
	if args == (SyntheticWeatherArgs{}) {
		args = DefaultSyntheticWeatherArgs()
	}
	return &SyntheticWeatherSource{args: args}
}

func (s *SyntheticWeatherSource) Conditions(t time.Time) (WeatherConditions, error) {
	day := physics.DayOfYear(t)
	hour := float64(t.Hour()) + float64(t.Minute())/60.0 + float64(t.Second())/3600.0

	annual := s.args.TempAmplitudeAnnual * math.Cos(2*math.Pi*float64(day-15)/365.0)
	daily := s.args.TempAmplitudeDaily * math.Cos(2*math.Pi*(hour-15.0)/24.0)
	temperature := s.args.TempMean - annual + daily

	sunrise, sunset := physics.SunriseSunset(s.args.Latitude, day)
	solar := 0.0
	if hour > sunrise && hour < sunset {
		dayProgress := (hour - sunrise) / (sunset - sunrise)
		cloudFactor := 1.0 - 0.75*s.args.CloudCoverMean
		solar = s.args.SolarMax * math.Sin(math.Pi*dayProgress) * cloudFactor
	}

	humidity := s.args.HumidityMean + s.args.HumidityAmplitude*math.Cos(2*math.Pi*(hour-15.0)/24.0)
	humidity = math.Max(20.0, math.Min(100.0, humidity))

	windDiurnal := 0.3 * math.Sin(2*math.Pi*(hour-6.0)/24.0)
	windNoise := math.Sin(float64(day)*0.1+hour*0.5) * s.args.WindStd * 0.5
	windSpeed := math.Max(0.0, s.args.WindMean*(1.0+windDiurnal)+windNoise)

	windDirection := math.Mod(180.0+90.0*math.Sin(float64(day)*0.05), 360.0)

	return WeatherConditions{
		Time:           t,
		Temperature:    temperature,
		Humidity:       humidity,
		SolarRadiation: math.Max(0.0, solar),
		WindSpeed:      windSpeed,
		WindDirection:  windDirection,
		CloudCover:     s.args.CloudCoverMean,
		Pressure:       physics.StandardPressure,
	}, nil
}

// CSVWeatherSource replays historical weather from a CSV file,
// interpolating linearly between records. Outside the recorded range
// the nearest record is held.
//
// Expected columns: timestamp (2006-01-02 15:04:05), temperature,
// humidity, solar_radiation, and optionally wind_speed,
// wind_direction, cloud_cover, pressure.
type CSVWeatherSource struct {
	records []WeatherConditions
}

func NewCSVWeatherSource(path string) (*CSVWeatherSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open weather file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse weather file '%s': %w", path, err)
	}
	if len(rows) < 2 {
		return nil, cloudgrow.ConfigurationError{
			Field:  "weather.file",
			Reason: fmt.Sprintf("'%s' contains no weather records", path),
		}
	}

	columns := map[string]int{}
	for i, name := range rows[0] {
		columns[name] = i
	}
	for _, required := range []string{"timestamp", "temperature", "humidity", "solar_radiation"} {
		if _, ok := columns[required]; ok == false {
			return nil, cloudgrow.ConfigurationError{
				Field:  "weather.file",
				Reason: fmt.Sprintf("'%s' is missing required column '%s'", path, required),
			}
		}
	}

	field := func(row []string, name string, fallback float64) (float64, error) {
		idx, ok := columns[name]
		if ok == false || idx >= len(row) {
			return fallback, nil
		}
		return strconv.ParseFloat(row[idx], 64)
	}

	res := &CSVWeatherSource{}
	for i, row := range rows[1:] {
		timestamp, err := time.Parse("2006-01-02 15:04:05", row[columns["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp on line %d of '%s': %w", i+2, path, err)
		}
		record := WeatherConditions{Time: timestamp}
		for _, column := range []struct {
			name     string
			fallback float64
			dest     *float64
		}{
			{"temperature", 20.0, &record.Temperature},
			{"humidity", 50.0, &record.Humidity},
			{"solar_radiation", 0.0, &record.SolarRadiation},
			{"wind_speed", 0.0, &record.WindSpeed},
			{"wind_direction", 180.0, &record.WindDirection},
			{"cloud_cover", 0.0, &record.CloudCover},
			{"pressure", physics.StandardPressure, &record.Pressure},
		} {
			value, err := field(row, column.name, column.fallback)
			if err != nil {
				return nil, fmt.Errorf("invalid %s on line %d of '%s': %w", column.name, i+2, path, err)
			}
			*column.dest = value
		}
		res.records = append(res.records, record)
	}

	sort.Slice(res.records, func(i, j int) bool {
		return res.records[i].Time.Before(res.records[j].Time)
	})
	for i := 1; i < len(res.records); i++ {
		if res.records[i].Time.Equal(res.records[i-1].Time) {
			return nil, cloudgrow.ConfigurationError{
				Field: "weather.file",
				Reason: fmt.Sprintf("'%s' has duplicate records for %s", path,
					res.records[i].Time.Format("2006-01-02 15:04:05")),
			}
		}
	}
	return res, nil
}

// TimeRange returns the first and last record timestamps.
func (s *CSVWeatherSource) TimeRange() (time.Time, time.Time) {
	return s.records[0].Time, s.records[len(s.records)-1].Time
}

// Len returns the number of loaded records.
func (s *CSVWeatherSource) Len() int {
	return len(s.records)
}

func (s *CSVWeatherSource) Conditions(t time.Time) (WeatherConditions, error) {
	if t.Before(s.records[0].Time) {
		res := s.records[0]
		res.Time = t
		return res, nil
	}
	last := s.records[len(s.records)-1]
	if t.After(last.Time) || t.Equal(last.Time) {
		res := last
		res.Time = t
		return res, nil
	}

	right := sort.Search(len(s.records), func(i int) bool {
		return s.records[i].Time.After(t)
	})
	a, b := s.records[right-1], s.records[right]

	span := b.Time.Sub(a.Time).Seconds()
	factor := t.Sub(a.Time).Seconds() / span
	lerp := func(x, y float64) float64 {
		return x + (y-x)*factor
	}
	return WeatherConditions{
		Time:           t,
		Temperature:    lerp(a.Temperature, b.Temperature),
		Humidity:       lerp(a.Humidity, b.Humidity),
		SolarRadiation: lerp(a.SolarRadiation, b.SolarRadiation),
		WindSpeed:      lerp(a.WindSpeed, b.WindSpeed),
		WindDirection:  lerp(a.WindDirection, b.WindDirection),
		CloudCover:     lerp(a.CloudCover, b.CloudCover),
		Pressure:       lerp(a.Pressure, b.Pressure),
	}, nil
}
