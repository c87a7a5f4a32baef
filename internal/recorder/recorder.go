// Package recorder persists simulation telemetry. Recorders attach to
// the engine as telemetry sinks and store the climate trajectory for
// later analysis, either as a flat CSV file or in a SQLite database.
package recorder

import (
	"time"

	"github.com/cloudgrow/cloudgrow/internal/engine"
)

const timestampFormat = "2006-01-02 15:04:05"

// Record is one persisted climate sample.
type Record struct {
	Time                time.Time
	InteriorTemperature float64
	InteriorHumidity    float64
	InteriorCO2         float64
	ExteriorTemperature float64
	ExteriorHumidity    float64
	SolarRadiation      float64
	WindSpeed           float64
}

func recordFromEvent(event engine.Event) (Record, bool) {
	if event.Type != engine.EventStateUpdate {
		return Record{}, false
	}
	return Record{
		Time:                event.Time,
		InteriorTemperature: event.Data["interior_temperature"],
		InteriorHumidity:    event.Data["interior_humidity"],
		InteriorCO2:         event.Data["interior_co2"],
		ExteriorTemperature: event.Data["exterior_temperature"],
		ExteriorHumidity:    event.Data["exterior_humidity"],
		SolarRadiation:      event.Data["solar_radiation"],
		WindSpeed:           event.Data["wind_speed"],
	}, true
}
