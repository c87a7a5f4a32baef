package recorder

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/cloudgrow/cloudgrow/internal/cloudgrow"
	"github.com/cloudgrow/cloudgrow/internal/engine"
)

// CSVRecorder streams state updates to a CSV file through a buffered
// channel, so the simulation loop never blocks on disk. Close drains
// the queue and flushes the file.
type CSVRecorder struct {
	file   *os.File
	writer *csv.Writer
	queue  chan Record
	done   chan struct{}
}

// NewCSVRecorder opens filename for writing, appending a numeric
// suffix rather than overwriting an existing file. It returns the
// actual filename used.
func NewCSVRecorder(filename string) (*CSVRecorder, string, error) {
	file, fname, err := cloudgrow.CreateFileWithoutOverwrite(filename)
	if err != nil {
		return nil, "", err
	}
	res := &CSVRecorder{
		file:   file,
		writer: csv.NewWriter(file),
		queue:  make(chan Record, 64),
		done:   make(chan struct{}),
	}
	res.writer.Write([]string{
		"timestamp",
		"interior_temperature",
		"interior_humidity",
		"interior_co2",
		"exterior_temperature",
		"exterior_humidity",
		"solar_radiation",
		"wind_speed",
	})
	go res.write()
	return res, fname, nil
}

func (r *CSVRecorder) write() {
	defer close(r.done)
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
	for record := range r.queue {
		r.writer.Write([]string{
			record.Time.Format(timestampFormat),
			format(record.InteriorTemperature),
			format(record.InteriorHumidity),
			format(record.InteriorCO2),
			format(record.ExteriorTemperature),
			format(record.ExteriorHumidity),
			format(record.SolarRadiation),
			format(record.WindSpeed),
		})
	}
	r.writer.Flush()
}

// Publish implements engine.Sink.
func (r *CSVRecorder) Publish(event engine.Event) {
	record, ok := recordFromEvent(event)
	if ok == false {
		return
	}
	r.queue <- record
}

// Close stops the writer goroutine and closes the file. The recorder
// must not be published to afterwards.
func (r *CSVRecorder) Close() error {
	close(r.queue)
	<-r.done
	if err := r.writer.Error(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
