package engine

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Telemetry event types emitted by the engine.
const (
	EventSimulationStart = "simulation.start"
	EventSimulationStop  = "simulation.stop"
	EventSimulationError = "simulation.error"
	EventStateUpdate     = "state.update"
)

// Event is one telemetry record. Data carries the numeric payload;
// for state updates it holds the interior and exterior snapshot.
type Event struct {
	Type    string
	Time    time.Time
	Source  string
	Message string
	Data    map[string]float64
}

// Sink consumes telemetry events. The engine publishes to every
// attached sink in order and never depends on what the sink does with
// the event.
type Sink interface {
	Publish(e Event)
}

// LogSink writes events to a logrus entry, one line per event with the
// payload as fields.
type LogSink struct {
	logger *logrus.Entry
}

func NewLogSink(logger *logrus.Entry) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(e Event) {
	fields := logrus.Fields{
		"time":   e.Time.Format(time.RFC3339),
		"source": e.Source,
	}
	for name, value := range e.Data {
		fields[name] = value
	}
	entry := s.logger.WithFields(fields)
	switch e.Type {
	case EventSimulationError:
		entry.Error(e.Message)
	case EventStateUpdate:
		entry.Debug(e.Message)
	default:
		entry.Info(e.Message)
	}
}
