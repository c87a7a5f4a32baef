package recorder

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cloudgrow/cloudgrow/internal/engine"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Store is the query surface of a persisted simulation run.
type Store interface {
	Close() error
	InsertRecord(record Record) error
	InsertBatch(records []Record) error
	RecordsInRange(start, end time.Time, limit int) ([]Record, error)
	LatestRecord() (*Record, error)
	DailyStats(start, end time.Time) ([]DailyStat, error)
	Count() (int64, error)
}

// Compile-time interface check
var _ Store = (*SQLiteRecorder)(nil)
var _ engine.Sink = (*SQLiteRecorder)(nil)

// DailyStat aggregates one simulated day.
type DailyStat struct {
	Date           time.Time
	MinTemperature float64
	MaxTemperature float64
	AvgTemperature float64
	MinHumidity    float64
	MaxHumidity    float64
	AvgHumidity    float64
	RecordCount    int
}

// SQLiteRecorder stores climate records in a SQLite database. As a
// telemetry sink it batches inserts: records accumulate in memory and
// are committed in a single transaction every batchSize updates and on
// Close.
type SQLiteRecorder struct {
	db      *sql.DB
	run     string
	pending []Record
	batch   int
	logger  *logrus.Entry
}

const defaultBatchSize = 256

// NewSQLiteRecorder opens or creates the database at path and migrates
// the schema. The run name distinguishes scenarios sharing a database.
func NewSQLiteRecorder(path, run string, logger *logrus.Entry) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database '%s': %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not open database '%s': %w", path, err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("could not set %s: %w", pragma, err)
		}
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	res := &SQLiteRecorder{
		db:     db,
		run:    run,
		batch:  defaultBatchSize,
		logger: logger.WithField("group", "recorder"),
	}
	if err := res.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	res.logger.WithField("path", path).Info("sqlite recorder initialized")
	return res, nil
}

func (r *SQLiteRecorder) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS climate_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run TEXT NOT NULL,
	recorded_at DATETIME NOT NULL,
	interior_temperature REAL NOT NULL,
	interior_humidity REAL NOT NULL,
	interior_co2 REAL NOT NULL,
	exterior_temperature REAL NOT NULL,
	exterior_humidity REAL NOT NULL,
	solar_radiation REAL NOT NULL,
	wind_speed REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_climate_run_time ON climate_records(run, recorded_at);
`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}
	return nil
}

// Publish implements engine.Sink.
func (r *SQLiteRecorder) Publish(event engine.Event) {
	record, ok := recordFromEvent(event)
	if ok == false {
		return
	}
	r.pending = append(r.pending, record)
	if len(r.pending) < r.batch {
		return
	}
	if err := r.Flush(); err != nil {
		r.logger.WithError(err).Error("could not flush records")
	}
}

// Flush commits all pending records.
func (r *SQLiteRecorder) Flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	err := r.InsertBatch(r.pending)
	if err != nil {
		return err
	}
	r.pending = r.pending[:0]
	return nil
}

func (r *SQLiteRecorder) InsertRecord(record Record) error {
	_, err := r.db.Exec(`
INSERT INTO climate_records (run, recorded_at, interior_temperature, interior_humidity,
	interior_co2, exterior_temperature, exterior_humidity, solar_radiation, wind_speed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		r.run,
		record.Time.Format(timestampFormat),
		record.InteriorTemperature,
		record.InteriorHumidity,
		record.InteriorCO2,
		record.ExteriorTemperature,
		record.ExteriorHumidity,
		record.SolarRadiation,
		record.WindSpeed,
	)
	if err != nil {
		return fmt.Errorf("could not insert record: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) InsertBatch(records []Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
INSERT INTO climate_records (run, recorded_at, interior_temperature, interior_humidity,
	interior_co2, exterior_temperature, exterior_humidity, solar_radiation, wind_speed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.Exec(
			r.run,
			record.Time.Format(timestampFormat),
			record.InteriorTemperature,
			record.InteriorHumidity,
			record.InteriorCO2,
			record.ExteriorTemperature,
			record.ExteriorHumidity,
			record.SolarRadiation,
			record.WindSpeed,
		)
		if err != nil {
			return fmt.Errorf("could not insert record in batch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	r.logger.WithField("count", len(records)).Debug("batch committed")
	return nil
}

func (r *SQLiteRecorder) RecordsInRange(start, end time.Time, limit int) ([]Record, error) {
	rows, err := r.db.Query(`
SELECT recorded_at, interior_temperature, interior_humidity, interior_co2,
	exterior_temperature, exterior_humidity, solar_radiation, wind_speed
FROM climate_records
WHERE run = ? AND recorded_at BETWEEN ? AND ?
ORDER BY recorded_at ASC
LIMIT ?
`,
		r.run,
		start.Format(timestampFormat),
		end.Format(timestampFormat),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query records: %w", err)
	}
	defer rows.Close()

	var res []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, record)
	}
	return res, rows.Err()
}

func (r *SQLiteRecorder) LatestRecord() (*Record, error) {
	row := r.db.QueryRow(`
SELECT recorded_at, interior_temperature, interior_humidity, interior_co2,
	exterior_temperature, exterior_humidity, solar_radiation, wind_speed
FROM climate_records
WHERE run = ?
ORDER BY recorded_at DESC
LIMIT 1
`, r.run)
	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *SQLiteRecorder) DailyStats(start, end time.Time) ([]DailyStat, error) {
	rows, err := r.db.Query(`
SELECT date(recorded_at),
	MIN(interior_temperature), MAX(interior_temperature), AVG(interior_temperature),
	MIN(interior_humidity), MAX(interior_humidity), AVG(interior_humidity),
	COUNT(*)
FROM climate_records
WHERE run = ? AND recorded_at BETWEEN ? AND ?
GROUP BY date(recorded_at)
ORDER BY date(recorded_at) ASC
`,
		r.run,
		start.Format(timestampFormat),
		end.Format(timestampFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("could not query daily stats: %w", err)
	}
	defer rows.Close()

	var res []DailyStat
	for rows.Next() {
		var stat DailyStat
		var date string
		err := rows.Scan(&date,
			&stat.MinTemperature, &stat.MaxTemperature, &stat.AvgTemperature,
			&stat.MinHumidity, &stat.MaxHumidity, &stat.AvgHumidity,
			&stat.RecordCount)
		if err != nil {
			return nil, fmt.Errorf("could not scan daily stat: %w", err)
		}
		stat.Date, err = time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("could not parse date '%s': %w", date, err)
		}
		res = append(res, stat)
	}
	return res, rows.Err()
}

func (r *SQLiteRecorder) Count() (int64, error) {
	var res int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM climate_records WHERE run = ?", r.run).Scan(&res)
	if err != nil {
		return 0, fmt.Errorf("could not count records: %w", err)
	}
	return res, nil
}

// Close flushes pending records and closes the database.
func (r *SQLiteRecorder) Close() error {
	flushErr := r.Flush()
	closeErr := r.db.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func scanRecord(row interface{ Scan(...interface{}) error }) (Record, error) {
	var record Record
	var recordedAt string
	err := row.Scan(&recordedAt,
		&record.InteriorTemperature, &record.InteriorHumidity, &record.InteriorCO2,
		&record.ExteriorTemperature, &record.ExteriorHumidity,
		&record.SolarRadiation, &record.WindSpeed)
	if err != nil {
		return Record{}, err
	}
	record.Time, err = time.Parse(timestampFormat, recordedAt)
	if err != nil {
		return Record{}, fmt.Errorf("could not parse timestamp '%s': %w", recordedAt, err)
	}
	return record, nil
}
