// Package recording stores the signals produced by blocks into a SQLite
// database, so that runs can be analyzed offline.
package recording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/unitflow/control"
	"github.com/sarchlab/unitflow/hooking"
	"github.com/sarchlab/unitflow/signal"
	"github.com/sarchlab/unitflow/timedomain"
)

// Sample is the state of one output right after its block has run.
type Sample struct {
	Cycle     uint64
	Port      string
	Unit      string
	Timestamp signal.Timestamp
	Value     string
	Numeric   sql.NullFloat64
}

// SignalRecorder is a hook that samples every output of a block after the
// block has run in a time domain. Samples are buffered and written in
// batches.
type SignalRecorder struct {
	db        *sql.DB
	dbName    string
	batchSize int
	pending   []Sample
}

// NewSignalRecorder creates a recorder that writes into a new database file
// at path. A random name is used if path is empty. It fails if the file
// already exists. Buffered samples are flushed when the program exits
// through atexit.
func NewSignalRecorder(path string) (*SignalRecorder, error) {
	if path == "" {
		path = "unitflow_signals_" + xid.New().String() + ".sqlite3"
	}

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("file %s already exists", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	r, err := NewSignalRecorderWithDB(db)
	if err != nil {
		return nil, err
	}

	r.dbName = path

	return r, nil
}

// NewSignalRecorderWithDB creates a recorder that writes into an open
// database.
func NewSignalRecorderWithDB(db *sql.DB) (*SignalRecorder, error) {
	r := &SignalRecorder{
		db:        db,
		batchSize: 10000,
	}

	if err := r.createTable(); err != nil {
		return nil, err
	}

	atexit.Register(func() { _ = r.Flush() })

	return r, nil
}

func (r *SignalRecorder) createTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS signals (
		cycle      INTEGER NOT NULL,
		port       TEXT    NOT NULL,
		unit       TEXT    NOT NULL,
		timestamp  INTEGER NOT NULL,
		value      TEXT    NOT NULL,
		numeric    REAL
	)`)

	return err
}

// DBName returns the path of the database file, if the recorder created it.
func (r *SignalRecorder) DBName() string {
	return r.dbName
}

// SetBatchSize sets how many samples are buffered before they are written.
func (r *SignalRecorder) SetBatchSize(n int) {
	if n < 1 {
		panic("batch size must be positive")
	}

	r.batchSize = n
}

// Func samples the outputs of blocks that have just run.
func (r *SignalRecorder) Func(ctx hooking.HookCtx) {
	if ctx.Pos != timedomain.HookPosAfterRun {
		return
	}

	block, ok := ctx.Item.(control.PortLister)
	if !ok {
		return
	}

	cycle, _ := ctx.Detail.(uint64)

	for _, p := range block.Outputs() {
		sampler, ok := p.(signal.Sampler)
		if !ok {
			continue
		}

		r.pending = append(r.pending, makeSample(cycle, sampler))
	}

	if len(r.pending) >= r.batchSize {
		if err := r.Flush(); err != nil {
			panic(err)
		}
	}
}

func makeSample(cycle uint64, p signal.Sampler) Sample {
	v, ts := p.Sample()

	return Sample{
		Cycle:     cycle,
		Port:      signal.FullName(p),
		Unit:      p.Unit().String(),
		Timestamp: ts,
		Value:     fmt.Sprint(v),
		Numeric:   numericValue(v),
	}
}

func numericValue(v any) sql.NullFloat64 {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return sql.NullFloat64{Float64: float64(rv.Int()), Valid: true}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return sql.NullFloat64{Float64: float64(rv.Uint()), Valid: true}
	case reflect.Float32, reflect.Float64:
		return sql.NullFloat64{Float64: rv.Float(), Valid: true}
	case reflect.Bool:
		if rv.Bool() {
			return sql.NullFloat64{Float64: 1, Valid: true}
		}

		return sql.NullFloat64{Float64: 0, Valid: true}
	default:
		return sql.NullFloat64{}
	}
}

// Flush writes all buffered samples in one transaction.
func (r *SignalRecorder) Flush() error {
	if len(r.pending) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO signals
		(cycle, port, unit, timestamp, value, numeric)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, s := range r.pending {
		_, err = stmt.Exec(s.Cycle, s.Port, s.Unit, int64(s.Timestamp),
			s.Value, s.Numeric)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.pending = r.pending[:0]

	return nil
}

// Close flushes the buffered samples and closes the database.
func (r *SignalRecorder) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}

	return r.db.Close()
}
