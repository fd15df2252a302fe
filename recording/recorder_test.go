package recording

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/unitflow/control"
	"github.com/sarchlab/unitflow/core"
	"github.com/sarchlab/unitflow/si"
	"github.com/sarchlab/unitflow/timedomain"
)

var _ = Describe("SignalRecorder", func() {
	var (
		dir      string
		recorder *SignalRecorder
		domain   *timedomain.TimeDomain
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()

		var err error
		recorder, err = NewSignalRecorder(filepath.Join(dir, "signals.sqlite3"))
		Expect(err).NotTo(HaveOccurred())

		domain = timedomain.New("Main", time.Millisecond)

		out := control.SingleOutput[float64](si.Newton)
		source := control.New("Source", control.None(), out,
			control.WithAlgorithm(func() {
				out.Port().Signal().Set(float64(domain.Cycle())*1.5, domain.Now())
			}))

		mode := control.OutputTuple[string](si.Dimensionless, si.Radian)
		labels := control.New("Labels", control.None(), mode,
			control.WithAlgorithm(func() {
				mode.Get(0).Signal().Set("on", domain.Now())
			}))

		domain.Add(source)
		domain.Add(labels)
		domain.Add(core.RunnableFunc(func() {}))
		domain.AcceptHook(recorder)
	})

	AfterEach(func() {
		Expect(recorder.Close()).To(Succeed())
	})

	count := func(db *sql.DB, query string, args ...any) int {
		var n int
		Expect(db.QueryRow(query, args...).Scan(&n)).To(Succeed())
		return n
	}

	It("should record every output after every run", func() {
		domain.RunCycles(3)
		Expect(recorder.Flush()).To(Succeed())

		db := recorder.db
		Expect(count(db, "SELECT COUNT(*) FROM signals")).To(Equal(9))
		Expect(count(db,
			"SELECT COUNT(*) FROM signals WHERE port = ?", "Labels.Out[1]")).
			To(Equal(3))

		var value float64
		var unit string
		var ts int64
		Expect(db.QueryRow(
			"SELECT numeric, unit, timestamp FROM signals WHERE port = ? AND cycle = ?",
			"Source.Out", 2).Scan(&value, &unit, &ts)).To(Succeed())
		Expect(value).To(Equal(3.0))
		Expect(unit).To(Equal("m·kg·s^-2"))
		Expect(ts).To(Equal(int64(2e6)))

		Expect(count(db,
			"SELECT COUNT(*) FROM signals WHERE numeric IS NULL")).To(Equal(6))
	})

	It("should write when the batch is full", func() {
		recorder.SetBatchSize(3)

		domain.RunCycles(1)

		Expect(recorder.pending).To(BeEmpty())
		Expect(count(recorder.db, "SELECT COUNT(*) FROM signals")).To(Equal(3))
	})

	It("should not overwrite an existing file", func() {
		path := filepath.Join(dir, "existing.sqlite3")
		Expect(os.WriteFile(path, nil, 0o600)).To(Succeed())

		_, err := NewSignalRecorder(path)

		Expect(err).To(HaveOccurred())
	})

	It("should report the database name", func() {
		Expect(recorder.DBName()).To(Equal(filepath.Join(dir, "signals.sqlite3")))
	})
})
