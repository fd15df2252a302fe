package cmd

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/unitflow/config"
	"github.com/sarchlab/unitflow/control"
	"github.com/sarchlab/unitflow/logging"
	"github.com/sarchlab/unitflow/monitoring"
	"github.com/sarchlab/unitflow/recording"
	"github.com/sarchlab/unitflow/si"
	"github.com/sarchlab/unitflow/signal"
	"github.com/sarchlab/unitflow/timedomain"
)

func newDemoCmd(cfg config.Config) *cobra.Command {
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a block diagram that computes electrical power.",
		Long: "`demo` splits a supply vector into a voltage and a current " +
			"and multiplies them into a power. Logging, recording, and " +
			"monitoring follow the UNITFLOW_* settings.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cycles, _ := cmd.Flags().GetInt("cycles")
			period, _ := cmd.Flags().GetDuration("period")
			realtime, _ := cmd.Flags().GetBool("realtime")
			open, _ := cmd.Flags().GetBool("open")

			if cycles < 1 {
				return fmt.Errorf("cycles must be positive, got %d", cycles)
			}

			if period <= 0 {
				return fmt.Errorf("period must be positive, got %s", period)
			}

			d := demo{
				cfg:      cfg,
				out:      cmd.OutOrStdout(),
				errOut:   cmd.ErrOrStderr(),
				cycles:   cycles,
				period:   period,
				realtime: realtime,
				open:     open,
			}

			return d.run()
		},
	}

	demoCmd.Flags().Int("cycles", 3, "The number of cycles to run")
	demoCmd.Flags().Duration("period", time.Millisecond,
		"The period of the time domain")
	demoCmd.Flags().Bool("realtime", false,
		"Wait for the period between two cycles")
	demoCmd.Flags().Bool("open", false,
		"Open the monitoring server in the browser")

	return demoCmd
}

type demo struct {
	cfg      config.Config
	out      io.Writer
	errOut   io.Writer
	cycles   int
	period   time.Duration
	realtime bool
	open     bool

	domain *timedomain.TimeDomain
	split  *control.DeMux[float64]
	power  *control.Mul[float64]
}

func (d *demo) build() error {
	d.domain = timedomain.New("Main", d.period)

	supplyOut := control.SingleOutput[[]float64](si.Dimensionless)
	supply := control.New("Supply", control.None(), supplyOut,
		control.WithAlgorithm(func() {
			current := 0.5 * float64(d.domain.Cycle())
			supplyOut.Port().Signal().Set(
				[]float64{12, current}, d.domain.Now())
		}))

	d.split = control.MakeDeMuxBuilder[float64](2).
		WithOutputUnits(si.Volt, si.Ampere).
		Build("Split")

	d.power = control.MakeMulBuilder[float64]().
		WithInputUnits(si.Volt, si.Ampere).
		WithOutputUnit(si.Watt).
		Build("Power")

	if err := d.split.In().Port().Connect(supplyOut.Port()); err != nil {
		return err
	}

	if err := d.power.In1().Connect(d.split.Out().Get(0)); err != nil {
		return err
	}

	if err := d.power.In2().Connect(d.split.Out().Get(1)); err != nil {
		return err
	}

	d.domain.Add(supply)
	d.domain.Add(d.split)
	d.domain.Add(d.power)

	return nil
}

func (d *demo) run() error {
	if err := d.build(); err != nil {
		return err
	}

	if d.cfg.Log {
		d.domain.AcceptHook(logging.NewRunLogger(log.New(d.errOut, "", 0)))
	}

	var recorder *recording.SignalRecorder
	if d.cfg.RecordDB != "" {
		var err error
		recorder, err = recording.NewSignalRecorder(d.cfg.RecordDB)
		if err != nil {
			return err
		}

		d.domain.AcceptHook(recorder)
	}

	var (
		monitor *monitoring.Monitor
		bar     *monitoring.ProgressBar
	)
	if d.cfg.MonitorPort != 0 {
		monitor = monitoring.NewMonitor().WithPortNumber(d.cfg.MonitorPort)
		monitor.RegisterDomain(d.domain)

		url, err := monitor.StartServer()
		if err != nil {
			return err
		}

		if d.open {
			if err := monitoring.OpenInBrowser(url); err != nil {
				fmt.Fprintf(d.errOut, "Failed to open browser: %v\n", err)
			}
		}

		bar = monitor.CreateProgressBar("Demo", uint64(d.cycles))
	}

	for _, r := range d.domain.Runnables() {
		fmt.Fprintln(d.out, r)
	}

	var ticker *time.Ticker
	if d.realtime {
		ticker = time.NewTicker(d.period)
		defer ticker.Stop()
	}

	for i := 0; i < d.cycles; i++ {
		if ticker != nil {
			<-ticker.C
		}

		d.domain.Run()
		d.report()

		if bar != nil {
			bar.IncrementFinished(1)
		}
	}

	if monitor != nil {
		monitor.CompleteProgressBar(bar)
	}

	if recorder != nil {
		if err := recorder.Close(); err != nil {
			return err
		}

		fmt.Fprintf(d.errOut, "Signals recorded into %s\n", recorder.DBName())
	}

	return nil
}

func (d *demo) report() {
	u := d.split.Out().Get(0).Signal()
	i := d.split.Out().Get(1).Signal()
	p := d.power.Out().Port().Signal()

	fmt.Fprintf(d.out, "%s  U=%g V  I=%g A  P=%g W\n",
		durationOf(p.Timestamp()), u.Value(), i.Value(), p.Value())
}

func durationOf(ts signal.Timestamp) time.Duration {
	return time.Duration(ts)
}
