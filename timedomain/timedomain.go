// Package timedomain groups runnables that are executed at the same period.
package timedomain

import (
	"fmt"
	"time"

	"github.com/sarchlab/unitflow/core"
	"github.com/sarchlab/unitflow/hooking"
	"github.com/sarchlab/unitflow/naming"
	"github.com/sarchlab/unitflow/signal"
)

// HookPosBeforeRun marks the moment before a runnable of the domain runs.
var HookPosBeforeRun = &hooking.HookPos{Name: "BeforeRun"}

// HookPosAfterRun marks the moment after a runnable of the domain has run.
var HookPosAfterRun = &hooking.HookPos{Name: "AfterRun"}

// A TimeDomain runs its runnables one after the other, in the order they were
// added. Producers must therefore be added before their consumers.
//
// Running a TimeDomain executes a single cycle. Calling Run at the period is
// the job of the caller; a TimeDomain neither sleeps nor measures time. A
// TimeDomain is itself a Runnable, so domains can be nested.
type TimeDomain struct {
	hooking.HookableBase

	name      string
	period    time.Duration
	cycle     uint64
	runnables []core.Runnable
}

// New creates a time domain. It panics if the name is invalid or the period
// is not positive.
func New(name string, period time.Duration) *TimeDomain {
	naming.MustBeValid(name)

	if period <= 0 {
		panic(fmt.Sprintf("period of time domain %s must be positive", name))
	}

	return &TimeDomain{
		name:   name,
		period: period,
	}
}

// Name returns the name of the time domain.
func (d *TimeDomain) Name() string {
	return d.name
}

// Period returns the time between two cycles.
func (d *TimeDomain) Period() time.Duration {
	return d.period
}

// Cycle returns the number of cycles started so far.
func (d *TimeDomain) Cycle() uint64 {
	return d.cycle
}

// Now returns the timestamp of the current cycle.
func (d *TimeDomain) Now() signal.Timestamp {
	return signal.Timestamp(d.cycle * uint64(d.period.Nanoseconds()))
}

// Add appends a runnable to the domain.
func (d *TimeDomain) Add(r core.Runnable) {
	if r == nil {
		panic("cannot add a nil runnable")
	}

	d.runnables = append(d.runnables, r)
}

// Runnables returns the runnables of the domain in execution order.
func (d *TimeDomain) Runnables() []core.Runnable {
	return d.runnables
}

// Run starts a new cycle and runs every runnable once. The hooks after a
// runnable are invoked even if it panics, before the panic continues.
func (d *TimeDomain) Run() {
	d.cycle++

	for _, r := range d.runnables {
		d.runOne(r)
	}
}

func (d *TimeDomain) runOne(r core.Runnable) {
	d.InvokeHook(hooking.HookCtx{
		Domain: d,
		Pos:    HookPosBeforeRun,
		Item:   r,
		Detail: d.cycle,
	})

	defer d.InvokeHook(hooking.HookCtx{
		Domain: d,
		Pos:    HookPosAfterRun,
		Item:   r,
		Detail: d.cycle,
	})

	r.Run()
}

// RunCycles runs n cycles back to back.
func (d *TimeDomain) RunCycles(n int) {
	for i := 0; i < n; i++ {
		d.Run()
	}
}
