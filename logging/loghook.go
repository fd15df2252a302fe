// Package logging provides hooks that write what happens in a time domain to
// a logger.
package logging

import (
	"log"

	"github.com/sarchlab/unitflow/hooking"
	"github.com/sarchlab/unitflow/naming"
	"github.com/sarchlab/unitflow/timedomain"
)

// LogHookBase provides the logger of all log hooks.
type LogHookBase struct {
	*log.Logger
}

// RunLogger is a hook that prints every run of a runnable in a time domain.
type RunLogger struct {
	LogHookBase
}

// NewRunLogger returns a new RunLogger that writes into the logger.
func NewRunLogger(logger *log.Logger) *RunLogger {
	h := new(RunLogger)
	h.Logger = logger

	return h
}

// Func writes the cycle, the domain, and the runnable into the logger.
func (h *RunLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != timedomain.HookPosAfterRun {
		return
	}

	domainName := nameOf(ctx.Domain)
	itemName := nameOf(ctx.Item)

	h.Printf("%d, %s, %s", ctx.Detail, domainName, itemName)
}

func nameOf(v any) string {
	named, ok := v.(naming.Named)
	if !ok {
		return "?"
	}

	return named.Name()
}
