// Package core defines the execution contract shared by everything that a
// scheduler runs: blocks, time domains, and safety systems.
package core

import "github.com/sarchlab/unitflow/naming"

// A Runnable is executed once per cycle by the scheduler of its time domain.
//
// Run must not block and must finish within a bounded time, since the
// scheduler relies on it to keep the cycle budget. Running a Runnable more
// than once within the same cycle must not corrupt its state.
type Runnable interface {
	Run()
}

// RunnableFunc adapts an ordinary function to the Runnable interface.
type RunnableFunc func()

// Run calls f().
func (f RunnableFunc) Run() {
	f()
}

// NamedRunnable is a Runnable that can be identified by its name, such as a
// block.
type NamedRunnable interface {
	Runnable
	naming.Named
}
