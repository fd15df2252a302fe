// Package id generates identifiers for blocks.
package id

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator can generate IDs.
type Generator interface {
	Generate() string
}

// Mode selects how IDs are generated.
type Mode string

// Available modes.
const (
	// Sequential IDs are deterministic. They are numbers counting from 1.
	Sequential Mode = "sequential"

	// Parallel IDs are globally unique but not deterministic.
	Parallel Mode = "parallel"
)

var (
	mu           sync.Mutex
	generator    Generator
	instantiated atomic.Bool
)

// Use selects the generator mode. It panics if an ID has already been
// generated or if the mode is unknown.
func Use(mode Mode) {
	mu.Lock()
	defer mu.Unlock()

	if instantiated.Load() {
		log.Panic("cannot change id generator after using it")
	}

	switch mode {
	case Sequential:
		generator = &sequentialGenerator{}
	case Parallel:
		generator = parallelGenerator{}
	default:
		log.Panicf("unknown id generator mode %q", mode)
	}

	instantiated.Store(true)
}

// Generate returns a new ID from the selected generator. The sequential
// generator is used if none has been selected.
func Generate() string {
	if instantiated.Load() {
		return generator.Generate()
	}

	mu.Lock()
	if !instantiated.Load() {
		generator = &sequentialGenerator{}
		instantiated.Store(true)
	}
	mu.Unlock()

	return generator.Generate()
}

// NewGenerator returns a standalone generator of the given mode.
func NewGenerator(mode Mode) Generator {
	if mode == Parallel {
		return parallelGenerator{}
	}

	return &sequentialGenerator{}
}

type sequentialGenerator struct {
	nextID atomic.Uint64
}

func (g *sequentialGenerator) Generate() string {
	return strconv.FormatUint(g.nextID.Add(1), 10)
}

type parallelGenerator struct{}

func (parallelGenerator) Generate() string {
	return xid.New().String()
}
