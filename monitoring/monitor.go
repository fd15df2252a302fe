// Package monitoring serves the state of running time domains over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/unitflow/control"
	"github.com/sarchlab/unitflow/hooking"
	"github.com/sarchlab/unitflow/id"
	"github.com/sarchlab/unitflow/signal"
	"github.com/sarchlab/unitflow/timedomain"
)

// Monitor exposes the blocks of time domains to an HTTP client.
//
// The monitor is a hook of every registered domain. It holds its lock while
// a block runs, so that requests never observe a block in the middle of a
// run. The lock is released even if the block panics, because the domain
// invokes the after-run hooks before the panic continues. A domain that runs inside another registered domain must not be
// registered itself.
type Monitor struct {
	lock       sync.Mutex
	domains    []*timedomain.TimeDomain
	portNumber int

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// replaced by a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterDomain registers a time domain and all its blocks.
func (m *Monitor) RegisterDomain(d *timedomain.TimeDomain) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.domains = append(m.domains, d)
	d.AcceptHook(m)
}

// Func serializes block runs with the handling of requests.
func (m *Monitor) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case timedomain.HookPosBeforeRun:
		m.lock.Lock()
	case timedomain.HookPosAfterRun:
		m.lock.Unlock()
	}
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        id.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the handler of the monitoring API.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/domains", m.listDomains)
	r.HandleFunc("/api/blocks", m.listBlocks)
	r.HandleFunc("/api/block/{name}", m.blockDetails)
	r.HandleFunc("/api/signals/{name}", m.blockSignals)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	return r
}

// StartServer serves the monitoring API in the background and returns its
// URL.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring with %s\n", url)

	go func() {
		err := http.Serve(listener, m.Router())
		dieOnErr(err)
	}()

	return url, nil
}

// OpenInBrowser opens the block list of the monitor in the default browser.
func OpenInBrowser(url string) error {
	return browser.OpenURL(url + "/api/blocks")
}

type domainRsp struct {
	Name     string  `json:"name"`
	PeriodMS float64 `json:"period_ms"`
	Cycle    uint64  `json:"cycle"`
	Blocks   int     `json:"blocks"`
}

func (m *Monitor) listDomains(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	rsp := make([]domainRsp, 0, len(m.domains))
	for _, d := range m.domains {
		rsp = append(rsp, domainRsp{
			Name:     d.Name(),
			PeriodMS: float64(d.Period()) / float64(time.Millisecond),
			Cycle:    d.Cycle(),
			Blocks:   len(d.Runnables()),
		})
	}
	m.lock.Unlock()

	writeJSON(w, rsp)
}

func (m *Monitor) blocks() []control.Block {
	var blocks []control.Block

	for _, d := range m.domains {
		for _, r := range d.Runnables() {
			if b, ok := r.(control.Block); ok {
				blocks = append(blocks, b)
			}
		}
	}

	return blocks
}

func (m *Monitor) listBlocks(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	names := make([]string, 0)
	for _, b := range m.blocks() {
		names = append(names, b.Name())
	}
	m.lock.Unlock()

	writeJSON(w, names)
}

func (m *Monitor) findBlockOr404(
	w http.ResponseWriter,
	name string,
) control.Block {
	for _, b := range m.blocks() {
		if b.Name() == name {
			return b
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Block not found"))
	dieOnErr(err)

	return nil
}

func (m *Monitor) blockDetails(w http.ResponseWriter, r *http.Request) {
	m.lock.Lock()
	defer m.lock.Unlock()

	block := m.findBlockOr404(w, mux.Vars(r)["name"])
	if block == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(block)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type signalRsp struct {
	Port      string           `json:"port"`
	Unit      string           `json:"unit"`
	Value     any              `json:"value"`
	Timestamp signal.Timestamp `json:"timestamp"`
}

func (m *Monitor) blockSignals(w http.ResponseWriter, r *http.Request) {
	m.lock.Lock()

	block := m.findBlockOr404(w, mux.Vars(r)["name"])
	if block == nil {
		m.lock.Unlock()
		return
	}

	rsp := make([]signalRsp, 0)
	if lister, ok := block.(control.PortLister); ok {
		for _, p := range lister.Outputs() {
			sampler, ok := p.(signal.Sampler)
			if !ok {
				continue
			}

			v, ts := sampler.Sample()
			rsp = append(rsp, signalRsp{
				Port:      p.Name(),
				Unit:      p.Unit().String(),
				Value:     v,
				Timestamp: ts,
			})
		}
	}
	m.lock.Unlock()

	writeJSON(w, rsp)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
