package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/loki-go/engine/logger"
)

// FrameStats supplies the frame rates the profiler reports. clock.Clock satisfies it.
type FrameStats interface {
	FPS() float64
	FixedFPS() float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	stats          FrameStats
	log            logger.Logger
	now            func() time.Time
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler reporting the rates of stats.
// Update interval defaults to 1 second and output goes to the default logger at INFO.
//
// Parameters:
//   - stats: the frame rate source
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(stats FrameStats, options ...ProfilerOption) *Profiler {
	p := &Profiler{
		stats:          stats,
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Default()
	}
	p.log = p.log.WithComponent("Profiler")
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, fixed-step FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.log.Infof("FPS: %.2f | Fixed FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		p.stats.FPS(), p.stats.FixedFPS(), allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(p *Profiler)

// WithInterval sets how often statistics are logged. Non-positive values are ignored.
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithLogger sets the logger statistics are written to.
func WithLogger(l logger.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.log = l
	}
}

// withNow replaces the wall clock used to measure the interval.
func withNow(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}
