package monitor

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sprintsync/sprintsync-api/internal/logger"
)

const mb = 1024 * 1024

// Usage is a snapshot of process memory, in megabytes.
type Usage struct {
	AllocMB     uint64 `json:"allocMB"`
	HeapInUseMB uint64 `json:"heapInUseMB"`
	HeapSysMB   uint64 `json:"heapSysMB"`
	SysMB       uint64 `json:"sysMB"`
	NumGC       uint32 `json:"numGC"`
	Goroutines  int    `json:"goroutines"`
}

// Check is the outcome of one sampling run.
type Check struct {
	Usage          Usage
	GrowthMB       int64
	HighUsage      bool
	PossibleLeak   bool
	RuntimeMinutes int
}

// Options configures a MemoryMonitor.
type Options struct {
	// Schedule is a cron spec such as "@every 30s".
	Schedule string
	// GrowthThresholdMB triggers a leak warning when heap in use grows past it.
	GrowthThresholdMB int
	// AlertThresholdMB triggers a high usage warning.
	AlertThresholdMB int
}

// MemoryMonitor samples runtime memory on a cron schedule and warns on
// high usage or sustained growth since start.
type MemoryMonitor struct {
	opts      Options
	logger    *logger.Logger
	readStats func(*runtime.MemStats)

	startTime time.Time
	startHeap uint64

	mu   sync.Mutex
	cron *cron.Cron
}

// NewMemoryMonitor records the baseline heap and returns an idle monitor.
func NewMemoryMonitor(opts Options, log *logger.Logger) *MemoryMonitor {
	m := &MemoryMonitor{
		opts:      opts,
		logger:    log.WithComponent("memory-monitor"),
		readStats: runtime.ReadMemStats,
		startTime: time.Now(),
	}
	m.startHeap = m.Usage().HeapInUseMB
	return m
}

// Usage reads the current memory statistics.
func (m *MemoryMonitor) Usage() Usage {
	var stats runtime.MemStats
	m.readStats(&stats)

	return Usage{
		AllocMB:     stats.Alloc / mb,
		HeapInUseMB: stats.HeapInuse / mb,
		HeapSysMB:   stats.HeapSys / mb,
		SysMB:       stats.Sys / mb,
		NumGC:       stats.NumGC,
		Goroutines:  runtime.NumGoroutine(),
	}
}

// Check samples memory once and logs the result.
func (m *MemoryMonitor) Check() Check {
	usage := m.Usage()
	runtimeMinutes := int(time.Since(m.startTime).Minutes())

	check := Check{
		Usage:          usage,
		GrowthMB:       int64(usage.HeapInUseMB) - int64(m.startHeap),
		RuntimeMinutes: runtimeMinutes,
	}
	check.HighUsage = usage.HeapInUseMB > uint64(m.opts.AlertThresholdMB)
	check.PossibleLeak = check.GrowthMB > int64(m.opts.GrowthThresholdMB)

	m.logger.Info("memory usage",
		slog.Uint64("alloc_mb", usage.AllocMB),
		slog.Uint64("heap_in_use_mb", usage.HeapInUseMB),
		slog.Uint64("sys_mb", usage.SysMB),
		slog.Int("goroutines", usage.Goroutines),
		slog.Int("runtime_minutes", runtimeMinutes),
		slog.Int("pid", os.Getpid()))

	if check.HighUsage {
		m.logger.Warn("high memory usage detected",
			slog.Uint64("heap_in_use_mb", usage.HeapInUseMB),
			slog.Int("threshold_mb", m.opts.AlertThresholdMB),
			slog.Int("runtime_minutes", runtimeMinutes))
	}

	if check.PossibleLeak {
		m.logger.Warn("potential memory leak detected",
			slog.Uint64("start_heap_mb", m.startHeap),
			slog.Uint64("current_heap_mb", usage.HeapInUseMB),
			slog.Int64("growth_mb", check.GrowthMB),
			slog.Int("runtime_minutes", runtimeMinutes))
	}

	return check
}

// Start schedules periodic checks and runs one immediately.
func (m *MemoryMonitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cron != nil {
		m.logger.Warn("memory monitor already running")
		return nil
	}

	c := cron.New(
		cron.WithLogger(cronLogger{m.logger}),
		cron.WithChain(cron.Recover(cronLogger{m.logger}), cron.SkipIfStillRunning(cronLogger{m.logger})),
	)

	if _, err := c.AddFunc(m.opts.Schedule, func() { m.Check() }); err != nil {
		return fmt.Errorf("invalid memory monitor schedule %q: %w", m.opts.Schedule, err)
	}

	m.logger.Info("starting memory monitor",
		slog.String("schedule", m.opts.Schedule),
		slog.Int("growth_threshold_mb", m.opts.GrowthThresholdMB),
		slog.Int("alert_threshold_mb", m.opts.AlertThresholdMB))

	m.cron = c
	c.Start()

	m.Check()
	return nil
}

// Stop cancels the schedule and waits for a running check to finish.
func (m *MemoryMonitor) Stop() {
	m.mu.Lock()
	c := m.cron
	m.cron = nil
	m.mu.Unlock()

	if c == nil {
		return
	}

	<-c.Stop().Done()
	m.logger.Info("memory monitor stopped")
}

// Running reports whether the schedule is active.
func (m *MemoryMonitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cron != nil
}

// Middleware adds memory headers to every response. Meant for development.
func (m *MemoryMonitor) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		usage := m.Usage()
		c.Header("X-Memory-Heap-Used", fmt.Sprintf("%dMB", usage.HeapInUseMB))
		c.Header("X-Memory-Sys", fmt.Sprintf("%dMB", usage.SysMB))
		c.Next()
	}
}

// cronLogger adapts the service logger to cron.Logger.
type cronLogger struct {
	logger *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
