package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Collector accumulates per-request counters served by the /metrics endpoint.
type Collector struct {
	mu            sync.RWMutex
	startTime     time.Time
	requestCount  int64
	errorCount    int64
	active        int64
	totalDuration time.Duration
	lastRequest   time.Time
	statusCodes   map[string]int64
	endpoints     map[string]int64
}

func NewCollector() *Collector {
	return &Collector{
		startTime:   time.Now(),
		statusCodes: make(map[string]int64),
		endpoints:   make(map[string]int64),
	}
}

type Snapshot struct {
	RequestCount   int64            `json:"request_count"`
	ErrorCount     int64            `json:"error_count"`
	ActiveRequests int64            `json:"active_requests"`
	AvgDurationMs  float64          `json:"avg_request_duration_ms"`
	StatusCodes    map[string]int64 `json:"status_codes"`
	Endpoints      map[string]int64 `json:"endpoint_calls"`
	StartTime      time.Time        `json:"start_time"`
	LastRequest    time.Time        `json:"last_request"`
}

func (col *Collector) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		col.mu.Lock()
		col.active++
		col.mu.Unlock()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		endpoint := c.Request.Method + " " + c.FullPath()

		col.mu.Lock()
		col.requestCount++
		col.active--
		col.totalDuration += duration
		col.lastRequest = time.Now()
		if statusCode >= 400 {
			col.errorCount++
		}
		col.statusCodes[http.StatusText(statusCode)]++
		col.endpoints[endpoint]++
		col.mu.Unlock()
	}
}

func (col *Collector) Snapshot() Snapshot {
	col.mu.RLock()
	defer col.mu.RUnlock()

	snap := Snapshot{
		RequestCount:   col.requestCount,
		ErrorCount:     col.errorCount,
		ActiveRequests: col.active,
		StatusCodes:    make(map[string]int64, len(col.statusCodes)),
		Endpoints:      make(map[string]int64, len(col.endpoints)),
		StartTime:      col.startTime,
		LastRequest:    col.lastRequest,
	}
	if col.requestCount > 0 {
		snap.AvgDurationMs = float64(col.totalDuration.Milliseconds()) / float64(col.requestCount)
	}
	for k, v := range col.statusCodes {
		snap.StatusCodes[k] = v
	}
	for k, v := range col.endpoints {
		snap.Endpoints[k] = v
	}
	return snap
}

type SystemMetrics struct {
	Uptime         string      `json:"uptime"`
	MemoryUsage    MemoryStats `json:"memory"`
	GoroutineCount int         `json:"goroutine_count"`
	CPUCount       int         `json:"cpu_count"`
	GoVersion      string      `json:"go_version"`
}

type MemoryStats struct {
	Alloc      uint64 `json:"alloc_mb"`
	TotalAlloc uint64 `json:"total_alloc_mb"`
	Sys        uint64 `json:"sys_mb"`
	NumGC      uint32 `json:"num_gc"`
}

func (col *Collector) SystemMetrics() SystemMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemMetrics{
		Uptime: time.Since(col.startTime).String(),
		MemoryUsage: MemoryStats{
			Alloc:      bToMb(m.Alloc),
			TotalAlloc: bToMb(m.TotalAlloc),
			Sys:        bToMb(m.Sys),
			NumGC:      m.NumGC,
		},
		GoroutineCount: runtime.NumGoroutine(),
		CPUCount:       runtime.NumCPU(),
		GoVersion:      runtime.Version(),
	}
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

func (col *Collector) MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"application": col.Snapshot(),
			"system":      col.SystemMetrics(),
			"timestamp":   time.Now(),
		})
	}
}

type HealthCheckFunc func(ctx context.Context) error

type HealthCheck struct {
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	LastRun time.Time `json:"last_run"`
}

// HealthChecker runs registered dependency probes on demand.
type HealthChecker struct {
	mu     sync.RWMutex
	checks map[string]HealthCheckFunc
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{checks: make(map[string]HealthCheckFunc)}
}

func (h *HealthChecker) Register(name string, check HealthCheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

func (h *HealthChecker) Run() map[string]HealthCheck {
	h.mu.RLock()
	funcs := make(map[string]HealthCheckFunc, len(h.checks))
	for name, fn := range h.checks {
		funcs[name] = fn
	}
	h.mu.RUnlock()

	results := make(map[string]HealthCheck, len(funcs))
	for name, fn := range funcs {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		check := HealthCheck{Name: name, Status: "healthy", LastRun: time.Now()}
		if err := fn(ctx); err != nil {
			check.Status = "unhealthy"
			check.Message = err.Error()
		}
		cancel()
		results[name] = check
	}
	return results
}

func (h *HealthChecker) Healthy() (map[string]HealthCheck, bool) {
	checks := h.Run()
	for _, check := range checks {
		if check.Status != "healthy" {
			return checks, false
		}
	}
	return checks, true
}

func (col *Collector) HealthHandler(checker *HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks, healthy := checker.Healthy()

		status := http.StatusOK
		overall := "healthy"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}

		c.JSON(status, gin.H{
			"status":    overall,
			"timestamp": time.Now(),
			"checks":    checks,
			"uptime":    time.Since(col.startTime).String(),
		})
	}
}

func ReadinessHandler(checker *HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ready := checker.Healthy(); ready {
			c.JSON(http.StatusOK, gin.H{"status": "ready", "timestamp": time.Now()})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "timestamp": time.Now()})
	}
}

func (col *Collector) LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "alive",
			"timestamp": time.Now(),
			"uptime":    time.Since(col.startTime).String(),
		})
	}
}
