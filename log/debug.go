// Package log provides logging utilities including debug mode with frame profiling.
// Enable debug mode by setting OW_DEBUG=1 environment variable.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DebugEnvVar turns on debug logging and the frame profiler when set to 1.
const DebugEnvVar = "OW_DEBUG"

// slowFrame is the budget of one frame at 60 Hz.
const slowFrame = 16 * time.Millisecond

// frameWindow is how many recent frame times the profiler keeps.
const frameWindow = 120

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "overlaywindow-debug.log")

// InitDebug initializes debug logging if OW_DEBUG=1 is set.
// Call this after Initialize() in main.
func InitDebug() {
	if os.Getenv(DebugEnvVar) != "1" {
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		ErrorLog.Printf("could not open debug log file: %s", err)
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Println("Debug mode enabled")
	DebugLog.Printf("Debug log: %s", debugLogFileName)
}

// CloseDebug writes the frame profile and closes the debug log file.
func CloseDebug() {
	if debugLogFile == nil {
		return
	}
	profiler.LogStats()
	_ = debugLogFile.Close()
	debugLogFile = nil
	fmt.Println("wrote debug logs to " + debugLogFileName)
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// FrameProfiler tracks how long engine ticks and their stages take.
type FrameProfiler struct {
	mu           sync.RWMutex
	stages       map[string]*StageMetrics
	frameCount   int64
	slowFrames   int64
	totalTime    time.Duration
	lastFrameAt  time.Time
	frameTimings []time.Duration
	slowWarn     *Every
}

// StageMetrics tracks metrics for one named stage of a frame.
type StageMetrics struct {
	Name      string
	Count     int64
	Total     time.Duration
	Min       time.Duration
	Max       time.Duration
	LastRunAt time.Time
}

var profiler = newFrameProfiler()

func newFrameProfiler() *FrameProfiler {
	return &FrameProfiler{
		stages:       make(map[string]*StageMetrics),
		frameTimings: make([]time.Duration, 0, frameWindow),
		slowWarn:     NewEvery(5 * time.Second),
	}
}

// GetProfiler returns the global frame profiler.
func GetProfiler() *FrameProfiler {
	return profiler
}

// StartFrame begins timing a frame. Call the returned function when the
// frame is done.
func (p *FrameProfiler) StartFrame() func() {
	if !DebugEnabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.RecordFrame(time.Since(start))
	}
}

// StartStage begins timing a stage within a frame.
func (p *FrameProfiler) StartStage(stage string) func() {
	if !DebugEnabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.recordStage(stage, time.Since(start))
	}
}

func (p *FrameProfiler) recordStage(stage string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.stages[stage]
	if !ok {
		m = &StageMetrics{Name: stage, Min: elapsed, Max: elapsed}
		p.stages[stage] = m
	}
	m.Count++
	m.Total += elapsed
	m.LastRunAt = time.Now()
	if elapsed < m.Min {
		m.Min = elapsed
	}
	if elapsed > m.Max {
		m.Max = elapsed
	}
}

// RecordFrame records one complete frame.
func (p *FrameProfiler) RecordFrame(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	p.totalTime += elapsed
	p.lastFrameAt = time.Now()

	if len(p.frameTimings) >= frameWindow {
		p.frameTimings = p.frameTimings[1:]
	}
	p.frameTimings = append(p.frameTimings, elapsed)

	if elapsed > slowFrame {
		p.slowFrames++
		if DebugLog != nil {
			DebugLog.Printf("SLOW FRAME: %v", elapsed)
		}
		if p.slowWarn.ShouldLog() {
			WarningLog.Printf("frame took %v, over the %v budget", elapsed, slowFrame)
		}
	}
}

// GetStats returns a summary of frame statistics.
func (p *FrameProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\n=== Frame Profile ===\n")
	sb.WriteString(fmt.Sprintf("Total frames: %d (slow: %d)\n", p.frameCount, p.slowFrames))

	if p.frameCount > 0 {
		avg := p.totalTime / time.Duration(p.frameCount)
		sb.WriteString(fmt.Sprintf("Avg frame time: %v\n", avg))
	}

	if len(p.frameTimings) > 0 {
		sorted := append([]time.Duration(nil), p.frameTimings...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		var sum time.Duration
		for _, t := range sorted {
			sum += t
		}
		sb.WriteString(fmt.Sprintf("Recent %d frames: avg=%v p50=%v max=%v\n",
			len(sorted), sum/time.Duration(len(sorted)), sorted[len(sorted)/2], sorted[len(sorted)-1]))
	}

	sb.WriteString("\n--- Stages ---\n")
	var stages []*StageMetrics
	for _, m := range p.stages {
		stages = append(stages, m)
	}
	sort.Slice(stages, func(i, j int) bool {
		return stages[i].Total > stages[j].Total
	})
	for _, m := range stages {
		avg := time.Duration(0)
		if m.Count > 0 {
			avg = m.Total / time.Duration(m.Count)
		}
		sb.WriteString(fmt.Sprintf("  %s: count=%d total=%v avg=%v min=%v max=%v\n",
			m.Name, m.Count, m.Total, avg, m.Min, m.Max))
	}

	return sb.String()
}

// LogStats logs the current frame statistics.
func (p *FrameProfiler) LogStats() {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Print(p.GetStats())
	}
}

// Reset clears all profiling data.
func (p *FrameProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stages = make(map[string]*StageMetrics)
	p.frameCount = 0
	p.slowFrames = 0
	p.totalTime = 0
	p.frameTimings = make([]time.Duration, 0, frameWindow)
}

// GestureTrace logs gesture samples as the host delivers them.
func GestureTrace(kind, format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[GESTURE:%s] %s", kind, fmt.Sprintf(format, v...))
	}
}

// LayoutTrace logs host layout computations.
func LayoutTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[LAYOUT] "+format, v...)
	}
}
