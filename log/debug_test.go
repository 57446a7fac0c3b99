package log

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetDebug(t *testing.T) {
	t.Helper()
	prev := DebugEnabled
	DebugEnabled = false
	DebugLog = nil
	profiler.Reset()
	t.Cleanup(func() {
		DebugEnabled = prev
		profiler.Reset()
	})
}

func TestDebugDisabledByDefault(t *testing.T) {
	resetDebug(t)
	t.Setenv(DebugEnvVar, "")

	InitDebug()

	assert.False(t, DebugEnabled)
	assert.NotNil(t, DebugLog)
}

func TestDebugEnabledWithEnvVar(t *testing.T) {
	resetDebug(t)
	t.Setenv(DebugEnvVar, "1")

	InitDebug()
	defer CloseDebug()

	assert.True(t, DebugEnabled)
	assert.NotNil(t, DebugLog)
}

func TestDebugFunction(t *testing.T) {
	resetDebug(t)

	assert.NotPanics(t, func() { Debug("test message %s", "arg") })

	DebugEnabled = true
	assert.NotPanics(t, func() { Debug("test message %s", "arg") })
}

func TestStartFrameNoopWhenDisabled(t *testing.T) {
	resetDebug(t)

	done := profiler.StartFrame()
	done()
	stage := profiler.StartStage("animate")
	stage()

	assert.Zero(t, profiler.frameCount)
	assert.Empty(t, profiler.stages)
}

func TestStartStageRecordsWhenEnabled(t *testing.T) {
	resetDebug(t)
	DebugEnabled = true

	for i := 0; i < 5; i++ {
		done := profiler.StartStage("render")
		done()
	}

	m := profiler.stages["render"]
	require.NotNil(t, m)
	assert.Equal(t, int64(5), m.Count)
	assert.LessOrEqual(t, m.Min, m.Max)
}

func TestStartFrameRecordsFrame(t *testing.T) {
	resetDebug(t)
	DebugEnabled = true

	done := profiler.StartFrame()
	time.Sleep(time.Millisecond)
	done()

	assert.Equal(t, int64(1), profiler.frameCount)
	assert.GreaterOrEqual(t, profiler.totalTime, time.Millisecond)
}

func TestRecordFrameCountsSlowFrames(t *testing.T) {
	resetDebug(t)
	DebugEnabled = true

	profiler.RecordFrame(10 * time.Millisecond)
	profiler.RecordFrame(20 * time.Millisecond)

	assert.Equal(t, int64(2), profiler.frameCount)
	assert.Equal(t, int64(1), profiler.slowFrames)
	assert.Equal(t, 30*time.Millisecond, profiler.totalTime)
}

func TestGetStats(t *testing.T) {
	resetDebug(t)
	assert.Empty(t, profiler.GetStats())

	DebugEnabled = true
	profiler.RecordFrame(10 * time.Millisecond)
	done := profiler.StartStage("animate")
	done()

	stats := profiler.GetStats()
	assert.Contains(t, stats, "Frame Profile")
	assert.Contains(t, stats, "animate")
	assert.Contains(t, stats, "Total frames: 1")
}

func TestRollingWindow(t *testing.T) {
	resetDebug(t)
	DebugEnabled = true

	for i := 0; i < frameWindow+50; i++ {
		profiler.RecordFrame(time.Millisecond)
	}

	assert.Len(t, profiler.frameTimings, frameWindow)
}

func TestTraceHelpers(t *testing.T) {
	resetDebug(t)

	assert.NotPanics(t, func() {
		GestureTrace("drag", "began at %v", 1)
		LayoutTrace("cells %d", 2)
	})

	DebugEnabled = true
	assert.NotPanics(t, func() {
		GestureTrace("drag", "began at %v", 1)
		LayoutTrace("cells %d", 2)
	})
}

func TestEvery(t *testing.T) {
	e := NewEvery(time.Hour)
	assert.True(t, e.ShouldLog())
	assert.False(t, e.ShouldLog())
}
