package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks sync job activity
type Metrics struct {
	runs            int64
	runFailures     int64
	reposProcessed  int64
	fallbacks       int64
	upstreamCalls   int64
	upstreamErrors  int64
	upstreamLatency int64 // Total latency in nanoseconds
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		runs:            atomic.LoadInt64(&globalMetrics.runs),
		runFailures:     atomic.LoadInt64(&globalMetrics.runFailures),
		reposProcessed:  atomic.LoadInt64(&globalMetrics.reposProcessed),
		fallbacks:       atomic.LoadInt64(&globalMetrics.fallbacks),
		upstreamCalls:   atomic.LoadInt64(&globalMetrics.upstreamCalls),
		upstreamErrors:  atomic.LoadInt64(&globalMetrics.upstreamErrors),
		upstreamLatency: atomic.LoadInt64(&globalMetrics.upstreamLatency),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.runs, 0)
	atomic.StoreInt64(&globalMetrics.runFailures, 0)
	atomic.StoreInt64(&globalMetrics.reposProcessed, 0)
	atomic.StoreInt64(&globalMetrics.fallbacks, 0)
	atomic.StoreInt64(&globalMetrics.upstreamCalls, 0)
	atomic.StoreInt64(&globalMetrics.upstreamErrors, 0)
	atomic.StoreInt64(&globalMetrics.upstreamLatency, 0)
}

func recordRun(err error) {
	atomic.AddInt64(&globalMetrics.runs, 1)
	if err != nil {
		atomic.AddInt64(&globalMetrics.runFailures, 1)
	}
}

func recordRepo(fallback bool) {
	atomic.AddInt64(&globalMetrics.reposProcessed, 1)
	if fallback {
		atomic.AddInt64(&globalMetrics.fallbacks, 1)
	}
}

// recordUpstreamCall records a GitHub or model call
func recordUpstreamCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.upstreamCalls, 1)
	atomic.AddInt64(&globalMetrics.upstreamLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.upstreamErrors, 1)
	}
}

func (m Metrics) Runs() int64           { return m.runs }
func (m Metrics) RunFailures() int64    { return m.runFailures }
func (m Metrics) ReposProcessed() int64 { return m.reposProcessed }
func (m Metrics) Fallbacks() int64      { return m.fallbacks }
func (m Metrics) UpstreamCalls() int64  { return m.upstreamCalls }

// AverageUpstreamLatency returns the average latency in milliseconds
func (m Metrics) AverageUpstreamLatency() float64 {
	if m.upstreamCalls == 0 {
		return 0
	}
	avgNs := float64(m.upstreamLatency) / float64(m.upstreamCalls)
	return avgNs / 1e6
}

// UpstreamErrorRate returns the error rate as a percentage
func (m Metrics) UpstreamErrorRate() float64 {
	if m.upstreamCalls == 0 {
		return 0
	}
	return float64(m.upstreamErrors) / float64(m.upstreamCalls) * 100
}
