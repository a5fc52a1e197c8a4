package errors

import (
	"sync"
	"time"
)

type rateLimiter struct {
	lock   sync.Mutex
	silent time.Duration
	buffer map[string]*errorStats
}

func newRateLimiter(silent time.Duration) *rateLimiter {
	return &rateLimiter{
		silent: silent,
		buffer: map[string]*errorStats{},
	}
}

type errorStats struct {
	totalOccurCount           int
	occurCountSinceLastReport int
	lastReportTime            *time.Time
}

func (in *errorStats) Copy() *errorStats {
	return &errorStats{
		totalOccurCount:           in.totalOccurCount,
		occurCountSinceLastReport: in.occurCountSinceLastReport,
		lastReportTime:            in.lastReportTime,
	}
}

// StackBasedRateLimited keys the silence window on the caller stack frame so
// one noisy site does not mute the others.
func (b *rateLimiter) StackBasedRateLimited(stack string) (bool, *errorStats) {
	b.lock.Lock()
	defer b.lock.Unlock()
	stats := b.buffer[stack]
	if stats == nil {
		stats = &errorStats{}
		b.buffer[stack] = stats
	}
	cp := stats.Copy()
	now := time.Now()
	if stats.lastReportTime == nil {
		stats.totalOccurCount++
		stats.occurCountSinceLastReport = 0
		stats.lastReportTime = &now
		return false, cp
	}
	if time.Since(*stats.lastReportTime) < b.silent {
		stats.totalOccurCount++
		stats.occurCountSinceLastReport++
		return true, cp
	}
	stats.totalOccurCount++
	stats.occurCountSinceLastReport = 0
	stats.lastReportTime = &now
	return false, cp
}
