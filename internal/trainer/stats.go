package trainer

import (
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Statistics tracks running answer counters. It is owned by the host and
// handed to each session, so accuracy accumulates across sessions until
// the host decides to Reset.
type Statistics struct {
	mu        sync.Mutex
	clock     quartz.Clock
	correct   int
	total     int
	startedAt time.Time
}

// NewStatistics creates counters using the real clock.
func NewStatistics() *Statistics {
	return NewStatisticsWithClock(quartz.NewReal())
}

// NewStatisticsWithClock creates counters with an injectable clock for
// tests.
func NewStatisticsWithClock(clock quartz.Clock) *Statistics {
	return &Statistics{
		clock:     clock,
		startedAt: clock.Now(),
	}
}

// Record incorporates one answered hand.
func (s *Statistics) Record(correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	if correct {
		s.correct++
	}
}

// Correct returns the number of correct answers.
func (s *Statistics) Correct() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct
}

// Total returns the number of answered hands.
func (s *Statistics) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Accuracy returns the running accuracy in percent, 0 when nothing has
// been answered.
func (s *Statistics) Accuracy() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.total == 0 {
		return 0
	}
	return float64(s.correct) / float64(s.total) * 100
}

// FormatAccuracy renders accuracy with one decimal, e.g. "87.5%".
func (s *Statistics) FormatAccuracy() string {
	return fmt.Sprintf("%.1f%%", s.Accuracy())
}

// Elapsed returns the time since the counters started or were last
// reset.
func (s *Statistics) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Now().Sub(s.startedAt)
}

// Reset zeroes the counters and restarts the elapsed timer. Sessions
// never call this; it is the host's decision.
func (s *Statistics) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.correct = 0
	s.total = 0
	s.startedAt = s.clock.Now()
}
