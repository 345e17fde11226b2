// Package metrics keeps process-wide interview counters. Values reset on
// restart, matching the ephemeral session model.
package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu                  sync.RWMutex
	InterviewsStarted   int64
	InterviewsBlocked   int64
	InterviewsCompleted int64
	QuestionsAsked      int64
	DelegateCalls       int64
	DelegateFailures    int64
	FallbackBatches     int64
	FallbackGrades      int64
	LastUpdateTime      time.Time
}

// Snapshot is a point-in-time copy of the counters, safe to serialize.
type Snapshot struct {
	InterviewsStarted   int64     `json:"interviews_started"`
	InterviewsBlocked   int64     `json:"interviews_blocked"`
	InterviewsCompleted int64     `json:"interviews_completed"`
	QuestionsAsked      int64     `json:"questions_asked"`
	DelegateCalls       int64     `json:"delegate_calls"`
	DelegateFailures    int64     `json:"delegate_failures"`
	FallbackBatches     int64     `json:"fallback_batches"`
	FallbackGrades      int64     `json:"fallback_grades"`
	LastUpdateTime      time.Time `json:"last_update_time"`
}

func New() *Metrics {
	return &Metrics{
		LastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementInterviewsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InterviewsStarted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementInterviewsBlocked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InterviewsBlocked++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementInterviewsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InterviewsCompleted++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) AddQuestionsAsked(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsAsked += int64(n)
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementDelegateCall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DelegateCalls++
	if !success {
		m.DelegateFailures++
	}
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementFallbackBatch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackBatches++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementFallbackGrade() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackGrades++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		InterviewsStarted:   m.InterviewsStarted,
		InterviewsBlocked:   m.InterviewsBlocked,
		InterviewsCompleted: m.InterviewsCompleted,
		QuestionsAsked:      m.QuestionsAsked,
		DelegateCalls:       m.DelegateCalls,
		DelegateFailures:    m.DelegateFailures,
		FallbackBatches:     m.FallbackBatches,
		FallbackGrades:      m.FallbackGrades,
		LastUpdateTime:      m.LastUpdateTime,
	}
}
