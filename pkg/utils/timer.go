package utils

import (
	"sync"
	"time"
)

// Phase records the start time and duration of one named timing interval.
type Phase struct {
	Name      string
	StartTime time.Time
	Duration  time.Duration
	completed bool
}

// PhaseTimer provides a fluent Stop for a phase started via Timer.Start.
// Intended for the defer timer.Start("x").Stop() pattern.
type PhaseTimer struct {
	timer     *Timer
	phaseName string
}

// Stop stops the phase timer and records the duration.
// Safe to call multiple times; only the first call has effect.
func (pt *PhaseTimer) Stop() time.Duration {
	return pt.timer.StopPhase(pt.phaseName)
}

// Timer times named phases of a run against an injectable Clock, so the
// CLI can report per-phase wall-clock duration and tests can drive it with
// a MockClock instead of real time.
type Timer struct {
	mu         sync.Mutex
	name       string
	phases     map[string]*Phase
	phaseOrder []string
	clock      Clock
}

// TimerOption configures a Timer instance.
type TimerOption func(*Timer)

// WithClock sets a custom clock, for deterministic tests.
func WithClock(clock Clock) TimerOption {
	return func(t *Timer) {
		t.clock = clock
	}
}

// NewTimer creates a new Timer with the given name and options.
func NewTimer(name string, opts ...TimerOption) *Timer {
	t := &Timer{
		name:   name,
		phases: make(map[string]*Phase),
		clock:  NewRealClock(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Start starts timing a new phase.
// Returns a PhaseTimer that can be used with defer for automatic completion.
func (t *Timer) Start(phaseName string) *PhaseTimer {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.phases[phaseName] = &Phase{
		Name:      phaseName,
		StartTime: t.clock.Now(),
	}
	t.phaseOrder = append(t.phaseOrder, phaseName)

	return &PhaseTimer{timer: t, phaseName: phaseName}
}

// StopPhase stops timing a phase and returns its duration.
// Safe to call multiple times; only the first call has effect.
func (t *Timer) StopPhase(phaseName string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	phase, ok := t.phases[phaseName]
	if !ok {
		return 0
	}
	if phase.completed {
		return phase.Duration
	}

	phase.Duration = t.clock.Now().Sub(phase.StartTime)
	phase.completed = true

	return phase.Duration
}

// GetDuration returns the duration of a completed phase.
func (t *Timer) GetDuration(phaseName string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if phase, ok := t.phases[phaseName]; ok {
		return phase.Duration
	}
	return 0
}

// TimeFunc times the execution of a function and records it as a phase.
func (t *Timer) TimeFunc(phaseName string, fn func()) time.Duration {
	pt := t.Start(phaseName)
	fn()
	return pt.Stop()
}
