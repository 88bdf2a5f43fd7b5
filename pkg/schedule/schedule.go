// Package schedule runs user systems in the application's fixed phases and
// enforces the order the phases may run in.
package schedule

import (
	"errors"
	"fmt"

	"github.com/Faultbox/rad-engine/pkg/ecs"
)

// Phase errors.
var (
	// ErrPhaseConsumed is returned when Startup or End is run a second time.
	ErrPhaseConsumed = errors.New("phase already ran")
	// ErrInvalidTransition is returned when a phase is run out of order.
	ErrInvalidTransition = errors.New("invalid phase transition")
)

// Phase is one of the fixed schedule phases.
type Phase int

const (
	// Startup runs once before the first frame.
	Startup Phase = iota
	// Update runs every frame before rendering.
	Update
	// Draw runs every frame after rendering.
	Draw
	// End runs once when the application closes.
	End
)

// Phases lists every phase in run order.
var Phases = [...]Phase{Startup, Update, Draw, End}

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Startup:
		return "Startup"
	case Update:
		return "Update"
	case Draw:
		return "Draw"
	case End:
		return "End"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the manager's position in the phase lifecycle.
type State int

const (
	// StateInit is the state before Startup.
	StateInit State = iota
	// StateSteady accepts Update and Draw.
	StateSteady
	// StateTerminated is reached after End; nothing runs afterwards.
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSteady:
		return "steady"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Manager holds one ecs.Schedule per phase.
type Manager struct {
	schedules [len(Phases)]*ecs.Schedule
	state     State
}

// NewManager creates a manager with empty schedules. Draw applies queued
// commands once at the end of the phase; the others apply after each system.
func NewManager() *Manager {
	m := &Manager{}
	for i := range m.schedules {
		m.schedules[i] = ecs.NewSchedule()
	}
	m.schedules[Draw].SetExecutorKind(ecs.ExecutorSingleThreaded)
	return m
}

// Schedule returns the schedule for phase, or nil for an unknown phase.
func (m *Manager) Schedule(phase Phase) *ecs.Schedule {
	if phase < 0 || int(phase) >= len(m.schedules) {
		return nil
	}
	return m.schedules[phase]
}

// AddSystems appends systems to phase in order.
func (m *Manager) AddSystems(phase Phase, systems ...ecs.System) {
	if s := m.Schedule(phase); s != nil {
		s.AddSystems(systems...)
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Terminated reports whether End has run.
func (m *Manager) Terminated() bool {
	return m.state == StateTerminated
}

// Run executes phase against w if the lifecycle allows it.
//
//	init    --Startup-->     steady
//	steady  --Update/Draw--> steady
//	init    --End-->         terminated
//	steady  --End-->         terminated
func (m *Manager) Run(phase Phase, w *ecs.World) error {
	s := m.Schedule(phase)
	if s == nil {
		return fmt.Errorf("run %s: %w", phase, ErrInvalidTransition)
	}

	switch phase {
	case Startup:
		if m.state != StateInit {
			return fmt.Errorf("run %s: %w", phase, ErrPhaseConsumed)
		}
		s.Run(w)
		m.state = StateSteady
	case Update, Draw:
		if m.state != StateSteady {
			return fmt.Errorf("run %s in %s state: %w", phase, m.state, ErrInvalidTransition)
		}
		s.Run(w)
	case End:
		if m.state == StateTerminated {
			return fmt.Errorf("run %s: %w", phase, ErrPhaseConsumed)
		}
		s.Run(w)
		m.state = StateTerminated
	}
	return nil
}
