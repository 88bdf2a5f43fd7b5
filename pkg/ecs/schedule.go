package ecs

// System is a callback run by a Schedule against a World.
type System func(w *World)

// ExecutorKind selects how a Schedule runs its systems.
type ExecutorKind int

const (
	// ExecutorSimple runs systems in order and applies queued commands after
	// each one, so every system observes the previous system's spawns.
	ExecutorSimple ExecutorKind = iota
	// ExecutorSingleThreaded runs systems in order and applies queued
	// commands once, after the last system.
	ExecutorSingleThreaded
)

// String returns the executor name.
func (k ExecutorKind) String() string {
	switch k {
	case ExecutorSimple:
		return "simple"
	case ExecutorSingleThreaded:
		return "single-threaded"
	default:
		return "unknown"
	}
}

// Schedule is an ordered list of systems.
type Schedule struct {
	systems  []System
	executor ExecutorKind
}

// NewSchedule creates an empty schedule using the default executor.
func NewSchedule() *Schedule {
	return &Schedule{
		systems: make([]System, 0, 8),
	}
}

// AddSystems appends systems; they run in the order given.
func (s *Schedule) AddSystems(systems ...System) {
	for _, sys := range systems {
		if sys != nil {
			s.systems = append(s.systems, sys)
		}
	}
}

// SetExecutorKind changes how the schedule runs.
func (s *Schedule) SetExecutorKind(k ExecutorKind) {
	s.executor = k
}

// ExecutorKind returns the current executor.
func (s *Schedule) ExecutorKind() ExecutorKind {
	return s.executor
}

// Len returns the number of systems.
func (s *Schedule) Len() int {
	return len(s.systems)
}

// Run executes every system against w.
func (s *Schedule) Run(w *World) {
	for _, sys := range s.systems {
		sys(w)
		if s.executor == ExecutorSimple {
			w.commands.Apply()
		}
	}
	w.commands.Apply()
}
