// Package state holds the process-wide readiness and liveness state of the
// iris inference service.
package state

import (
	"sync/atomic"

	"github.com/irisml/iris-inference-service/internal/artifact"
)

// State is the single process-wide service state: one writer at startup, many
// concurrent readers afterwards.
//
// Readiness and the artifact reference are published together through a
// single atomic pointer store, so a reader that observes readiness is
// guaranteed to observe the fully constructed artifact. Both transitions
// (NotReady→Ready, Alive→Dead) are one-way.
type State struct {
	model atomic.Pointer[artifact.Model]
	dead  atomic.Bool
}

// New creates a State that is alive and not ready.
func New() *State {
	return &State{}
}

// PublishModel stores the loaded artifact and marks the service ready. It is
// called at most once, by the loader, after the artifact is fully constructed.
func (s *State) PublishModel(m *artifact.Model) {
	s.model.Store(m)
}

// Model returns the loaded artifact, or false while the service is not ready.
func (s *State) Model() (*artifact.Model, bool) {
	m := s.model.Load()
	return m, m != nil
}

// Ready reports whether the artifact has been loaded.
func (s *State) Ready() bool {
	return s.model.Load() != nil
}

// Alive reports whether the process is free of fatal faults. Nothing flips
// this in the baseline design; MarkDead is the reserved extension point for
// future health degradation.
func (s *State) Alive() bool {
	return !s.dead.Load()
}

// MarkDead records an unrecoverable fault. One-way: there is no revival.
func (s *State) MarkDead() {
	s.dead.Store(true)
}
