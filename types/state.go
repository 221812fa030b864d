package types

import "sync"

// RunSnapshot is a point-in-time view of the run, safe to serialize.
type RunSnapshot struct {
	Running   bool   `json:"running"`
	Current   string `json:"current,omitempty"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Failed    int    `json:"failed"`
}

// RunState tracks run progress for the local API. The orchestrator writes,
// HTTP handlers read, so access is mutex-guarded.
type RunState struct {
	mu   sync.Mutex
	snap RunSnapshot
}

func NewRunState(total int) *RunState {
	return &RunState{snap: RunSnapshot{Running: true, Total: total}}
}

func (s *RunState) SetCurrent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Current = name
}

func (s *RunState) Done(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Completed++
	if !success {
		s.snap.Failed++
	}
	s.snap.Current = ""
}

func (s *RunState) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Running = false
	s.snap.Current = ""
}

func (s *RunState) Snapshot() RunSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
