package views

import (
	"context"
	"time"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
)

// Session is the open project. Every edit goes through Apply so the
// state is replaced, never mutated, and an autosave is scheduled.
type Session struct {
	ID    string
	State domain.ProjectState

	saver *application.Autosaver
	now   func() time.Time
}

// NewSession wraps a loaded project; saver may be nil
func NewSession(id string, state domain.ProjectState, saver *application.Autosaver) *Session {
	return &Session{
		ID:    id,
		State: state,
		saver: saver,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Apply reduces the action into the state and schedules a save
func (s *Session) Apply(action domain.Action) {
	s.State = domain.Reduce(s.State, action, s.now())
	if s.saver != nil {
		s.saver.Schedule(s.State)
	}
}

// Replace swaps in a state loaded from elsewhere without saving it
func (s *Session) Replace(state domain.ProjectState) {
	s.State = state
}

// Flush writes any pending autosave
func (s *Session) Flush(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Flush(ctx)
}
