package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

// DefaultAutosaveDelay is the quiet period before a scheduled save runs
const DefaultAutosaveDelay = time.Second

// Autosaver coalesces rapid state changes into one save per quiet period.
// The last scheduled state wins; empty projects are never written.
type Autosaver struct {
	store ports.ProjectStore
	id    string
	delay time.Duration
	log   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *domain.ProjectState
	saving  sync.WaitGroup
}

// NewAutosaver creates an autosaver for one project
func NewAutosaver(store ports.ProjectStore, id string, delay time.Duration, log *slog.Logger) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Autosaver{store: store, id: id, delay: delay, log: log}
}

// Schedule records state and restarts the quiet-period timer
func (a *Autosaver) Schedule(state domain.ProjectState) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = &state
	a.stopTimer()

	// Each armed timer holds one count on saving until it is stopped or
	// its callback returns.
	a.saving.Add(1)
	var t *time.Timer
	t = time.AfterFunc(a.delay, func() { a.flush(t) })
	a.timer = t
}

// stopTimer cancels the armed timer. Callers hold mu.
func (a *Autosaver) stopTimer() {
	if a.timer == nil {
		return
	}
	if a.timer.Stop() {
		a.saving.Done()
	}
	a.timer = nil
}

func (a *Autosaver) flush(t *time.Timer) {
	defer a.saving.Done()

	a.mu.Lock()
	state := a.pending
	a.pending = nil
	if a.timer == t {
		a.timer = nil
	}
	a.mu.Unlock()

	if state == nil {
		return
	}
	if err := a.save(context.Background(), *state); err != nil {
		a.log.Error("autosave failed", "project", a.id, "error", err)
	}
}

// SaveNow cancels any pending save and writes state immediately
func (a *Autosaver) SaveNow(ctx context.Context, state domain.ProjectState) error {
	a.mu.Lock()
	a.stopTimer()
	a.pending = nil
	a.mu.Unlock()

	return a.save(ctx, state)
}

// Flush writes any pending state now and waits for in-flight saves
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	state := a.pending
	a.stopTimer()
	a.pending = nil
	a.mu.Unlock()

	a.saving.Wait()
	if state == nil {
		return nil
	}
	return a.save(ctx, *state)
}

func (a *Autosaver) save(ctx context.Context, state domain.ProjectState) error {
	if state.IsEmpty() {
		a.log.Debug("skipping save of empty project", "project", a.id)
		return nil
	}
	if err := a.store.Save(ctx, a.id, state); err != nil {
		return err
	}
	a.log.Debug("project saved", "project", a.id, "pages", len(state.Pages))
	return nil
}
