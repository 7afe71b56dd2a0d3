// Package memstore keeps project snapshots in memory. It backs tests and
// throwaway sessions that should not touch disk.
package memstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
	"mapmyfirm/internal/ports"
)

var _ ports.ProjectStore = (*Store)(nil)

type record struct {
	blob     []byte
	modified time.Time
}

// Store implements ports.ProjectStore over a map. Snapshots are stored
// encoded so callers never share memory with the store.
type Store struct {
	mu       sync.RWMutex
	projects map[string]record
	saves    int

	// Now stamps last_modified; defaults to the wall clock
	Now func() time.Time
}

// New creates an empty store
func New() *Store {
	return &Store{projects: make(map[string]record)}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Store) Save(ctx context.Context, id string, state domain.ProjectState) error {
	if id == "" {
		return application.ErrInvalidID
	}
	blob, err := json.Marshal(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[id] = record{blob: blob, modified: s.now()}
	s.saves++
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*domain.ProjectState, error) {
	s.mu.RLock()
	rec, ok := s.projects[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &application.NotFoundError{Kind: "project", ID: id}
	}

	var state domain.ProjectState
	if err := json.Unmarshal(rec.blob, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) List(ctx context.Context) ([]ports.ProjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type row struct {
		info     ports.ProjectInfo
		modified time.Time
	}
	rows := make([]row, 0, len(s.projects))
	for id, rec := range s.projects {
		var state domain.ProjectState
		if err := json.Unmarshal(rec.blob, &state); err != nil {
			return nil, err
		}
		rows = append(rows, row{
			info: ports.ProjectInfo{
				ID:           id,
				Name:         state.Config.ProjectName,
				SiteURL:      state.Config.SiteURL,
				PageCount:    len(state.Pages),
				LastModified: rec.modified.Format(time.RFC3339),
			},
			modified: rec.modified,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].modified.Equal(rows[j].modified) {
			return rows[i].modified.After(rows[j].modified)
		}
		return rows[i].info.ID > rows[j].info.ID
	})

	out := make([]ports.ProjectInfo, len(rows))
	for i, r := range rows {
		out[i] = r.info
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return &application.NotFoundError{Kind: "project", ID: id}
	}
	delete(s.projects, id)
	return nil
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.projects[id]
	return ok, nil
}

// Saves reports how many times Save succeeded
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func (s *Store) Close() error { return nil }
