package views

import (
	"context"
	"slices"
	"testing"
	"time"

	"mapmyfirm/internal/adapters/memstore"
	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
)

func TestSession_ApplyAndFlush(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	saver := application.NewAutosaver(store, "p1", time.Hour, nil)
	s := NewSession("p1", fixtureState(), saver)

	s.Apply(domain.AddTag{PageID: "1", Tag: domain.TagLocationHub})
	s.Apply(domain.AddTag{PageID: "2", Tag: domain.TagPracticePage})

	if store.Saves() != 0 {
		t.Fatalf("expected saves to wait for the quiet period, got %d", store.Saves())
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatal(err)
	}
	if store.Saves() != 1 {
		t.Errorf("expected one coalesced save, got %d", store.Saves())
	}

	loaded, err := store.Load(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if page := domain.FindNodeInList(loaded.Pages, "2"); !slices.Equal(page.ManualTags, []string{domain.TagPracticePage}) {
		t.Errorf("expected saved tag, got %v", page.ManualTags)
	}
}

func TestSession_WithoutSaver(t *testing.T) {
	s := NewSession("p1", fixtureState(), nil)
	before := s.State

	s.Apply(domain.RemoveTag{PageID: "3", Tag: domain.TagLocationHub})

	if len(domain.FindNodeInList(s.State.Pages, "3").ManualTags) != 0 {
		t.Error("expected tag removed from session state")
	}
	if len(domain.FindNodeInList(before.Pages, "3").ManualTags) != 1 {
		t.Error("expected earlier state untouched")
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Errorf("unexpected flush error: %v", err)
	}
}
