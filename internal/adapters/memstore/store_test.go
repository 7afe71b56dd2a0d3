package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/domain"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New()
	s.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	a := domain.NewProjectState()
	a.Config.ProjectName = "First"
	b := domain.NewProjectState()
	b.Config.ProjectName = "Second"
	b.Pages = []domain.SiteNode{{ID: "1", Title: "Home"}}

	if err := s.Save(ctx, "a", a); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "b", b); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if got.Config.ProjectName != "Second" || len(got.Pages) != 1 {
		t.Errorf("unexpected state %+v", got)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "b" || list[0].PageCount != 1 {
		t.Errorf("expected newest first, got %+v", list)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Exists(ctx, "a"); ok {
		t.Error("expected a deleted")
	}
}

func TestStore_NotFound(t *testing.T) {
	s := New()

	if _, err := s.Load(context.Background(), "missing"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(context.Background(), "missing"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
