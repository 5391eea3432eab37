package progress

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
)

type fakeRepo struct {
	entries []ProgressEntry
}

func (f *fakeRepo) Create(e *ProgressEntry) error {
	f.entries = append([]ProgressEntry{*e}, f.entries...)
	return nil
}

func (f *fakeRepo) ListByUser(userID uuid.UUID, limit int) ([]ProgressEntry, error) {
	var out []ProgressEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) LatestByUser(userID uuid.UUID) (*ProgressEntry, error) {
	for _, e := range f.entries {
		if e.UserID == userID {
			return &e, nil
		}
	}
	return nil, nil
}

func authedContext(userID uuid.UUID) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{
		UserID: userID.String(),
		Role:   "client",
	})
}

func TestSaveProgress(t *testing.T) {
	userID := uuid.New()

	t.Run("appends entries", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)
		ctx := authedContext(userID)

		if _, err := svc.Save(ctx, "Tried delegating the standup"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Save(ctx, "Asked for feedback afterwards"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.entries) != 2 {
			t.Errorf("expected 2 entries, got %d", len(repo.entries))
		}
	})

	t.Run("validates text", func(t *testing.T) {
		svc := NewService(&fakeRepo{})
		ctx := authedContext(userID)

		if _, err := svc.Save(ctx, "   "); !errors.Is(err, ErrTextRequired) {
			t.Errorf("expected ErrTextRequired, got %v", err)
		}
		if _, err := svc.Save(ctx, strings.Repeat("a", 2001)); !errors.Is(err, ErrTextTooLong) {
			t.Errorf("expected ErrTextTooLong, got %v", err)
		}
	})

	t.Run("lists only the caller's entries", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)

		if _, err := svc.Save(authedContext(userID), "Mine"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Save(authedContext(uuid.New()), "Someone else's"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := svc.List(authedContext(userID), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 || entries[0].Text != "Mine" {
			t.Errorf("expected only the caller's entry, got %+v", entries)
		}
	})
}
