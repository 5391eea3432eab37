package hypothesis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
	"github.com/leadcanvas/leadcanvas/internal/theme"
)

type fakeActionRepo struct {
	actions map[uuid.UUID]*WeeklyAction
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{actions: make(map[uuid.UUID]*WeeklyAction)}
}

func (f *fakeActionRepo) Create(a *WeeklyAction) error {
	f.actions[a.ID] = a
	return nil
}

func (f *fakeActionRepo) CreateBatch(actions []*WeeklyAction) error {
	for _, a := range actions {
		f.actions[a.ID] = a
	}
	return nil
}

func (f *fakeActionRepo) ListByUser(userID uuid.UUID) ([]WeeklyAction, error) {
	var out []WeeklyAction
	for _, a := range f.actions {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeActionRepo) ListByUserOldestFirst(userID uuid.UUID) ([]WeeklyAction, error) {
	return f.ListByUser(userID)
}

func (f *fakeActionRepo) ListByTheme(themeID uuid.UUID) ([]WeeklyAction, error) {
	var out []WeeklyAction
	for _, a := range f.actions {
		if a.ThemeID != nil && *a.ThemeID == themeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeActionRepo) ListOpenByUser(userID uuid.UUID) ([]WeeklyAction, error) {
	var out []WeeklyAction
	for _, a := range f.actions {
		if a.UserID == userID && !a.IsCompleted {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeActionRepo) UpdateText(id, userID uuid.UUID, text string) (int64, error) {
	a, ok := f.actions[id]
	if !ok || a.UserID != userID {
		return 0, nil
	}
	a.ActionText = text
	return 1, nil
}

func (f *fakeActionRepo) SetCompleted(id, userID uuid.UUID, isCompleted bool) (int64, error) {
	a, ok := f.actions[id]
	if !ok || a.UserID != userID {
		return 0, nil
	}
	a.IsCompleted = isCompleted
	return 1, nil
}

func (f *fakeActionRepo) Delete(id, userID uuid.UUID) (int64, error) {
	a, ok := f.actions[id]
	if !ok || a.UserID != userID {
		return 0, nil
	}
	delete(f.actions, id)
	return 1, nil
}

// fakeThemeRepo implements just enough of theme.Repository for ownership
// checks.
type fakeThemeRepo struct {
	owned map[uuid.UUID]uuid.UUID
}

func (f *fakeThemeRepo) Create(*theme.DevelopmentTheme) error { return nil }
func (f *fakeThemeRepo) CountByUser(uuid.UUID) (int64, error) { return 0, nil }

func (f *fakeThemeRepo) ExistsByIDAndUser(id, userID uuid.UUID) (bool, error) {
	owner, ok := f.owned[id]
	return ok && owner == userID, nil
}

func (f *fakeThemeRepo) ListByUserOrdered(uuid.UUID) ([]theme.DevelopmentTheme, error) {
	return nil, nil
}
func (f *fakeThemeRepo) ListByUserRecent(uuid.UUID) ([]theme.DevelopmentTheme, error) {
	return nil, nil
}
func (f *fakeThemeRepo) FindLatestByUser(uuid.UUID) (*theme.DevelopmentTheme, error) {
	return nil, nil
}
func (f *fakeThemeRepo) UpdateName(_, _ uuid.UUID, _ string) (int64, error) { return 0, nil }
func (f *fakeThemeRepo) UpdateSuccessDescription(_, _ uuid.UUID, _ *string) (int64, error) {
	return 0, nil
}
func (f *fakeThemeRepo) Delete(_, _ uuid.UUID) (int64, error) { return 0, nil }

func authedContext(userID uuid.UUID) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{
		UserID: userID.String(),
		Role:   "client",
	})
}

func TestAddHypothesis(t *testing.T) {
	owner := uuid.New()
	themeID := uuid.New()
	themes := &fakeThemeRepo{owned: map[uuid.UUID]uuid.UUID{themeID: owner}}

	t.Run("attaches to owned theme", func(t *testing.T) {
		repo := newFakeActionRepo()
		svc := NewService(repo, themes)

		a, err := svc.AddHypothesis(authedContext(owner), themeID.String(), "Delegate one task this week")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.ThemeID == nil || *a.ThemeID != themeID {
			t.Errorf("hypothesis not linked to theme")
		}
		if a.IsCompleted {
			t.Errorf("new hypothesis must start open")
		}
	})

	t.Run("rejects foreign theme without storing", func(t *testing.T) {
		repo := newFakeActionRepo()
		svc := NewService(repo, themes)

		_, err := svc.AddHypothesis(authedContext(uuid.New()), themeID.String(), "Sneaky")
		if !errors.Is(err, ErrThemeNotFound) {
			t.Fatalf("expected ErrThemeNotFound, got %v", err)
		}
		if len(repo.actions) != 0 {
			t.Errorf("action stored despite failed ownership check")
		}
	})

	t.Run("rejects malformed theme id", func(t *testing.T) {
		svc := NewService(newFakeActionRepo(), themes)
		if _, err := svc.AddHypothesis(authedContext(owner), "nope", "x"); !errors.Is(err, ErrInvalidThemeID) {
			t.Errorf("expected ErrInvalidThemeID, got %v", err)
		}
	})
}

func TestAddWeeklyActions(t *testing.T) {
	owner := uuid.New()
	themes := &fakeThemeRepo{owned: map[uuid.UUID]uuid.UUID{}}

	t.Run("stores batch", func(t *testing.T) {
		repo := newFakeActionRepo()
		svc := NewService(repo, themes)

		created, err := svc.AddWeeklyActions(authedContext(owner), []string{"Ask for feedback", "Block focus time"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(created) != 2 || len(repo.actions) != 2 {
			t.Errorf("expected 2 stored actions, got %d", len(repo.actions))
		}
	})

	t.Run("rejects empty and oversized batches", func(t *testing.T) {
		svc := NewService(newFakeActionRepo(), themes)
		ctx := authedContext(owner)

		if _, err := svc.AddWeeklyActions(ctx, nil); !errors.Is(err, ErrBatchEmpty) {
			t.Errorf("expected ErrBatchEmpty, got %v", err)
		}
		tooMany := make([]string, 11)
		for i := range tooMany {
			tooMany[i] = "action"
		}
		if _, err := svc.AddWeeklyActions(ctx, tooMany); !errors.Is(err, ErrBatchTooLarge) {
			t.Errorf("expected ErrBatchTooLarge, got %v", err)
		}
	})

	t.Run("rejects overlong text", func(t *testing.T) {
		svc := NewService(newFakeActionRepo(), themes)
		if _, err := svc.AddWeeklyAction(authedContext(owner), strings.Repeat("a", 501)); !errors.Is(err, ErrTextTooLong) {
			t.Errorf("expected ErrTextTooLong, got %v", err)
		}
	})
}

func TestToggleComplete(t *testing.T) {
	owner := uuid.New()
	themes := &fakeThemeRepo{owned: map[uuid.UUID]uuid.UUID{}}
	repo := newFakeActionRepo()
	svc := NewService(repo, themes)

	a, err := svc.AddWeeklyAction(authedContext(owner), "Delegate one task")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("is idempotent", func(t *testing.T) {
		for n := 0; n < 2; n++ {
			if err := svc.ToggleComplete(authedContext(owner), a.ID.String(), true); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if !repo.actions[a.ID].IsCompleted {
			t.Errorf("action should be completed")
		}

		if err := svc.ToggleComplete(authedContext(owner), a.ID.String(), false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.actions[a.ID].IsCompleted {
			t.Errorf("action should be reopened")
		}
	})

	t.Run("merges foreign and missing", func(t *testing.T) {
		errForeign := svc.ToggleComplete(authedContext(uuid.New()), a.ID.String(), true)
		errMissing := svc.ToggleComplete(authedContext(owner), uuid.NewString(), true)

		if !errors.Is(errForeign, ErrNotFound) || !errors.Is(errMissing, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for both, got %v and %v", errForeign, errMissing)
		}
		if repo.actions[a.ID].IsCompleted {
			t.Errorf("foreign toggle must not apply")
		}
	})
}
