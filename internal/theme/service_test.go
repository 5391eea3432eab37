package theme

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
)

type fakeRepo struct {
	themes map[uuid.UUID]*DevelopmentTheme
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{themes: make(map[uuid.UUID]*DevelopmentTheme)}
}

func (f *fakeRepo) Create(t *DevelopmentTheme) error {
	f.themes[t.ID] = t
	return nil
}

func (f *fakeRepo) CountByUser(userID uuid.UUID) (int64, error) {
	var n int64
	for _, t := range f.themes {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) ExistsByIDAndUser(id, userID uuid.UUID) (bool, error) {
	t, ok := f.themes[id]
	return ok && t.UserID == userID, nil
}

func (f *fakeRepo) ListByUserOrdered(userID uuid.UUID) ([]DevelopmentTheme, error) {
	var out []DevelopmentTheme
	for _, t := range f.themes {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByUserRecent(userID uuid.UUID) ([]DevelopmentTheme, error) {
	return f.ListByUserOrdered(userID)
}

func (f *fakeRepo) FindLatestByUser(userID uuid.UUID) (*DevelopmentTheme, error) {
	var latest *DevelopmentTheme
	for _, t := range f.themes {
		if t.UserID == userID {
			latest = t
		}
	}
	return latest, nil
}

func (f *fakeRepo) UpdateName(id, userID uuid.UUID, themeText string) (int64, error) {
	t, ok := f.themes[id]
	if !ok || t.UserID != userID {
		return 0, nil
	}
	t.ThemeText = themeText
	return 1, nil
}

func (f *fakeRepo) UpdateSuccessDescription(id, userID uuid.UUID, description *string) (int64, error) {
	t, ok := f.themes[id]
	if !ok || t.UserID != userID {
		return 0, nil
	}
	t.SuccessDescription = description
	return 1, nil
}

func (f *fakeRepo) Delete(id, userID uuid.UUID) (int64, error) {
	t, ok := f.themes[id]
	if !ok || t.UserID != userID {
		return 0, nil
	}
	delete(f.themes, id)
	return 1, nil
}

func authedContext(userID uuid.UUID) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{
		UserID: userID.String(),
		Role:   "client",
	})
}

func TestCreateTheme(t *testing.T) {
	userID := uuid.New()

	t.Run("assigns next order position", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)
		ctx := authedContext(userID)

		first, err := svc.Create(ctx, CreateThemeDTO{ThemeText: "Delegation"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.ThemeOrder != 1 {
			t.Errorf("expected order 1, got %d", first.ThemeOrder)
		}

		second, err := svc.Create(ctx, CreateThemeDTO{ThemeText: "Listening"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.ThemeOrder != 2 {
			t.Errorf("expected order 2, got %d", second.ThemeOrder)
		}
	})

	t.Run("rejects fourth theme and leaves storage unchanged", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)
		ctx := authedContext(userID)

		for _, name := range []string{"Delegation", "Listening", "Feedback"} {
			if _, err := svc.Create(ctx, CreateThemeDTO{ThemeText: name}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		_, err := svc.Create(ctx, CreateThemeDTO{ThemeText: "One too many"})
		if !errors.Is(err, ErrThemeLimit) {
			t.Fatalf("expected ErrThemeLimit, got %v", err)
		}
		if n, _ := repo.CountByUser(userID); n != 3 {
			t.Errorf("expected 3 themes after rejected create, got %d", n)
		}
	})

	t.Run("limit is per user", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo)

		for n := 0; n < 3; n++ {
			if _, err := svc.Create(authedContext(userID), CreateThemeDTO{ThemeText: "Theme"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if _, err := svc.Create(authedContext(uuid.New()), CreateThemeDTO{ThemeText: "Theme"}); err != nil {
			t.Errorf("other user should not be limited, got %v", err)
		}
	})

	t.Run("validates theme text", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		ctx := authedContext(userID)

		if _, err := svc.Create(ctx, CreateThemeDTO{ThemeText: "   "}); !errors.Is(err, ErrThemeTextRequired) {
			t.Errorf("expected ErrThemeTextRequired, got %v", err)
		}
		if _, err := svc.Create(ctx, CreateThemeDTO{ThemeText: strings.Repeat("a", 101)}); !errors.Is(err, ErrThemeTextTooLong) {
			t.Errorf("expected ErrThemeTextTooLong, got %v", err)
		}
		if _, err := svc.Create(ctx, CreateThemeDTO{ThemeText: "ok", SuccessDescription: strings.Repeat("a", 2001)}); !errors.Is(err, ErrDescriptionTooLong) {
			t.Errorf("expected ErrDescriptionTooLong, got %v", err)
		}
	})

	t.Run("requires authentication", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		if _, err := svc.Create(context.Background(), CreateThemeDTO{ThemeText: "Delegation"}); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestUpdateThemeOwnership(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()

	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(authedContext(owner), CreateThemeDTO{ThemeText: "Delegation"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("wrong owner is indistinguishable from missing", func(t *testing.T) {
		errOther := svc.UpdateName(authedContext(intruder), created.ID.String(), "Hijacked")
		errMissing := svc.UpdateName(authedContext(owner), uuid.NewString(), "Nowhere")

		if !errors.Is(errOther, ErrNotFound) {
			t.Errorf("expected ErrNotFound for foreign theme, got %v", errOther)
		}
		if !errors.Is(errMissing, ErrNotFound) {
			t.Errorf("expected ErrNotFound for missing theme, got %v", errMissing)
		}
		if errOther.Error() != errMissing.Error() {
			t.Errorf("foreign and missing must produce identical errors: %q vs %q", errOther, errMissing)
		}
		if repo.themes[created.ID].ThemeText != "Delegation" {
			t.Errorf("theme text changed by foreign caller")
		}
	})

	t.Run("owner can update", func(t *testing.T) {
		if err := svc.UpdateName(authedContext(owner), created.ID.String(), "Clear delegation"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.themes[created.ID].ThemeText != "Clear delegation" {
			t.Errorf("update did not apply")
		}
	})

	t.Run("rejects malformed id before storage", func(t *testing.T) {
		if err := svc.UpdateName(authedContext(owner), "not-a-uuid", "x"); !errors.Is(err, ErrInvalidID) {
			t.Errorf("expected ErrInvalidID, got %v", err)
		}
	})
}

func TestDeleteTheme(t *testing.T) {
	owner := uuid.New()
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(authedContext(owner), CreateThemeDTO{ThemeText: "Delegation"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(authedContext(uuid.New()), created.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
	if err := svc.Delete(authedContext(owner), created.ID.String()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(authedContext(owner), created.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
