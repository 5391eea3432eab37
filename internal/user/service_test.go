package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leadcanvas/leadcanvas/internal/auth"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*User
}

func newFakeUserRepo(users ...*User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[uuid.UUID]*User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) RoleByID(id uuid.UUID) (Role, error) {
	u, ok := f.users[id]
	if !ok {
		return "", ErrNotFound
	}
	return u.Role, nil
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ListClients() ([]User, error) {
	var out []User
	for _, u := range f.users {
		if u.Role == RoleClient {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindAnyCoach() (*User, error) {
	for _, u := range f.users {
		if u.Role == RoleCoach {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUserRepo) ListNudgeOptedInClients() ([]User, error) { return nil, nil }

func (f *fakeUserRepo) UpdatePadletURL(clientID uuid.UUID, url *string) (int64, error) {
	u, ok := f.users[clientID]
	if !ok {
		return 0, nil
	}
	u.PadletURL = url
	return 1, nil
}

func (f *fakeUserRepo) Create(u *User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUserRepo) UpdateLeadershipPurpose(userID uuid.UUID, purpose *string) (int64, error) {
	u, ok := f.users[userID]
	if !ok {
		return 0, nil
	}
	u.LeadershipPurpose = purpose
	return 1, nil
}

type noopProvisioner struct{}

func (noopProvisioner) EnsureForUser(uuid.UUID) error { return nil }

func asUser(u *User) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.UserClaims{
		UserID: u.ID.String(),
		Role:   string(u.Role),
	})
}

func TestUpdateLeadershipPurpose(t *testing.T) {
	client := &User{ID: uuid.New(), Role: RoleClient, Email: "client@example.com"}
	repo := newFakeUserRepo(client)
	svc := NewService(repo, noopProvisioner{})

	t.Run("stores trimmed purpose", func(t *testing.T) {
		if err := svc.UpdateLeadershipPurpose(asUser(client), "  Grow calm leaders  "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.LeadershipPurpose == nil || *client.LeadershipPurpose != "Grow calm leaders" {
			t.Errorf("purpose not stored, got %v", client.LeadershipPurpose)
		}
	})

	t.Run("empty purpose clears the field", func(t *testing.T) {
		if err := svc.UpdateLeadershipPurpose(asUser(client), "   "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.LeadershipPurpose != nil {
			t.Errorf("expected cleared purpose, got %q", *client.LeadershipPurpose)
		}
	})

	t.Run("rejects overlong purpose", func(t *testing.T) {
		err := svc.UpdateLeadershipPurpose(asUser(client), strings.Repeat("a", 501))
		if !errors.Is(err, ErrPurposeTooLong) {
			t.Errorf("expected ErrPurposeTooLong, got %v", err)
		}
	})
}

func TestUpdateClientPadletURL(t *testing.T) {
	coach := &User{ID: uuid.New(), Role: RoleCoach, Email: "coach@example.com"}
	client := &User{ID: uuid.New(), Role: RoleClient, Email: "client@example.com"}

	newSvc := func() (*fakeUserRepo, Service) {
		repo := newFakeUserRepo(
			&User{ID: coach.ID, Role: RoleCoach, Email: coach.Email},
			&User{ID: client.ID, Role: RoleClient, Email: client.Email},
		)
		return repo, NewService(repo, noopProvisioner{})
	}

	t.Run("coach sets a valid https url", func(t *testing.T) {
		repo, svc := newSvc()
		if err := svc.UpdateClientPadletURL(asUser(coach), client.ID.String(), "https://padlet.com/board/abc"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stored := repo.users[client.ID].PadletURL
		if stored == nil || *stored != "https://padlet.com/board/abc" {
			t.Errorf("url not stored, got %v", stored)
		}
	})

	t.Run("empty url clears the link", func(t *testing.T) {
		repo, svc := newSvc()
		repo.users[client.ID].PadletURL = strPtr("https://padlet.com/old")

		if err := svc.UpdateClientPadletURL(asUser(coach), client.ID.String(), ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.users[client.ID].PadletURL != nil {
			t.Errorf("expected cleared url")
		}
	})

	t.Run("rejects non-https and malformed urls", func(t *testing.T) {
		_, svc := newSvc()
		ctx := asUser(coach)

		for _, bad := range []string{
			"http://padlet.com/board/abc",
			"not a url",
			"ftp://padlet.com/x",
			"https://",
		} {
			if err := svc.UpdateClientPadletURL(ctx, client.ID.String(), bad); !errors.Is(err, ErrInvalidPadletURL) {
				t.Errorf("expected ErrInvalidPadletURL for %q, got %v", bad, err)
			}
		}

		long := "https://padlet.com/" + strings.Repeat("a", 2048)
		if err := svc.UpdateClientPadletURL(ctx, client.ID.String(), long); !errors.Is(err, ErrPadletURLTooLong) {
			t.Errorf("expected ErrPadletURLTooLong, got %v", err)
		}
	})

	t.Run("requires coach role from storage", func(t *testing.T) {
		repo, svc := newSvc()

		// Claims assert coach but the stored row disagrees.
		impostor := auth.ContextWithClaims(context.Background(), &auth.UserClaims{
			UserID: client.ID.String(),
			Role:   "coach",
		})
		err := svc.UpdateClientPadletURL(impostor, client.ID.String(), "https://padlet.com/x")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if repo.users[client.ID].PadletURL != nil {
			t.Errorf("write must not happen for forbidden caller")
		}
	})

	t.Run("rejects coach target", func(t *testing.T) {
		_, svc := newSvc()
		err := svc.UpdateClientPadletURL(asUser(coach), coach.ID.String(), "https://padlet.com/x")
		if !errors.Is(err, ErrNotAClient) {
			t.Fatalf("expected ErrNotAClient, got %v", err)
		}
	})

	t.Run("unknown target reads as client not found", func(t *testing.T) {
		_, svc := newSvc()
		err := svc.UpdateClientPadletURL(asUser(coach), uuid.NewString(), "https://padlet.com/x")
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})
}

func strPtr(s string) *string { return &s }
