package nudge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newScheduledServer(t *testing.T) (*httptest.Server, *nudgeFixture) {
	t.Helper()

	f := newFixture(t)
	h := NewScheduledHandler(f.service)

	mux := chi.NewRouter()
	mux.Get("/weekly-nudges", h.WeeklyNudges)
	mux.Post("/weekly-nudges/log", h.LogWeeklyNudge)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, f
}

func TestScheduledAuthorization(t *testing.T) {
	t.Run("missing secret is a server error", func(t *testing.T) {
		t.Setenv("SCHEDULER_API_SECRET", "")
		server, _ := newScheduledServer(t)

		req, _ := http.NewRequest(http.MethodGet, server.URL+"/weekly-nudges", nil)
		req.Header.Set("Authorization", "Bearer anything")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500 when secret is unset, got %d", resp.StatusCode)
		}
	})

	t.Run("rejects bad tokens", func(t *testing.T) {
		t.Setenv("SCHEDULER_API_SECRET", "weekly-secret")
		server, _ := newScheduledServer(t)

		for name, header := range map[string]string{
			"no header":      "",
			"wrong token":    "Bearer nope",
			"missing scheme": "weekly-secret",
			"near miss":      "Bearer weekly-secret ",
		} {
			t.Run(name, func(t *testing.T) {
				req, _ := http.NewRequest(http.MethodGet, server.URL+"/weekly-nudges", nil)
				if header != "" {
					req.Header.Set("Authorization", header)
				}
				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					t.Fatalf("request failed: %v", err)
				}
				defer resp.Body.Close()

				if resp.StatusCode != http.StatusUnauthorized {
					t.Errorf("expected 401, got %d", resp.StatusCode)
				}
			})
		}
	})

	t.Run("accepts the exact secret", func(t *testing.T) {
		t.Setenv("SCHEDULER_API_SECRET", "weekly-secret")
		server, f := newScheduledServer(t)

		req, _ := http.NewRequest(http.MethodGet, server.URL+"/weekly-nudges", nil)
		req.Header.Set("Authorization", "Bearer weekly-secret")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var body struct {
			Success bool              `json:"success"`
			Data    WeeklyNudgeDigest `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if !body.Success || body.Data.TotalCount != 1 {
			t.Errorf("unexpected digest: %+v", body)
		}
		if body.Data.Clients[0].ClientID != f.client.ID {
			t.Errorf("digest lists the wrong client")
		}
	})
}

func TestScheduledLogEndpoint(t *testing.T) {
	t.Setenv("SCHEDULER_API_SECRET", "weekly-secret")
	server, f := newScheduledServer(t)

	payload := `{"client_id":"` + f.client.ID.String() + `","message_text":"Weekly check-in"}`
	req, _ := http.NewRequest(http.MethodPost, server.URL+"/weekly-nudges/log", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer weekly-secret")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if len(f.repo.nudges) != 1 {
		t.Fatalf("expected 1 recorded nudge, got %d", len(f.repo.nudges))
	}
	if !strings.HasPrefix(f.repo.nudges[0].MessageText, "[Automated Weekly] ") {
		t.Errorf("logged nudge missing automated prefix: %q", f.repo.nudges[0].MessageText)
	}
}
