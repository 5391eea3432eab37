package nudge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSendResponseEnvelope(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.service)

	body := `{"clientId":"` + f.client.ID.String() + `","messageText":"How did delegation go?"}`
	req := httptest.NewRequest(http.MethodPost, "/coach/nudges", strings.NewReader(body))
	req = req.WithContext(asUser(f.coach))
	rec := httptest.NewRecorder()

	h.Send(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			NudgeID      uuid.UUID `json:"nudge_id"`
			WebhookSent  bool      `json:"webhook_sent"`
			WebhookError *string   `json:"webhook_error"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if !envelope.Success {
		t.Errorf("expected success true")
	}
	if envelope.Message != "Nudge recorded successfully" {
		t.Errorf("expected confirmation message, got %q", envelope.Message)
	}
	if envelope.Data.NudgeID == uuid.Nil {
		t.Errorf("expected nudge id in data")
	}
}

func TestScheduledLogResponseEnvelope(t *testing.T) {
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

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !envelope.Success || envelope.Message == "" {
		t.Errorf("expected success with a message, got %+v", envelope)
	}
}
