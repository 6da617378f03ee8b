package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/vinay71-re/MEDBUD/internal/store"
)

type fakeStore struct {
	events  []store.OutboxEvent
	offsets map[string]time.Time
	phone   string
	email   string
}

func newFakeStore() *fakeStore {
	return &fakeStore{offsets: map[string]time.Time{}}
}

func (f *fakeStore) ListOutboxEvents(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error) {
	var out []store.OutboxEvent
	for _, event := range f.events {
		if event.CreatedAt.After(after) {
			out = append(out, event)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) GetNotifyOffset(ctx context.Context, workerID string) (time.Time, error) {
	return f.offsets[workerID], nil
}

func (f *fakeStore) SetNotifyOffset(ctx context.Context, workerID string, last time.Time) error {
	f.offsets[workerID] = last
	return nil
}

func (f *fakeStore) GetPatientContact(ctx context.Context, patientID string) (string, string, error) {
	return f.phone, f.email, nil
}

func TestRenderTemplate(t *testing.T) {
	payload := payloadData{
		"token_number": float64(7),
		"token_date":   "2026-03-14",
	}
	got := renderTemplate("Token {token_number} booked for {token_date}.", payload)
	want := "Token 7 booked for 2026-03-14."
	if got != want {
		t.Fatalf("unexpected template render: %s", got)
	}
}

func TestTemplateForEvent(t *testing.T) {
	if templateForEvent("token.issued") == "" {
		t.Fatal("expected template for token.issued")
	}
	if templateForEvent("token.in_progress") == "" {
		t.Fatal("expected template for token.in_progress")
	}
	if templateForEvent("unknown.event") != "" {
		t.Fatal("expected no template for unknown event type")
	}
}

func TestRunAdvancesOffset(t *testing.T) {
	st := newFakeStore()
	st.phone = "+911234567890"
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	payload, _ := json.Marshal(map[string]interface{}{
		"token_number": 1,
		"token_date":   "2026-03-14",
		"patient_id":   "8e1f8f1a-4a3d-4a58-9b2f-0f5d1a2b3c4d",
	})
	st.events = []store.OutboxEvent{
		{EventID: "e1", Type: "token.issued", Payload: payload, CreatedAt: created},
		{EventID: "e2", Type: "token.issued", Payload: payload, CreatedAt: created.Add(time.Minute)},
	}

	w := New(st, Config{SMSProvider: "noop", EmailProvider: "noop"})
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := st.offsets["notify"]; !got.Equal(created.Add(time.Minute)) {
		t.Fatalf("offset not advanced, got %v", got)
	}

	// Second run sees nothing new and leaves the offset alone.
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := st.offsets["notify"]; !got.Equal(created.Add(time.Minute)) {
		t.Fatalf("offset moved without new events, got %v", got)
	}
}

func TestRunSkipsEventsWithoutPatient(t *testing.T) {
	st := newFakeStore()
	payload, _ := json.Marshal(map[string]interface{}{
		"token_number": 2,
		"token_date":   "2026-03-14",
	})
	st.events = []store.OutboxEvent{
		{EventID: "e1", Type: "token.issued", Payload: payload, CreatedAt: time.Now().UTC()},
	}

	w := New(st, Config{SMSProvider: "noop", EmailProvider: "noop"})
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
}
