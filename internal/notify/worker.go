package notify

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/vinay71-re/MEDBUD/internal/store"
)

// Store is the slice of persistence the worker needs: outbox reads, the
// resume offset, and patient contact lookup.
type Store interface {
	ListOutboxEvents(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error)
	GetNotifyOffset(ctx context.Context, workerID string) (time.Time, error)
	SetNotifyOffset(ctx context.Context, workerID string, last time.Time) error
	GetPatientContact(ctx context.Context, patientID string) (phone, email string, err error)
}

type Config struct {
	WorkerID      string
	BatchSize     int
	SMSProvider   string
	EmailProvider string
}

type Worker struct {
	store     Store
	workerID  string
	batchSize int
	sms       Provider
	email     Provider
}

type payloadData map[string]interface{}

func New(st Store, cfg Config) *Worker {
	workerID := cfg.WorkerID
	if workerID == "" {
		workerID = "notify"
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 50
	}
	return &Worker{
		store:     st,
		workerID:  workerID,
		batchSize: batch,
		sms:       newProvider(cfg.SMSProvider, "sms"),
		email:     newProvider(cfg.EmailProvider, "email"),
	}
}

// Run drains one batch from the outbox. The offset only advances after the
// batch is processed, so a crash mid-batch redelivers rather than drops.
func (w *Worker) Run(ctx context.Context) error {
	last, err := w.store.GetNotifyOffset(ctx, w.workerID)
	if err != nil {
		return err
	}

	events, err := w.store.ListOutboxEvents(ctx, last, w.batchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			log.Printf("notify process error event=%s: %v", event.EventID, err)
		}
		last = event.CreatedAt
	}

	if !last.IsZero() {
		if err := w.store.SetNotifyOffset(ctx, w.workerID, last); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) processEvent(ctx context.Context, event store.OutboxEvent) error {
	template := templateForEvent(event.Type)
	if template == "" {
		return nil
	}

	payload := payloadData{}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}

	patientID := str(payload, "patient_id")
	if patientID == "" {
		// Walk-in without a registered patient, nothing to deliver.
		return nil
	}

	phone, email, err := w.store.GetPatientContact(ctx, patientID)
	if err != nil {
		return err
	}

	message := renderTemplate(template, payload)
	if phone != "" {
		if err := w.sms.Send(ctx, message, phone); err != nil {
			log.Printf("notify sms error recipient=%s: %v", phone, err)
		}
	}
	if email != "" {
		if err := w.email.Send(ctx, message, email); err != nil {
			log.Printf("notify email error recipient=%s: %v", email, err)
		}
	}
	return nil
}

func templateForEvent(eventType string) string {
	switch eventType {
	case "token.issued":
		return "Token {token_number} booked for {token_date}."
	case "token.in_progress":
		return "Token {token_number} is being called, please proceed to the doctor."
	case "token.completed":
		return "Your consultation for token {token_number} is complete."
	case "token.cancelled":
		return "Token {token_number} for {token_date} has been cancelled."
	default:
		return ""
	}
}

func renderTemplate(template string, payload payloadData) string {
	result := template
	result = strings.ReplaceAll(result, "{token_number}", str(payload, "token_number"))
	result = strings.ReplaceAll(result, "{token_date}", str(payload, "token_date"))
	result = strings.ReplaceAll(result, "{doctor_id}", str(payload, "doctor_id"))
	return result
}

func str(payload payloadData, key string) string {
	value, ok := payload[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.Itoa(int(v))
	}
	return ""
}

// Start loops Run on the interval until the context is cancelled.
func Start(ctx context.Context, interval time.Duration, w *Worker) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Run(ctx); err != nil {
				log.Printf("notify worker error: %v", err)
			}
		}
	}
}
