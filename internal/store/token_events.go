package store

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vinay71-re/MEDBUD/internal/models"
)

// TokenEvent is one entry in a token's append-only audit log. Each event hashes
// over its predecessor so the day's trail is tamper-evident.
type TokenEvent struct {
	TokenID   string          `json:"token_id"`
	TokenSeq  int             `json:"token_seq"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	PrevHash  string          `json:"prev_hash"`
	Hash      string          `json:"hash"`
}

type eventPayload struct {
	TokenID     string     `json:"token_id"`
	DoctorID    string     `json:"doctor_id"`
	PatientID   *string    `json:"patient_id"`
	TokenNumber int        `json:"token_number"`
	TokenDate   string     `json:"token_date"`
	TokenType   string     `json:"token_type"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"created_at"`
	CalledAt    *time.Time `json:"called_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func ComputeTokenEventHash(prevHash, tokenID, eventType string, payload json.RawMessage, createdAt time.Time, seq int) string {
	raw := fmt.Sprintf("%s|%s|%s|%s|%d|%s", prevHash, tokenID, eventType, createdAt.UTC().Format(time.RFC3339Nano), seq, payload)
	sum := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", sum)
}

// RehydrateToken folds an event sequence back into the token state it
// describes, for audit review of a day's queue.
func RehydrateToken(events []TokenEvent) (models.Token, error) {
	var token models.Token
	for _, event := range events {
		if len(event.Payload) == 0 {
			continue
		}
		var payload eventPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return models.Token{}, err
		}
		if payload.TokenID != "" {
			token.TokenID = payload.TokenID
		}
		if payload.DoctorID != "" {
			token.DoctorID = payload.DoctorID
		}
		if payload.PatientID != nil {
			token.PatientID = payload.PatientID
		}
		if payload.TokenNumber > 0 {
			token.TokenNumber = payload.TokenNumber
		}
		if payload.TokenDate != "" {
			token.TokenDate = payload.TokenDate
		}
		if payload.TokenType != "" {
			token.TokenType = payload.TokenType
		}
		if payload.Status != "" {
			token.Status = payload.Status
		}
		if payload.CreatedAt != nil {
			token.CreatedAt = *payload.CreatedAt
		}
		if payload.CalledAt != nil {
			token.CalledAt = payload.CalledAt
		}
		if payload.CompletedAt != nil {
			token.CompletedAt = payload.CompletedAt
		}
	}
	return token, nil
}
