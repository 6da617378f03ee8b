package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vinay71-re/MEDBUD/internal/models"
)

type BookAppointmentInput struct {
	DoctorID        string
	PatientID       string
	AppointmentDate string
	AppointmentTime string
	Symptoms        string
	PaymentMethod   string
	CreatedAt       time.Time
}

type IssueTokenInput struct {
	DoctorID      string
	PatientID     string
	AppointmentID string
	TokenDate     string
	TokenType     string
	EstimatedTime string
	Priority      bool
	CreatedAt     time.Time
}

type TokenActionInput struct {
	TokenID    string
	DoctorID   string
	OccurredAt time.Time
}

type RecordCompletionInput struct {
	DoctorID     string
	PatientID    string
	TokenDate    string
	Diagnosis    string
	Prescription string
	Notes        string
	CreatedAt    time.Time
}

type SignupInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     string
}

type RegisterDoctorInput struct {
	UserID          string
	Specialization  string
	ConsultationFee int
	ExperienceYears int
	Education       string
	Bio             string
	ClinicName      string
	Address         string
	City            string
	State           string
	Pincode         string
}

// QueueStore is the boundary between the queue manager and persistence. Token
// numbering and status arbitration live behind it; callers never compute
// either themselves.
type QueueStore interface {
	BookAppointment(ctx context.Context, input BookAppointmentInput) (models.Appointment, models.Token, error)
	IssueToken(ctx context.Context, input IssueTokenInput) (models.Token, error)
	GetToken(ctx context.Context, tokenID string) (models.Token, error)
	ListDayTokens(ctx context.Context, doctorID, tokenDate string) ([]models.Token, error)
	CallToken(ctx context.Context, input TokenActionInput) (models.Token, QueueStats, error)
	CompleteToken(ctx context.Context, input TokenActionInput) (models.Token, QueueStats, error)
	CancelToken(ctx context.Context, input TokenActionInput) (models.Token, QueueStats, error)
	RecordCompletion(ctx context.Context, input RecordCompletionInput) (models.PatientRecord, models.Token, error)
	ListPatientRecords(ctx context.Context, doctorID, patientID string) ([]models.PatientRecord, error)
	ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListPatientTokens(ctx context.Context, patientID, status string) ([]models.Token, error)
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, doctorID string) (models.Doctor, error)
	GetDoctorByUser(ctx context.Context, userID string) (models.Doctor, error)
	RegisterDoctor(ctx context.Context, input RegisterDoctorInput) (models.Doctor, error)
	ListTokenEvents(ctx context.Context, tokenID string) ([]TokenEvent, error)
	ListOutboxEvents(ctx context.Context, after time.Time, limit int) ([]OutboxEvent, error)
}

// AuthStore covers signup, login, and session lookup for the middleware.
type AuthStore interface {
	Signup(ctx context.Context, input SignupInput) (models.Profile, models.Session, error)
	Login(ctx context.Context, email, password string) (models.Profile, models.Session, error)
	GetSession(ctx context.Context, sessionID string) (models.Session, error)
}

type OutboxEvent struct {
	EventID   string          `json:"event_id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
