package models

import "time"

// Token is a patient's numbered place in a doctor's queue for one service date.
// Numbers are contiguous from 1 per (doctor, date); rows are never deleted so
// completed and cancelled tokens stay visible for the day's audit and stats.
type Token struct {
	TokenID       string     `json:"token_id"`
	DoctorID      string     `json:"doctor_id"`
	PatientID     *string    `json:"patient_id,omitempty"`
	AppointmentID *string    `json:"appointment_id,omitempty"`
	TokenNumber   int        `json:"token_number"`
	TokenDate     string     `json:"token_date"`
	TokenType     string     `json:"token_type"`
	Status        string     `json:"status"`
	EstimatedTime *string    `json:"estimated_time,omitempty"`
	DelayMinutes  *int       `json:"delay_minutes,omitempty"`
	Priority      bool       `json:"priority,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CalledAt      *time.Time `json:"called_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	TokenTypeAppointment = "appointment"
	TokenTypeWalkIn      = "walk_in"
)
