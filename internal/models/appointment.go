package models

import "time"

// Appointment is a confirmed, paid booking. One appointment yields at most one
// token; the queue side only mirrors its status.
type Appointment struct {
	AppointmentID   string    `json:"appointment_id"`
	DoctorID        string    `json:"doctor_id"`
	PatientID       string    `json:"patient_id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Symptoms        string    `json:"symptoms,omitempty"`
	PaymentStatus   string    `json:"payment_status"`
	PaymentMethod   string    `json:"payment_method"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

const (
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"

	PaymentCompleted = "completed"
)

// PatientRecord is a doctor's clinical note tied to exactly one token. Creating
// one is what moves that token to completed.
type PatientRecord struct {
	RecordID     string    `json:"record_id"`
	TokenID      string    `json:"token_id"`
	DoctorID     string    `json:"doctor_id"`
	PatientID    string    `json:"patient_id"`
	Diagnosis    string    `json:"diagnosis,omitempty"`
	Prescription string    `json:"prescription,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	TokenNumber  int       `json:"token_number,omitempty"`
	TokenDate    string    `json:"token_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
