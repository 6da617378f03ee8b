package models

import "time"

type Doctor struct {
	DoctorID        string  `json:"doctor_id"`
	UserID          string  `json:"user_id"`
	FullName        string  `json:"full_name"`
	Specialization  string  `json:"specialization"`
	ConsultationFee int     `json:"consultation_fee"`
	ExperienceYears int     `json:"experience_years,omitempty"`
	Education       string  `json:"education,omitempty"`
	Bio             string  `json:"bio,omitempty"`
	Active          bool    `json:"active"`
	Clinic          *Clinic `json:"clinic,omitempty"`
}

type Clinic struct {
	ClinicID   string `json:"clinic_id"`
	DoctorID   string `json:"doctor_id,omitempty"`
	ClinicName string `json:"clinic_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Pincode    string `json:"pincode,omitempty"`
}

type Profile struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
