package httpapi

import (
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vinay71-re/MEDBUD/internal/models"
	"github.com/vinay71-re/MEDBUD/internal/store"

	"github.com/google/uuid"
)

type Handler struct {
	queue store.QueueStore
	auth  store.AuthStore
}

func NewHandler(queue store.QueueStore, auth store.AuthStore) *Handler {
	return &Handler{queue: queue, auth: auth}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/api/auth/signup", h.handleSignup)
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/auth/me", h.handleMe)
	mux.HandleFunc("/api/doctors", h.handleDoctors)
	mux.HandleFunc("/api/doctors/", h.handleDoctorByID)
	mux.HandleFunc("/api/appointments", h.handleAppointments)
	mux.HandleFunc("/api/tokens", h.handleTokens)
	mux.HandleFunc("/api/tokens/", h.handleTokenSubroutes)
	mux.HandleFunc("/api/queue", h.handleQueue)
	mux.HandleFunc("/api/records", h.handleRecords)
	mux.HandleFunc("/api/events", h.handleEvents)
	return AuthMiddleware(h.auth, mux)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	SessionID string         `json:"session_id"`
	ExpiresAt string         `json:"expires_at"`
	User      models.Profile `json:"user"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "full_name, email, and password are required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "password must be at least 8 characters")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "email is not valid")
		return
	}

	profile, session, err := h.auth.Signup(r.Context(), store.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     models.RolePatient,
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, r, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		SessionID: session.SessionID,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		User:      profile,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	profile, session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, r, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		SessionID: session.SessionID,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		User:      profile,
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := sessionFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type registerDoctorRequest struct {
	Specialization  string `json:"specialization"`
	ConsultationFee int    `json:"consultation_fee"`
	ExperienceYears int    `json:"experience_years"`
	Education       string `json:"education"`
	Bio             string `json:"bio"`
	ClinicName      string `json:"clinic_name"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	Pincode         string `json:"pincode"`
}

func (h *Handler) handleDoctors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		doctors, err := h.queue.ListDoctors(r.Context())
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, r, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, doctors)
	case http.MethodPost:
		session, ok := sessionFromContext(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing session")
			return
		}

		var req registerDoctorRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Specialization = strings.TrimSpace(req.Specialization)
		req.ClinicName = strings.TrimSpace(req.ClinicName)
		req.Address = strings.TrimSpace(req.Address)
		req.City = strings.TrimSpace(req.City)
		req.State = strings.TrimSpace(req.State)
		if req.Specialization == "" || req.ClinicName == "" || req.Address == "" || req.City == "" || req.State == "" {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "specialization, clinic_name, address, city, and state are required")
			return
		}
		if req.ConsultationFee <= 0 {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "consultation_fee must be positive")
			return
		}

		doctor, err := h.queue.RegisterDoctor(r.Context(), store.RegisterDoctorInput{
			UserID:          session.UserID,
			Specialization:  req.Specialization,
			ConsultationFee: req.ConsultationFee,
			ExperienceYears: req.ExperienceYears,
			Education:       req.Education,
			Bio:             req.Bio,
			ClinicName:      req.ClinicName,
			Address:         req.Address,
			City:            req.City,
			State:           req.State,
			Pincode:         strings.TrimSpace(req.Pincode),
		})
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, r, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, doctor)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleDoctorByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	doctorID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/doctors/"), "/")
	if !isValidUUID(doctorID) {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "doctor_id must be a UUID")
		return
	}
	doctor, err := h.queue.GetDoctor(r.Context(), doctorID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, r, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, doctor)
}

type bookAppointmentRequest struct {
	DoctorID        string `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Symptoms        string `json:"symptoms"`
	PaymentMethod   string `json:"payment_method"`
}

type bookAppointmentResponse struct {
	Appointment models.Appointment `json:"appointment"`
	Token       models.Token       `json:"token"`
}

func (h *Handler) handleAppointments(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req bookAppointmentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.DoctorID = strings.TrimSpace(req.DoctorID)
		req.AppointmentDate = strings.TrimSpace(req.AppointmentDate)
		req.AppointmentTime = strings.TrimSpace(req.AppointmentTime)
		req.PaymentMethod = strings.TrimSpace(req.PaymentMethod)

		if req.DoctorID == "" || req.AppointmentDate == "" || req.AppointmentTime == "" {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "doctor_id, appointment_date, and appointment_time are required")
			return
		}
		if !isValidUUID(req.DoctorID) {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "doctor_id must be a UUID")
			return
		}
		if !isValidDate(req.AppointmentDate) {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "appointment_date must be YYYY-MM-DD")
			return
		}
		if req.PaymentMethod == "" {
			req.PaymentMethod = "card"
		}
		if !isValidPaymentMethod(req.PaymentMethod) {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "payment_method must be card, upi, or cash")
			return
		}

		appointment, token, err := h.queue.BookAppointment(r.Context(), store.BookAppointmentInput{
			DoctorID:        req.DoctorID,
			PatientID:       session.UserID,
			AppointmentDate: req.AppointmentDate,
			AppointmentTime: req.AppointmentTime,
			Symptoms:        strings.TrimSpace(req.Symptoms),
			PaymentMethod:   req.PaymentMethod,
			CreatedAt:       time.Now().UTC(),
		})
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, r, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, bookAppointmentResponse{Appointment: appointment, Token: token})
	case http.MethodGet:
		appointments, err := h.queue.ListPatientAppointments(r.Context(), session.UserID)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, r, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, appointments)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type issueTokenRequest struct {
	PatientID     string `json:"patient_id"`
	TokenDate     string `json:"token_date"`
	EstimatedTime string `json:"estimated_time"`
	Priority      bool   `json:"priority"`
}

func (h *Handler) handleTokens(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		doctor, ok := h.requireDoctor(w, r)
		if !ok {
			return
		}

		var req issueTokenRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.PatientID = strings.TrimSpace(req.PatientID)
		req.TokenDate = strings.TrimSpace(req.TokenDate)
		if req.PatientID != "" && !isValidUUID(req.PatientID) {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "patient_id must be a UUID when provided")
			return
		}
		if req.TokenDate == "" {
			req.TokenDate = today()
		}
		if !isValidDate(req.TokenDate) {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "token_date must be YYYY-MM-DD")
			return
		}

		token, err := h.queue.IssueToken(r.Context(), store.IssueTokenInput{
			DoctorID:      doctor.DoctorID,
			PatientID:     req.PatientID,
			TokenDate:     req.TokenDate,
			TokenType:     models.TokenTypeWalkIn,
			EstimatedTime: strings.TrimSpace(req.EstimatedTime),
			Priority:      req.Priority,
			CreatedAt:     time.Now().UTC(),
		})
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, r, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, token)
	case http.MethodGet:
		session, ok := sessionFromContext(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing session")
			return
		}
		status := strings.TrimSpace(r.URL.Query().Get("status"))
		tokens, err := h.queue.ListPatientTokens(r.Context(), session.UserID, status)
		if err != nil {
			statusCode, code, msg := mapError(err)
			writeError(w, r, statusCode, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, tokens)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleTokenSubroutes(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/tokens/"), "/")
	parts := strings.Split(path, "/")

	switch {
	case len(parts) == 3 && parts[1] == "actions":
		h.handleTokenAction(w, r, parts[0], parts[2])
	case len(parts) == 2 && parts[1] == "events":
		h.handleTokenEvents(w, r, parts[0])
	case len(parts) == 1:
		h.handleGetToken(w, r, parts[0])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleGetToken(w http.ResponseWriter, r *http.Request, tokenID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !isValidUUID(tokenID) {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "token_id must be a UUID")
		return
	}
	token, err := h.queue.GetToken(r.Context(), tokenID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, r, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

type tokenActionResponse struct {
	Token models.Token     `json:"token"`
	Stats store.QueueStats `json:"stats"`
}

func (h *Handler) handleTokenAction(w http.ResponseWriter, r *http.Request, tokenID, action string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !isValidUUID(tokenID) {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "token_id must be a UUID")
		return
	}
	doctor, ok := h.requireDoctor(w, r)
	if !ok {
		return
	}

	input := store.TokenActionInput{
		TokenID:    tokenID,
		DoctorID:   doctor.DoctorID,
		OccurredAt: time.Now().UTC(),
	}

	var token models.Token
	var stats store.QueueStats
	var err error
	switch action {
	case "call":
		token, stats, err = h.queue.CallToken(r.Context(), input)
	case "complete":
		token, stats, err = h.queue.CompleteToken(r.Context(), input)
	case "cancel":
		token, stats, err = h.queue.CancelToken(r.Context(), input)
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, r, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, tokenActionResponse{Token: token, Stats: stats})
}

func (h *Handler) handleTokenEvents(w http.ResponseWriter, r *http.Request, tokenID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !isValidUUID(tokenID) {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "token_id must be a UUID")
		return
	}
	if _, ok := h.requireDoctor(w, r); !ok {
		return
	}

	events, err := h.queue.ListTokenEvents(r.Context(), tokenID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, r, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

type queueResponse struct {
	Tokens []models.Token   `json:"tokens"`
	Stats  store.QueueStats `json:"stats"`
}

func (h *Handler) handleQueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	doctor, ok := h.requireDoctor(w, r)
	if !ok {
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = today()
	}
	if !isValidDate(date) {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return
	}

	tokens, err := h.queue.ListDayTokens(r.Context(), doctor.DoctorID, date)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, r, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, queueResponse{Tokens: tokens, Stats: store.ComputeQueueStats(tokens)})
}

type recordCompletionRequest struct {
	PatientID    string `json:"patient_id"`
	TokenDate    string `json:"token_date"`
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}

type recordCompletionResponse struct {
	Record models.PatientRecord `json:"record"`
	Token  models.Token         `json:"token"`
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		doctor, ok := h.requireDoctor(w, r)
		if !ok {
			return
		}

		var req recordCompletionRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.PatientID = strings.TrimSpace(req.PatientID)
		req.TokenDate = strings.TrimSpace(req.TokenDate)
		if req.PatientID == "" {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "patient_id is required")
			return
		}
		if !isValidUUID(req.PatientID) {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "patient_id must be a UUID")
			return
		}
		if req.TokenDate == "" {
			req.TokenDate = today()
		}
		if !isValidDate(req.TokenDate) {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "token_date must be YYYY-MM-DD")
			return
		}

		record, token, err := h.queue.RecordCompletion(r.Context(), store.RecordCompletionInput{
			DoctorID:     doctor.DoctorID,
			PatientID:    req.PatientID,
			TokenDate:    req.TokenDate,
			Diagnosis:    strings.TrimSpace(req.Diagnosis),
			Prescription: strings.TrimSpace(req.Prescription),
			Notes:        strings.TrimSpace(req.Notes),
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, r, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, recordCompletionResponse{Record: record, Token: token})
	case http.MethodGet:
		session, ok := sessionFromContext(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing session")
			return
		}

		var records []models.PatientRecord
		var err error
		if session.Role == models.RoleDoctor {
			var doctor models.Doctor
			doctor, err = h.queue.GetDoctorByUser(r.Context(), session.UserID)
			if err == nil {
				patientID := strings.TrimSpace(r.URL.Query().Get("patient_id"))
				if patientID != "" && !isValidUUID(patientID) {
					writeError(w, r, http.StatusBadRequest, "invalid_request", "patient_id must be a UUID")
					return
				}
				records, err = h.queue.ListPatientRecords(r.Context(), doctor.DoctorID, patientID)
			}
		} else {
			records, err = h.queue.ListPatientRecords(r.Context(), "", session.UserID)
		}
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, r, status, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, records)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := h.requireDoctor(w, r); !ok {
		return
	}

	afterRaw := strings.TrimSpace(r.URL.Query().Get("after"))
	var after time.Time
	if afterRaw != "" {
		parsed, err := time.Parse(time.RFC3339, afterRaw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "after must be RFC3339 timestamp")
			return
		}
		after = parsed
	}

	limit := 100
	if limitRaw := strings.TrimSpace(r.URL.Query().Get("limit")); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil || parsed <= 0 {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	events, err := h.queue.ListOutboxEvents(r.Context(), after, limit)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, r, status, code, msg)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// requireDoctor resolves the calling session to its doctor row; non-doctor
// sessions get a 403.
func (h *Handler) requireDoctor(w http.ResponseWriter, r *http.Request) (models.Doctor, bool) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing session")
		return models.Doctor{}, false
	}
	if session.Role != models.RoleDoctor {
		writeError(w, r, http.StatusForbidden, "access_denied", "doctor role required")
		return models.Doctor{}, false
	}
	doctor, err := h.queue.GetDoctorByUser(r.Context(), session.UserID)
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, r, status, code, msg)
		return models.Doctor{}, false
	}
	return doctor, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return false
	}
	return true
}

func isValidUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

func isValidDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func isValidPaymentMethod(value string) bool {
	switch value {
	case "card", "upi", "cash":
		return true
	}
	return false
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, store.ErrDoctorNotFound):
		return http.StatusNotFound, "doctor_not_found", "doctor not found"
	case errors.Is(err, store.ErrAppointmentNotFound):
		return http.StatusNotFound, "appointment_not_found", "appointment not found"
	case errors.Is(err, store.ErrTokenNotFound):
		return http.StatusNotFound, "token_not_found", "token not found"
	case errors.Is(err, store.ErrInvalidState):
		return http.StatusConflict, "invalid_state", "token state does not allow this action"
	case errors.Is(err, store.ErrNoActiveToken):
		return http.StatusConflict, "no_active_token", "no in-progress token for this patient"
	case errors.Is(err, store.ErrDuplicateToken):
		return http.StatusConflict, "duplicate_token", "token number collision, retry the booking"
	case errors.Is(err, store.ErrEmailTaken):
		return http.StatusConflict, "email_taken", "email already registered"
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid credentials"
	case errors.Is(err, store.ErrSessionNotFound):
		return http.StatusUnauthorized, "unauthorized", "invalid session"
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

// writeError echoes the caller's X-Request-Id (or mints one) so clients can
// correlate failures with server logs.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-Id", requestID)
	writeJSON(w, status, errorResponse{RequestID: requestID, Error: responseError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	RequestID string        `json:"request_id"`
	Error     responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
