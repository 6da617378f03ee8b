package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vinay71-re/MEDBUD/internal/models"
	"github.com/vinay71-re/MEDBUD/internal/store"
)

const (
	testDoctorID      = "11111111-1111-1111-1111-111111111111"
	testPatientID     = "22222222-2222-2222-2222-222222222222"
	testTokenID       = "33333333-3333-3333-3333-333333333333"
	testDoctorUserID  = "44444444-4444-4444-4444-444444444444"
	doctorSessionID   = "doctor-session"
	patientSessionID  = "patient-session"
)

type fakeStore struct {
	bookFn       func(ctx context.Context, input store.BookAppointmentInput) (models.Appointment, models.Token, error)
	issueFn      func(ctx context.Context, input store.IssueTokenInput) (models.Token, error)
	getTokenFn   func(ctx context.Context, tokenID string) (models.Token, error)
	listDayFn    func(ctx context.Context, doctorID, tokenDate string) ([]models.Token, error)
	callFn       func(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error)
	completeFn   func(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error)
	cancelFn     func(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error)
	recordFn     func(ctx context.Context, input store.RecordCompletionInput) (models.PatientRecord, models.Token, error)
	recordsFn    func(ctx context.Context, doctorID, patientID string) ([]models.PatientRecord, error)
	apptsFn      func(ctx context.Context, patientID string) ([]models.Appointment, error)
	myTokensFn   func(ctx context.Context, patientID, status string) ([]models.Token, error)
	doctorsFn    func(ctx context.Context) ([]models.Doctor, error)
	getDoctorFn  func(ctx context.Context, doctorID string) (models.Doctor, error)
	byUserFn     func(ctx context.Context, userID string) (models.Doctor, error)
	registerFn   func(ctx context.Context, input store.RegisterDoctorInput) (models.Doctor, error)
	eventsFn     func(ctx context.Context, tokenID string) ([]store.TokenEvent, error)
	outboxFn     func(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error)
}

func (f fakeStore) BookAppointment(ctx context.Context, input store.BookAppointmentInput) (models.Appointment, models.Token, error) {
	if f.bookFn == nil {
		return models.Appointment{}, models.Token{}, nil
	}
	return f.bookFn(ctx, input)
}

func (f fakeStore) IssueToken(ctx context.Context, input store.IssueTokenInput) (models.Token, error) {
	if f.issueFn == nil {
		return models.Token{}, nil
	}
	return f.issueFn(ctx, input)
}

func (f fakeStore) GetToken(ctx context.Context, tokenID string) (models.Token, error) {
	if f.getTokenFn == nil {
		return models.Token{}, nil
	}
	return f.getTokenFn(ctx, tokenID)
}

func (f fakeStore) ListDayTokens(ctx context.Context, doctorID, tokenDate string) ([]models.Token, error) {
	if f.listDayFn == nil {
		return nil, nil
	}
	return f.listDayFn(ctx, doctorID, tokenDate)
}

func (f fakeStore) CallToken(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error) {
	if f.callFn == nil {
		return models.Token{}, store.QueueStats{}, nil
	}
	return f.callFn(ctx, input)
}

func (f fakeStore) CompleteToken(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error) {
	if f.completeFn == nil {
		return models.Token{}, store.QueueStats{}, nil
	}
	return f.completeFn(ctx, input)
}

func (f fakeStore) CancelToken(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error) {
	if f.cancelFn == nil {
		return models.Token{}, store.QueueStats{}, nil
	}
	return f.cancelFn(ctx, input)
}

func (f fakeStore) RecordCompletion(ctx context.Context, input store.RecordCompletionInput) (models.PatientRecord, models.Token, error) {
	if f.recordFn == nil {
		return models.PatientRecord{}, models.Token{}, nil
	}
	return f.recordFn(ctx, input)
}

func (f fakeStore) ListPatientRecords(ctx context.Context, doctorID, patientID string) ([]models.PatientRecord, error) {
	if f.recordsFn == nil {
		return nil, nil
	}
	return f.recordsFn(ctx, doctorID, patientID)
}

func (f fakeStore) ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	if f.apptsFn == nil {
		return nil, nil
	}
	return f.apptsFn(ctx, patientID)
}

func (f fakeStore) ListPatientTokens(ctx context.Context, patientID, status string) ([]models.Token, error) {
	if f.myTokensFn == nil {
		return nil, nil
	}
	return f.myTokensFn(ctx, patientID, status)
}

func (f fakeStore) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	if f.doctorsFn == nil {
		return nil, nil
	}
	return f.doctorsFn(ctx)
}

func (f fakeStore) GetDoctor(ctx context.Context, doctorID string) (models.Doctor, error) {
	if f.getDoctorFn == nil {
		return models.Doctor{}, nil
	}
	return f.getDoctorFn(ctx, doctorID)
}

func (f fakeStore) GetDoctorByUser(ctx context.Context, userID string) (models.Doctor, error) {
	if f.byUserFn == nil {
		return models.Doctor{DoctorID: testDoctorID, UserID: userID}, nil
	}
	return f.byUserFn(ctx, userID)
}

func (f fakeStore) RegisterDoctor(ctx context.Context, input store.RegisterDoctorInput) (models.Doctor, error) {
	if f.registerFn == nil {
		return models.Doctor{}, nil
	}
	return f.registerFn(ctx, input)
}

func (f fakeStore) ListTokenEvents(ctx context.Context, tokenID string) ([]store.TokenEvent, error) {
	if f.eventsFn == nil {
		return nil, nil
	}
	return f.eventsFn(ctx, tokenID)
}

func (f fakeStore) ListOutboxEvents(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error) {
	if f.outboxFn == nil {
		return nil, nil
	}
	return f.outboxFn(ctx, after, limit)
}

type fakeAuth struct {
	signupFn func(ctx context.Context, input store.SignupInput) (models.Profile, models.Session, error)
	loginFn  func(ctx context.Context, email, password string) (models.Profile, models.Session, error)
}

func (f fakeAuth) Signup(ctx context.Context, input store.SignupInput) (models.Profile, models.Session, error) {
	if f.signupFn == nil {
		return models.Profile{}, models.Session{}, nil
	}
	return f.signupFn(ctx, input)
}

func (f fakeAuth) Login(ctx context.Context, email, password string) (models.Profile, models.Session, error) {
	if f.loginFn == nil {
		return models.Profile{}, models.Session{}, nil
	}
	return f.loginFn(ctx, email, password)
}

func (f fakeAuth) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	switch sessionID {
	case doctorSessionID:
		return models.Session{SessionID: sessionID, UserID: testDoctorUserID, Role: models.RoleDoctor, ExpiresAt: time.Now().Add(time.Hour)}, nil
	case patientSessionID:
		return models.Session{SessionID: sessionID, UserID: testPatientID, Role: models.RolePatient, ExpiresAt: time.Now().Add(time.Hour)}, nil
	}
	return models.Session{}, store.ErrSessionNotFound
}

func doRequest(h *Handler, method, path, sessionID string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	if sessionID != "" {
		req.Header.Set("Authorization", "Bearer "+sessionID)
	}
	resp := httptest.NewRecorder()
	h.Routes().ServeHTTP(resp, req)
	return resp
}

func TestIssueTokenSuccess(t *testing.T) {
	st := fakeStore{
		issueFn: func(ctx context.Context, input store.IssueTokenInput) (models.Token, error) {
			if input.DoctorID != testDoctorID {
				t.Fatalf("doctor_id not resolved from session: %s", input.DoctorID)
			}
			if input.TokenType != models.TokenTypeWalkIn {
				t.Fatalf("token_type=%s, want walk_in", input.TokenType)
			}
			return models.Token{TokenID: testTokenID, TokenNumber: 5, Status: models.StatusWaiting}, nil
		},
	}
	h := NewHandler(st, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/tokens", doctorSessionID, map[string]string{
		"token_date": "2026-03-14",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var token models.Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if token.TokenNumber != 5 || token.Status != models.StatusWaiting {
		t.Fatalf("unexpected token: %+v", token)
	}
}

func TestIssueTokenRequiresDoctorRole(t *testing.T) {
	h := NewHandler(fakeStore{}, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/tokens", patientSessionID, map[string]string{})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestIssueTokenBadDate(t *testing.T) {
	h := NewHandler(fakeStore{}, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/tokens", doctorSessionID, map[string]string{
		"token_date": "14-03-2026",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestQueueReturnsStats(t *testing.T) {
	st := fakeStore{
		listDayFn: func(ctx context.Context, doctorID, tokenDate string) ([]models.Token, error) {
			return []models.Token{
				{TokenNumber: 1, Status: models.StatusCompleted},
				{TokenNumber: 2, Status: models.StatusInProgress},
				{TokenNumber: 3, Status: models.StatusWaiting},
			}, nil
		},
	}
	h := NewHandler(st, fakeAuth{})

	resp := doRequest(h, http.MethodGet, "/api/queue?date=2026-03-14", doctorSessionID, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out queueResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Stats.Total != 3 || out.Stats.Completed != 1 || out.Stats.Waiting != 1 {
		t.Fatalf("unexpected stats: %+v", out.Stats)
	}
}

func TestTokenActionInvalidState(t *testing.T) {
	st := fakeStore{
		completeFn: func(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error) {
			return models.Token{}, store.QueueStats{}, store.ErrInvalidState
		},
	}
	h := NewHandler(st, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/tokens/"+testTokenID+"/actions/complete", doctorSessionID, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestTokenActionUnknown(t *testing.T) {
	h := NewHandler(fakeStore{}, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/tokens/"+testTokenID+"/actions/recall", doctorSessionID, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestTokenActionNotFound(t *testing.T) {
	st := fakeStore{
		callFn: func(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error) {
			return models.Token{}, store.QueueStats{}, store.ErrTokenNotFound
		},
	}
	h := NewHandler(st, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/tokens/"+testTokenID+"/actions/call", doctorSessionID, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestRecordCompletionNoActiveToken(t *testing.T) {
	st := fakeStore{
		recordFn: func(ctx context.Context, input store.RecordCompletionInput) (models.PatientRecord, models.Token, error) {
			return models.PatientRecord{}, models.Token{}, store.ErrNoActiveToken
		},
	}
	h := NewHandler(st, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/records", doctorSessionID, map[string]string{
		"patient_id": testPatientID,
		"token_date": "2026-03-14",
		"diagnosis":  "seasonal flu",
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestBookAppointmentSuccess(t *testing.T) {
	st := fakeStore{
		bookFn: func(ctx context.Context, input store.BookAppointmentInput) (models.Appointment, models.Token, error) {
			if input.PatientID != testPatientID {
				t.Fatalf("patient_id not resolved from session: %s", input.PatientID)
			}
			return models.Appointment{AppointmentID: "appt-1", Status: models.AppointmentConfirmed},
				models.Token{TokenID: testTokenID, TokenNumber: 1, Status: models.StatusWaiting}, nil
		},
	}
	h := NewHandler(st, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/appointments", patientSessionID, map[string]string{
		"doctor_id":        testDoctorID,
		"appointment_date": "2026-03-14",
		"appointment_time": "10:30",
		"symptoms":         "fever",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out bookAppointmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token.TokenNumber != 1 || out.Appointment.Status != models.AppointmentConfirmed {
		t.Fatalf("unexpected booking response: %+v", out)
	}
}

func TestBookAppointmentBadPaymentMethod(t *testing.T) {
	h := NewHandler(fakeStore{}, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/appointments", patientSessionID, map[string]string{
		"doctor_id":        testDoctorID,
		"appointment_date": "2026-03-14",
		"appointment_time": "10:30",
		"payment_method":   "cheque",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestBookAppointmentDoctorNotFound(t *testing.T) {
	st := fakeStore{
		bookFn: func(ctx context.Context, input store.BookAppointmentInput) (models.Appointment, models.Token, error) {
			return models.Appointment{}, models.Token{}, store.ErrDoctorNotFound
		},
	}
	h := NewHandler(st, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/appointments", patientSessionID, map[string]string{
		"doctor_id":        testDoctorID,
		"appointment_date": "2026-03-14",
		"appointment_time": "10:30",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestSignupShortPassword(t *testing.T) {
	h := NewHandler(fakeStore{}, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"full_name": "Asha Rao",
		"email":     "asha@example.com",
		"password":  "short",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := fakeAuth{
		loginFn: func(ctx context.Context, email, password string) (models.Profile, models.Session, error) {
			return models.Profile{}, models.Session{}, store.ErrInvalidCredentials
		},
	}
	h := NewHandler(fakeStore{}, auth)

	resp := doRequest(h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "wrongpassword",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestMissingBearerRejected(t *testing.T) {
	h := NewHandler(fakeStore{}, fakeAuth{})

	resp := doRequest(h, http.MethodGet, "/api/queue", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestDoctorListIsPublic(t *testing.T) {
	st := fakeStore{
		doctorsFn: func(ctx context.Context) ([]models.Doctor, error) {
			return []models.Doctor{{DoctorID: testDoctorID, FullName: "Dr. Mehta"}}, nil
		},
	}
	h := NewHandler(st, fakeAuth{})

	resp := doRequest(h, http.MethodGet, "/api/doctors", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var doctors []models.Doctor
	if err := json.NewDecoder(resp.Body).Decode(&doctors); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(doctors) != 1 || doctors[0].FullName != "Dr. Mehta" {
		t.Fatalf("unexpected doctors: %+v", doctors)
	}
}

func TestUnknownJSONFieldRejected(t *testing.T) {
	h := NewHandler(fakeStore{}, fakeAuth{})

	resp := doRequest(h, http.MethodPost, "/api/tokens", doctorSessionID, map[string]string{
		"token_date": "2026-03-14",
		"surprise":   "field",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}
