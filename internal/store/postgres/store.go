package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/vinay71-re/MEDBUD/internal/models"
	"github.com/vinay71-re/MEDBUD/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) BookAppointment(ctx context.Context, input store.BookAppointmentInput) (models.Appointment, models.Token, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Appointment{}, models.Token{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = ensureDoctorExists(ctx, tx, input.DoctorID); err != nil {
		return models.Appointment{}, models.Token{}, err
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	appointmentID := uuid.NewString()

	var appointment models.Appointment
	row := tx.QueryRow(ctx, `
		INSERT INTO appointments (
			appointment_id, doctor_id, patient_id, appointment_date, appointment_time,
			symptoms, payment_status, payment_method, status, created_at
		) VALUES ($1,$2,$3,$4::date,$5,$6,$7,$8,$9,$10)
		RETURNING appointment_id, doctor_id, patient_id, appointment_date::text, appointment_time,
			symptoms, payment_status, payment_method, status, created_at
	`, appointmentID, input.DoctorID, input.PatientID, input.AppointmentDate, input.AppointmentTime,
		input.Symptoms, models.PaymentCompleted, input.PaymentMethod, models.AppointmentConfirmed, createdAt)
	if err = row.Scan(&appointment.AppointmentID, &appointment.DoctorID, &appointment.PatientID,
		&appointment.AppointmentDate, &appointment.AppointmentTime, &appointment.Symptoms,
		&appointment.PaymentStatus, &appointment.PaymentMethod, &appointment.Status, &appointment.CreatedAt); err != nil {
		return models.Appointment{}, models.Token{}, err
	}

	token, err := issueTokenTx(ctx, tx, store.IssueTokenInput{
		DoctorID:      input.DoctorID,
		PatientID:     input.PatientID,
		AppointmentID: appointmentID,
		TokenDate:     input.AppointmentDate,
		TokenType:     models.TokenTypeAppointment,
		EstimatedTime: input.AppointmentTime,
		CreatedAt:     createdAt,
	})
	if err != nil {
		return models.Appointment{}, models.Token{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Appointment{}, models.Token{}, err
	}
	return appointment, token, nil
}

func (s *Store) IssueToken(ctx context.Context, input store.IssueTokenInput) (models.Token, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Token{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = ensureDoctorExists(ctx, tx, input.DoctorID); err != nil {
		return models.Token{}, err
	}

	token, err := issueTokenTx(ctx, tx, input)
	if err != nil {
		return models.Token{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Token{}, err
	}
	return token, nil
}

// issueTokenTx allocates the next number and persists the token in one
// transaction, so two concurrent bookings can never observe the same maximum.
// The unique constraint on (doctor_id, token_date, token_number) backstops the
// counter; a violation gets one retry before surfacing ErrDuplicateToken.
func issueTokenTx(ctx context.Context, tx pgx.Tx, input store.IssueTokenInput) (models.Token, error) {
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var token models.Token
	var insertErr error
	for attempt := 0; attempt < 2; attempt++ {
		seq, err := nextTokenNumber(ctx, tx, input.DoctorID, input.TokenDate)
		if err != nil {
			return models.Token{}, err
		}
		// Savepoint so a constraint violation does not poison the enclosing
		// transaction before the retry.
		sp, err := tx.Begin(ctx)
		if err != nil {
			return models.Token{}, err
		}
		token, insertErr = insertToken(ctx, sp, input, seq, createdAt)
		if insertErr == nil {
			if err = sp.Commit(ctx); err != nil {
				return models.Token{}, err
			}
			break
		}
		_ = sp.Rollback(ctx)
		var pgErr *pgconn.PgError
		if !errors.As(insertErr, &pgErr) || pgErr.Code != uniqueViolation {
			return models.Token{}, insertErr
		}
	}
	if insertErr != nil {
		return models.Token{}, store.ErrDuplicateToken
	}

	if err := insertTokenOutbox(ctx, tx, "token.issued", token); err != nil {
		return models.Token{}, err
	}
	return token, nil
}

func nextTokenNumber(ctx context.Context, tx pgx.Tx, doctorID, tokenDate string) (int, error) {
	var next int
	row := tx.QueryRow(ctx, `
		INSERT INTO token_sequences (doctor_id, token_date, next_number)
		VALUES ($1, $2::date, 1)
		ON CONFLICT (doctor_id, token_date)
		DO UPDATE SET next_number = token_sequences.next_number + 1
		RETURNING next_number
	`, doctorID, tokenDate)
	if err := row.Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

func insertToken(ctx context.Context, tx pgx.Tx, input store.IssueTokenInput, seq int, createdAt time.Time) (models.Token, error) {
	tokenID := uuid.NewString()
	var token models.Token
	var patientIDNull, estimatedNull sql.NullString
	var delayNull sql.NullInt64
	row := tx.QueryRow(ctx, `
		INSERT INTO tokens (
			token_id, doctor_id, patient_id, appointment_id, token_number, token_date,
			token_type, status, estimated_time, priority, created_at
		) VALUES ($1,$2,$3,$4,$5,$6::date,$7,$8,$9,$10,$11)
		RETURNING token_id, doctor_id, patient_id, appointment_id, token_number, token_date::text,
			token_type, status, estimated_time, delay_minutes, priority, created_at
	`, tokenID, input.DoctorID, nullIfEmpty(input.PatientID), nullIfEmpty(input.AppointmentID), seq,
		input.TokenDate, input.TokenType, models.StatusWaiting, nullIfEmpty(input.EstimatedTime),
		input.Priority, createdAt)
	var appointmentIDNull sql.NullString
	if err := row.Scan(&token.TokenID, &token.DoctorID, &patientIDNull, &appointmentIDNull,
		&token.TokenNumber, &token.TokenDate, &token.TokenType, &token.Status,
		&estimatedNull, &delayNull, &token.Priority, &token.CreatedAt); err != nil {
		return models.Token{}, err
	}
	token.PatientID = nullStringPtr(patientIDNull)
	token.AppointmentID = nullStringPtr(appointmentIDNull)
	token.EstimatedTime = nullStringPtr(estimatedNull)
	token.DelayMinutes = nullIntPtr(delayNull)
	return token, nil
}

func (s *Store) GetToken(ctx context.Context, tokenID string) (models.Token, error) {
	row := s.pool.QueryRow(ctx, tokenSelect+` WHERE token_id = $1`, tokenID)
	token, err := scanToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Token{}, store.ErrTokenNotFound
		}
		return models.Token{}, err
	}
	return token, nil
}

func (s *Store) ListDayTokens(ctx context.Context, doctorID, tokenDate string) ([]models.Token, error) {
	rows, err := s.pool.Query(ctx, tokenSelect+`
		WHERE doctor_id = $1 AND token_date = $2::date
		ORDER BY token_number ASC
	`, doctorID, tokenDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTokens(rows)
}

func (s *Store) ListPatientTokens(ctx context.Context, patientID, status string) ([]models.Token, error) {
	query := tokenSelect + ` WHERE patient_id = $1`
	args := []interface{}{patientID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY token_date DESC, token_number ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTokens(rows)
}

func (s *Store) CallToken(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error) {
	return s.updateTokenStatus(ctx, input, "call", "called_at")
}

func (s *Store) CompleteToken(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error) {
	return s.updateTokenStatus(ctx, input, "complete", "completed_at")
}

func (s *Store) CancelToken(ctx context.Context, input store.TokenActionInput) (models.Token, store.QueueStats, error) {
	return s.updateTokenStatus(ctx, input, "cancel", "")
}

// updateTokenStatus is the only path that mutates a token's status. The
// conditional UPDATE carries the expected from-status so a stale or terminal
// token can never be moved; the refreshed day stats come back from the same
// transaction.
func (s *Store) updateTokenStatus(ctx context.Context, input store.TokenActionInput, action, timestampColumn string) (models.Token, store.QueueStats, error) {
	fromStatus, toStatus, ok := transitionEdge(action)
	if !ok {
		return models.Token{}, store.QueueStats{}, store.ErrInvalidState
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Token{}, store.QueueStats{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	updateQuery := `UPDATE tokens SET status = $1, updated_at = $2`
	args := []interface{}{toStatus, occurredAt}
	if timestampColumn != "" {
		updateQuery += ", " + timestampColumn + " = $2"
	}
	updateQuery += ` WHERE token_id = $3 AND doctor_id = $4 AND status = $5`
	args = append(args, input.TokenID, input.DoctorID, fromStatus)
	updateQuery += ` RETURNING token_id, doctor_id, patient_id, appointment_id, token_number, token_date::text,
		token_type, status, estimated_time, delay_minutes, priority, created_at, called_at, completed_at`

	row := tx.QueryRow(ctx, updateQuery, args...)
	token, err := scanToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			var current string
			stateRow := tx.QueryRow(ctx, `
				SELECT TRUE, status FROM tokens WHERE token_id = $1 AND doctor_id = $2
			`, input.TokenID, input.DoctorID)
			if scanErr := stateRow.Scan(&exists, &current); scanErr != nil {
				if errors.Is(scanErr, pgx.ErrNoRows) {
					err = store.ErrTokenNotFound
					return models.Token{}, store.QueueStats{}, err
				}
				err = scanErr
				return models.Token{}, store.QueueStats{}, err
			}
			err = store.ErrInvalidState
			return models.Token{}, store.QueueStats{}, err
		}
		return models.Token{}, store.QueueStats{}, err
	}

	// Terminal token statuses are mirrored onto the appointment.
	if token.AppointmentID != nil {
		var apptStatus string
		switch token.Status {
		case models.StatusCompleted:
			apptStatus = models.AppointmentCompleted
		case models.StatusCancelled:
			apptStatus = models.AppointmentCancelled
		}
		if apptStatus != "" {
			if _, err = tx.Exec(ctx, `
				UPDATE appointments SET status = $1, updated_at = $2 WHERE appointment_id = $3
			`, apptStatus, occurredAt, *token.AppointmentID); err != nil {
				return models.Token{}, store.QueueStats{}, err
			}
		}
	}

	if err = insertTokenOutbox(ctx, tx, "token."+toStatus, token); err != nil {
		return models.Token{}, store.QueueStats{}, err
	}

	stats, err := dayStatsTx(ctx, tx, token.DoctorID, token.TokenDate)
	if err != nil {
		return models.Token{}, store.QueueStats{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Token{}, store.QueueStats{}, err
	}
	return token, stats, nil
}

// RecordCompletion writes the clinical note and completes the token as one
// transaction: either both land or neither does.
func (s *Store) RecordCompletion(ctx context.Context, input store.RecordCompletionInput) (models.PatientRecord, models.Token, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.PatientRecord{}, models.Token{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx, tokenSelect+`
		WHERE doctor_id = $1 AND patient_id = $2 AND token_date = $3::date AND status = $4
		ORDER BY token_number DESC
		LIMIT 1
		FOR UPDATE
	`, input.DoctorID, input.PatientID, input.TokenDate, models.StatusInProgress)
	token, err := scanToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrNoActiveToken
		}
		return models.PatientRecord{}, models.Token{}, err
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var record models.PatientRecord
	recordRow := tx.QueryRow(ctx, `
		INSERT INTO patient_records (record_id, token_id, doctor_id, patient_id, diagnosis, prescription, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING record_id, token_id, doctor_id, patient_id, diagnosis, prescription, notes, created_at
	`, uuid.NewString(), token.TokenID, input.DoctorID, input.PatientID,
		input.Diagnosis, input.Prescription, input.Notes, createdAt)
	if err = recordRow.Scan(&record.RecordID, &record.TokenID, &record.DoctorID, &record.PatientID,
		&record.Diagnosis, &record.Prescription, &record.Notes, &record.CreatedAt); err != nil {
		return models.PatientRecord{}, models.Token{}, err
	}
	record.TokenNumber = token.TokenNumber
	record.TokenDate = token.TokenDate

	updateRow := tx.QueryRow(ctx, `
		UPDATE tokens SET status = $1, completed_at = $2, updated_at = $2
		WHERE token_id = $3 AND status = $4
		RETURNING token_id, doctor_id, patient_id, appointment_id, token_number, token_date::text,
			token_type, status, estimated_time, delay_minutes, priority, created_at, called_at, completed_at
	`, models.StatusCompleted, createdAt, token.TokenID, models.StatusInProgress)
	token, err = scanToken(updateRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrInvalidState
		}
		return models.PatientRecord{}, models.Token{}, err
	}

	if token.AppointmentID != nil {
		if _, err = tx.Exec(ctx, `
			UPDATE appointments SET status = $1, updated_at = $2 WHERE appointment_id = $3
		`, models.AppointmentCompleted, createdAt, *token.AppointmentID); err != nil {
			return models.PatientRecord{}, models.Token{}, err
		}
	}

	if err = insertTokenOutbox(ctx, tx, "token.completed", token); err != nil {
		return models.PatientRecord{}, models.Token{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.PatientRecord{}, models.Token{}, err
	}
	return record, token, nil
}

func (s *Store) ListPatientRecords(ctx context.Context, doctorID, patientID string) ([]models.PatientRecord, error) {
	query := `
		SELECT r.record_id, r.token_id, r.doctor_id, r.patient_id, r.diagnosis, r.prescription, r.notes,
			t.token_number, t.token_date::text, r.created_at
		FROM patient_records r
		JOIN tokens t ON t.token_id = r.token_id
	`
	var args []interface{}
	switch {
	case doctorID != "" && patientID != "":
		query += ` WHERE r.doctor_id = $1 AND r.patient_id = $2`
		args = append(args, doctorID, patientID)
	case doctorID != "":
		query += ` WHERE r.doctor_id = $1`
		args = append(args, doctorID)
	case patientID != "":
		query += ` WHERE r.patient_id = $1`
		args = append(args, patientID)
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.PatientRecord
	for rows.Next() {
		var record models.PatientRecord
		if err := rows.Scan(&record.RecordID, &record.TokenID, &record.DoctorID, &record.PatientID,
			&record.Diagnosis, &record.Prescription, &record.Notes,
			&record.TokenNumber, &record.TokenDate, &record.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT appointment_id, doctor_id, patient_id, appointment_date::text, appointment_time,
			symptoms, payment_status, payment_method, status, created_at
		FROM appointments
		WHERE patient_id = $1
		ORDER BY appointment_date DESC, appointment_time ASC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []models.Appointment
	for rows.Next() {
		var appointment models.Appointment
		if err := rows.Scan(&appointment.AppointmentID, &appointment.DoctorID, &appointment.PatientID,
			&appointment.AppointmentDate, &appointment.AppointmentTime, &appointment.Symptoms,
			&appointment.PaymentStatus, &appointment.PaymentMethod, &appointment.Status, &appointment.CreatedAt); err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *Store) ListTokenEvents(ctx context.Context, tokenID string) ([]store.TokenEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT token_id, token_seq, type, payload, created_at, prev_hash, hash
		FROM token_events
		WHERE token_id = $1
		ORDER BY token_seq ASC
	`, tokenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []store.TokenEvent
	for rows.Next() {
		var event store.TokenEvent
		if err := rows.Scan(&event.TokenID, &event.TokenSeq, &event.Type, &event.Payload,
			&event.CreatedAt, &event.PrevHash, &event.Hash); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) ListOutboxEvents(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT event_id, type, payload, created_at
		FROM outbox_events
		WHERE created_at > $1
		ORDER BY created_at ASC
		LIMIT $2
	`, after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []store.OutboxEvent
	for rows.Next() {
		var event store.OutboxEvent
		if err := rows.Scan(&event.EventID, &event.Type, &event.Payload, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func transitionEdge(action string) (string, string, bool) {
	toStatus, ok := store.TargetStatus(action)
	if !ok {
		return "", "", false
	}
	var fromStatus string
	switch action {
	case "call", "cancel":
		fromStatus = models.StatusWaiting
	case "complete":
		fromStatus = models.StatusInProgress
	default:
		return "", "", false
	}
	if !store.ValidTransition(action, fromStatus) {
		return "", "", false
	}
	return fromStatus, toStatus, true
}

func dayStatsTx(ctx context.Context, tx pgx.Tx, doctorID, tokenDate string) (store.QueueStats, error) {
	rows, err := tx.Query(ctx, tokenSelect+`
		WHERE doctor_id = $1 AND token_date = $2::date
		ORDER BY token_number ASC
	`, doctorID, tokenDate)
	if err != nil {
		return store.QueueStats{}, err
	}
	defer rows.Close()
	tokens, err := scanTokens(rows)
	if err != nil {
		return store.QueueStats{}, err
	}
	return store.ComputeQueueStats(tokens), nil
}

func ensureDoctorExists(ctx context.Context, tx pgx.Tx, doctorID string) error {
	var exists bool
	row := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM doctors WHERE doctor_id = $1 AND active)
	`, doctorID)
	if err := row.Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return store.ErrDoctorNotFound
	}
	return nil
}

func insertTokenOutbox(ctx context.Context, tx pgx.Tx, eventType string, token models.Token) error {
	payload := map[string]interface{}{
		"token_id":     token.TokenID,
		"doctor_id":    token.DoctorID,
		"patient_id":   token.PatientID,
		"token_number": token.TokenNumber,
		"token_date":   token.TokenDate,
		"token_type":   token.TokenType,
		"status":       token.Status,
		"created_at":   token.CreatedAt,
		"called_at":    token.CalledAt,
		"completed_at": token.CompletedAt,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO outbox_events (event_id, type, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), eventType, payloadJSON, time.Now().UTC())
	if err != nil {
		return err
	}
	return insertTokenEvent(ctx, tx, token.TokenID, eventType, payloadJSON)
}

func insertTokenEvent(ctx context.Context, tx pgx.Tx, tokenID, eventType string, payload []byte) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, tokenID); err != nil {
		return err
	}

	var lastSeq int
	var prevHash sql.NullString
	row := tx.QueryRow(ctx, `
		SELECT token_seq, hash
		FROM token_events
		WHERE token_id = $1
		ORDER BY token_seq DESC
		LIMIT 1
		FOR UPDATE
	`, tokenID)
	if err := row.Scan(&lastSeq, &prevHash); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	nextSeq := lastSeq + 1
	prev := ""
	if prevHash.Valid {
		prev = prevHash.String
	}
	// Postgres keeps microsecond precision; truncate so the stored timestamp
	// reproduces the exact hash on verification.
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	hash := store.ComputeTokenEventHash(prev, tokenID, eventType, payload, createdAt, nextSeq)

	_, err := tx.Exec(ctx, `
		INSERT INTO token_events (token_id, token_seq, type, payload, created_at, prev_hash, hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, tokenID, nextSeq, eventType, payload, createdAt, prev, hash)
	return err
}

const tokenSelect = `
	SELECT token_id, doctor_id, patient_id, appointment_id, token_number, token_date::text,
		token_type, status, estimated_time, delay_minutes, priority, created_at, called_at, completed_at
	FROM tokens`

func scanToken(row pgx.Row) (models.Token, error) {
	var token models.Token
	var patientIDNull, appointmentIDNull, estimatedNull sql.NullString
	var delayNull sql.NullInt64
	var calledAtNull, completedAtNull sql.NullTime
	if err := row.Scan(&token.TokenID, &token.DoctorID, &patientIDNull, &appointmentIDNull,
		&token.TokenNumber, &token.TokenDate, &token.TokenType, &token.Status,
		&estimatedNull, &delayNull, &token.Priority, &token.CreatedAt,
		&calledAtNull, &completedAtNull); err != nil {
		return models.Token{}, err
	}
	token.PatientID = nullStringPtr(patientIDNull)
	token.AppointmentID = nullStringPtr(appointmentIDNull)
	token.EstimatedTime = nullStringPtr(estimatedNull)
	token.DelayMinutes = nullIntPtr(delayNull)
	token.CalledAt = nullTimePtr(calledAtNull)
	token.CompletedAt = nullTimePtr(completedAtNull)
	return token, nil
}

func scanTokens(rows pgx.Rows) ([]models.Token, error) {
	var tokens []models.Token
	for rows.Next() {
		token, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func nullIntPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	return &value.Time
}
