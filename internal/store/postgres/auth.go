package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vinay71-re/MEDBUD/internal/models"
	"github.com/vinay71-re/MEDBUD/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

func (s *Store) Signup(ctx context.Context, input store.SignupInput) (models.Profile, models.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Profile{}, models.Session{}, err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Profile{}, models.Session{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	role := input.Role
	if role == "" {
		role = models.RolePatient
	}

	var profile models.Profile
	row := tx.QueryRow(ctx, `
		INSERT INTO profiles (user_id, full_name, email, phone, role, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING user_id, full_name, email, phone, role, created_at
	`, uuid.NewString(), input.FullName, strings.ToLower(input.Email), input.Phone, role, string(hash), time.Now().UTC())
	if err = row.Scan(&profile.UserID, &profile.FullName, &profile.Email, &profile.Phone, &profile.Role, &profile.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			err = store.ErrEmailTaken
		}
		return models.Profile{}, models.Session{}, err
	}

	session, err := createSessionTx(ctx, tx, profile.UserID, profile.Role)
	if err != nil {
		return models.Profile{}, models.Session{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Profile{}, models.Session{}, err
	}
	return profile, session, nil
}

func (s *Store) Login(ctx context.Context, email, password string) (models.Profile, models.Session, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Profile{}, models.Session{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var profile models.Profile
	var passwordHash string
	row := tx.QueryRow(ctx, `
		SELECT user_id, full_name, email, phone, role, password_hash, created_at
		FROM profiles
		WHERE email = $1
	`, strings.ToLower(email))
	if err = row.Scan(&profile.UserID, &profile.FullName, &profile.Email, &profile.Phone,
		&profile.Role, &passwordHash, &profile.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrInvalidCredentials
		}
		return models.Profile{}, models.Session{}, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		err = store.ErrInvalidCredentials
		return models.Profile{}, models.Session{}, err
	}

	session, err := createSessionTx(ctx, tx, profile.UserID, profile.Role)
	if err != nil {
		return models.Profile{}, models.Session{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Profile{}, models.Session{}, err
	}
	return profile, session, nil
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	var session models.Session
	row := s.pool.QueryRow(ctx, `
		SELECT s.session_id, s.user_id, p.role, s.expires_at
		FROM sessions s
		JOIN profiles p ON p.user_id = s.user_id
		WHERE s.session_id = $1 AND s.expires_at > NOW()
	`, sessionID)
	if err := row.Scan(&session.SessionID, &session.UserID, &session.Role, &session.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, store.ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

func createSessionTx(ctx context.Context, tx pgx.Tx, userID, role string) (models.Session, error) {
	session := models.Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().UTC().Add(sessionTTL),
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO sessions (session_id, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, session.SessionID, session.UserID, session.ExpiresAt, time.Now().UTC())
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}
