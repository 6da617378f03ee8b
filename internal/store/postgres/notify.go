package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// GetNotifyOffset returns the zero time when the worker has never run, so a
// fresh deployment replays the whole outbox.
func (s *Store) GetNotifyOffset(ctx context.Context, workerID string) (time.Time, error) {
	var last time.Time
	row := s.pool.QueryRow(ctx, `
		SELECT last_event_at FROM notify_offsets WHERE worker_id = $1
	`, workerID)
	if err := row.Scan(&last); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return last, nil
}

func (s *Store) SetNotifyOffset(ctx context.Context, workerID string, last time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notify_offsets (worker_id, last_event_at)
		VALUES ($1, $2)
		ON CONFLICT (worker_id) DO UPDATE SET last_event_at = EXCLUDED.last_event_at
	`, workerID, last)
	return err
}

// GetPatientContact fetches the phone and email for notification delivery.
func (s *Store) GetPatientContact(ctx context.Context, patientID string) (phone, email string, err error) {
	row := s.pool.QueryRow(ctx, `
		SELECT phone, email FROM profiles WHERE user_id = $1
	`, patientID)
	if err = row.Scan(&phone, &email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", nil
		}
		return "", "", err
	}
	return phone, email, nil
}
