package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vinay71-re/MEDBUD/internal/models"
	"github.com/vinay71-re/MEDBUD/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const doctorSelect = `
	SELECT d.doctor_id, d.user_id, p.full_name, d.specialization, d.consultation_fee,
		d.experience_years, d.education, d.bio, d.active,
		c.clinic_id, c.clinic_name, c.address, c.city, c.state, c.pincode
	FROM doctors d
	JOIN profiles p ON p.user_id = d.user_id
	LEFT JOIN clinics c ON c.doctor_id = d.doctor_id`

func (s *Store) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	rows, err := s.pool.Query(ctx, doctorSelect+`
		WHERE d.active
		ORDER BY p.full_name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []models.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (s *Store) GetDoctor(ctx context.Context, doctorID string) (models.Doctor, error) {
	row := s.pool.QueryRow(ctx, doctorSelect+` WHERE d.doctor_id = $1`, doctorID)
	doctor, err := scanDoctor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Doctor{}, store.ErrDoctorNotFound
		}
		return models.Doctor{}, err
	}
	return doctor, nil
}

func (s *Store) GetDoctorByUser(ctx context.Context, userID string) (models.Doctor, error) {
	row := s.pool.QueryRow(ctx, doctorSelect+` WHERE d.user_id = $1`, userID)
	doctor, err := scanDoctor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Doctor{}, store.ErrDoctorNotFound
		}
		return models.Doctor{}, err
	}
	return doctor, nil
}

// RegisterDoctor creates the doctor row, its clinic, and flips the profile role
// in one transaction.
func (s *Store) RegisterDoctor(ctx context.Context, input store.RegisterDoctorInput) (models.Doctor, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Doctor{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	now := time.Now().UTC()
	doctorID := uuid.NewString()
	if _, err = tx.Exec(ctx, `
		INSERT INTO doctors (doctor_id, user_id, specialization, consultation_fee, experience_years, education, bio, active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,TRUE,$8)
	`, doctorID, input.UserID, input.Specialization, input.ConsultationFee,
		input.ExperienceYears, input.Education, input.Bio, now); err != nil {
		return models.Doctor{}, err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO clinics (clinic_id, doctor_id, clinic_name, address, city, state, pincode, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, uuid.NewString(), doctorID, input.ClinicName, input.Address, input.City,
		input.State, input.Pincode, now); err != nil {
		return models.Doctor{}, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE profiles SET role = $1 WHERE user_id = $2
	`, models.RoleDoctor, input.UserID); err != nil {
		return models.Doctor{}, err
	}

	row := tx.QueryRow(ctx, doctorSelect+` WHERE d.doctor_id = $1`, doctorID)
	doctor, err := scanDoctor(row)
	if err != nil {
		return models.Doctor{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Doctor{}, err
	}
	return doctor, nil
}

func scanDoctor(row pgx.Row) (models.Doctor, error) {
	var doctor models.Doctor
	var expNull sql.NullInt64
	var educationNull, bioNull sql.NullString
	var clinicIDNull, clinicNameNull, addressNull, cityNull, stateNull, pincodeNull sql.NullString
	if err := row.Scan(&doctor.DoctorID, &doctor.UserID, &doctor.FullName, &doctor.Specialization,
		&doctor.ConsultationFee, &expNull, &educationNull, &bioNull, &doctor.Active,
		&clinicIDNull, &clinicNameNull, &addressNull, &cityNull, &stateNull, &pincodeNull); err != nil {
		return models.Doctor{}, err
	}
	if expNull.Valid {
		doctor.ExperienceYears = int(expNull.Int64)
	}
	if educationNull.Valid {
		doctor.Education = educationNull.String
	}
	if bioNull.Valid {
		doctor.Bio = bioNull.String
	}
	if clinicIDNull.Valid {
		doctor.Clinic = &models.Clinic{
			ClinicID:   clinicIDNull.String,
			ClinicName: clinicNameNull.String,
			Address:    addressNull.String,
			City:       cityNull.String,
			State:      stateNull.String,
		}
		if pincodeNull.Valid {
			doctor.Clinic.Pincode = pincodeNull.String
		}
	}
	return doctor, nil
}
