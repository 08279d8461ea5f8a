package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"parkspot/internal/db"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(database *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: database}
}

func (r *ProfileRepository) Create(ctx context.Context, p *db.Profile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO profiles (id, email, name, phone, vehicle_plate, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		p.ID, p.Email, p.Name, p.Phone, p.VehiclePlate, p.PasswordHash, p.IsAdmin,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: email '%s' is already registered", ErrDuplicateEntry, p.Email)
		}
		return fmt.Errorf("ProfileRepository.Create: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*db.Profile, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*db.Profile, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *ProfileRepository) get(ctx context.Context, where string, arg interface{}) (*db.Profile, error) {
	var p db.Profile
	var name, phone, plate sql.NullString
	query := `
		SELECT id, email, name, phone, vehicle_plate, password_hash, is_admin, created_at, updated_at
		FROM profiles ` + where
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.Email, &name, &phone, &plate, &p.PasswordHash, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ProfileRepository.get: %w", err)
	}
	p.Name = name.String
	p.Phone = phone.String
	p.VehiclePlate = plate.String
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *db.Profile) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE profiles SET name = $1, phone = $2, vehicle_plate = $3, updated_at = NOW()
		WHERE id = $4`,
		p.Name, p.Phone, p.VehiclePlate, p.ID)
	if err != nil {
		return fmt.Errorf("ProfileRepository.Update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ProfileRepository.Update (rows affected): %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE profiles SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return fmt.Errorf("ProfileRepository.UpdatePassword: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ProfileRepository.UpdatePassword (rows affected): %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
