package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"parkspot/internal/db"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

// Create inserts the reservation and marks its spot reserved. Both writes
// commit or roll back together; a reservation never exists against a spot the
// registry still shows as free.
func (r *ReservationRepository) Create(ctx context.Context, res *db.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReservationRepository.Create (begin): %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservations
			(id, user_id, parking_complex, spot_id, vehicle_plate, date, time, duration, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`,
		res.ID, res.UserID, res.ParkingComplex, res.SpotID, res.VehiclePlate,
		res.Date, res.Time, res.Duration, res.Status,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ReservationRepository.Create: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE parking_spots SET status = $1, updated_at = NOW()
		WHERE parking_complex = $2 AND spot_id = $3`,
		db.SpotReserved, res.ParkingComplex, res.SpotID)
	if err != nil {
		return fmt.Errorf("ReservationRepository.Create (reserve spot): %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ReservationRepository.Create (rows affected): %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: spot '%s' in complex '%s'", ErrNotFound, res.SpotID, res.ParkingComplex)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReservationRepository.Create (commit): %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*db.Reservation, error) {
	var res db.Reservation
	query := `
		SELECT id, user_id, parking_complex, spot_id, vehicle_plate, date, time, duration, status, created_at, updated_at
		FROM reservations WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.UserID, &res.ParkingComplex, &res.SpotID, &res.VehiclePlate,
		&res.Date, &res.Time, &res.Duration, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ReservationRepository.GetByID: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]db.Reservation, error) {
	query := `
		SELECT id, user_id, parking_complex, spot_id, vehicle_plate, date, time, duration, status, created_at, updated_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY date DESC, time DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.ListByUser: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *ReservationRepository) List(ctx context.Context, f ReservationFilter) ([]db.Reservation, error) {
	query := `
		SELECT id, user_id, parking_complex, spot_id, vehicle_plate, date, time, duration, status, created_at, updated_at
		FROM reservations
		WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if f.Date != "" {
		query += " AND date = $" + strconv.Itoa(idx)
		args = append(args, f.Date)
		idx++
	}
	if f.ParkingComplex != "" {
		query += " AND parking_complex = $" + strconv.Itoa(idx)
		args = append(args, f.ParkingComplex)
		idx++
	}
	if f.Status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, f.Status)
		idx++
	}
	query += " ORDER BY date DESC, time DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.List: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("ReservationRepository.UpdateStatus: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ReservationRepository.UpdateStatus (rows affected): %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the reservation and optionally resets its spot to available,
// atomically.
func (r *ReservationRepository) Delete(ctx context.Context, id string, releaseSpot bool) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReservationRepository.Delete (begin): %w", err)
	}
	defer tx.Rollback()

	var complex, spotID string
	err = tx.QueryRowContext(ctx, `
		DELETE FROM reservations WHERE id = $1 RETURNING parking_complex, spot_id`, id).
		Scan(&complex, &spotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ReservationRepository.Delete: %w", err)
	}

	if releaseSpot {
		if _, err := tx.ExecContext(ctx, `
			UPDATE parking_spots SET status = $1, updated_at = NOW()
			WHERE parking_complex = $2 AND spot_id = $3`,
			db.SpotAvailable, complex, spotID); err != nil {
			return fmt.Errorf("ReservationRepository.Delete (release spot): %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReservationRepository.Delete (commit): %w", err)
	}
	return nil
}

func scanReservations(rows *sql.Rows) ([]db.Reservation, error) {
	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.ParkingComplex, &res.SpotID, &res.VehiclePlate,
			&res.Date, &res.Time, &res.Duration, &res.Status, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservation rows: %w", err)
	}
	return reservations, nil
}
