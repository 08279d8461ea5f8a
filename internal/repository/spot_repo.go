package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"parkspot/internal/db"
	"parkspot/internal/entities"
)

type SpotRepository struct {
	DB *sql.DB
}

func NewSpotRepository(database *sql.DB) *SpotRepository {
	return &SpotRepository{DB: database}
}

func (r *SpotRepository) Create(ctx context.Context, spot *db.ParkingSpot) error {
	if spot.ID == "" {
		spot.ID = uuid.New().String()
	}
	if spot.Status == "" {
		spot.Status = db.SpotAvailable
	}
	query := `
		INSERT INTO parking_spots (id, parking_complex, spot_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, spot.ID, spot.ParkingComplex, spot.SpotID, spot.Status).
		Scan(&spot.CreatedAt, &spot.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: spot '%s' already exists in complex '%s'", ErrDuplicateEntry, spot.SpotID, spot.ParkingComplex)
		}
		return fmt.Errorf("SpotRepository.Create: %w", err)
	}
	return nil
}

// BulkCreate seeds a complex with spots labelled A01..Ann, all available.
func (r *SpotRepository) BulkCreate(ctx context.Context, complex string, count int) ([]db.ParkingSpot, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("SpotRepository.BulkCreate (begin): %w", err)
	}
	defer tx.Rollback()

	spots := make([]db.ParkingSpot, 0, count)
	for i := 1; i <= count; i++ {
		spot := db.ParkingSpot{
			ID:             uuid.New().String(),
			ParkingComplex: complex,
			SpotID:         fmt.Sprintf("A%02d", i),
			Status:         db.SpotAvailable,
		}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO parking_spots (id, parking_complex, spot_id, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING created_at, updated_at`,
			spot.ID, spot.ParkingComplex, spot.SpotID, spot.Status,
		).Scan(&spot.CreatedAt, &spot.UpdatedAt)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
				return nil, fmt.Errorf("%w: complex '%s' already has spot '%s'", ErrDuplicateEntry, complex, spot.SpotID)
			}
			return nil, fmt.Errorf("SpotRepository.BulkCreate: %w", err)
		}
		spots = append(spots, spot)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("SpotRepository.BulkCreate (commit): %w", err)
	}
	return spots, nil
}

func (r *SpotRepository) List(ctx context.Context, complex string) ([]db.ParkingSpot, error) {
	query := `
		SELECT id, parking_complex, spot_id, status, created_at, updated_at
		FROM parking_spots
		WHERE parking_complex = $1
		ORDER BY spot_id`
	rows, err := r.DB.QueryContext(ctx, query, complex)
	if err != nil {
		return nil, fmt.Errorf("SpotRepository.List: %w", err)
	}
	defer rows.Close()

	var spots []db.ParkingSpot
	for rows.Next() {
		var s db.ParkingSpot
		if err := rows.Scan(&s.ID, &s.ParkingComplex, &s.SpotID, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("SpotRepository.List (scan): %w", err)
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SpotRepository.List (rows): %w", err)
	}
	return spots, nil
}

func (r *SpotRepository) Get(ctx context.Context, complex, spotID string) (*db.ParkingSpot, error) {
	var s db.ParkingSpot
	query := `
		SELECT id, parking_complex, spot_id, status, created_at, updated_at
		FROM parking_spots
		WHERE parking_complex = $1 AND spot_id = $2`
	err := r.DB.QueryRowContext(ctx, query, complex, spotID).
		Scan(&s.ID, &s.ParkingComplex, &s.SpotID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("SpotRepository.Get: %w", err)
	}
	return &s, nil
}

func (r *SpotRepository) GetByID(ctx context.Context, id string) (*db.ParkingSpot, error) {
	var s db.ParkingSpot
	query := `
		SELECT id, parking_complex, spot_id, status, created_at, updated_at
		FROM parking_spots
		WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.ParkingComplex, &s.SpotID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("SpotRepository.GetByID: %w", err)
	}
	return &s, nil
}

// UpdateStatus is a plain overwrite, last writer wins.
func (r *SpotRepository) UpdateStatus(ctx context.Context, complex, spotID, status string) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE parking_spots SET status = $1, updated_at = NOW()
		WHERE parking_complex = $2 AND spot_id = $3`,
		status, complex, spotID)
	if err != nil {
		return fmt.Errorf("SpotRepository.UpdateStatus: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("SpotRepository.UpdateStatus (rows affected): %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SpotRepository) UpdateStatusByID(ctx context.Context, id, status string) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE parking_spots SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("SpotRepository.UpdateStatusByID: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("SpotRepository.UpdateStatusByID (rows affected): %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SpotRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM parking_spots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("SpotRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("SpotRepository.Delete (rows affected): %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RenameComplex renames a complex everywhere it appears: spots, reservations,
// feeds and definitions, in one transaction.
func (r *SpotRepository) RenameComplex(ctx context.Context, oldName, newName string) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("SpotRepository.RenameComplex (begin): %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE parking_spots SET parking_complex = $1, updated_at = NOW() WHERE parking_complex = $2`,
		newName, oldName)
	if err != nil {
		return 0, fmt.Errorf("SpotRepository.RenameComplex (spots): %w", err)
	}
	renamed, _ := result.RowsAffected()
	if renamed == 0 {
		return 0, ErrNotFound
	}
	for _, table := range []string{"reservations", "video_feeds", "spot_definitions"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`UPDATE %s SET parking_complex = $1, updated_at = NOW() WHERE parking_complex = $2`, table),
			newName, oldName); err != nil {
			return 0, fmt.Errorf("SpotRepository.RenameComplex (%s): %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("SpotRepository.RenameComplex (commit): %w", err)
	}
	return renamed, nil
}

func (r *SpotRepository) ListComplexes(ctx context.Context) ([]entities.ComplexSummary, error) {
	query := `
		SELECT parking_complex,
		       COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'available') AS available,
		       COUNT(*) FILTER (WHERE status = 'reserved') AS reserved,
		       COUNT(*) FILTER (WHERE status = 'occupied') AS occupied
		FROM parking_spots
		GROUP BY parking_complex
		ORDER BY parking_complex`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("SpotRepository.ListComplexes: %w", err)
	}
	defer rows.Close()

	var complexes []entities.ComplexSummary
	for rows.Next() {
		var c entities.ComplexSummary
		if err := rows.Scan(&c.Name, &c.Total, &c.Available, &c.Reserved, &c.Occupied); err != nil {
			return nil, fmt.Errorf("SpotRepository.ListComplexes (scan): %w", err)
		}
		complexes = append(complexes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SpotRepository.ListComplexes (rows): %w", err)
	}
	return complexes, nil
}
