package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"parkspot/internal/db"
)

type SyncRepository struct {
	DB *sql.DB
}

func NewSyncRepository(database *sql.DB) *SyncRepository {
	return &SyncRepository{DB: database}
}

// ListUnfinished returns reservations whose stored status may still change.
// Rows marked past are terminal only once their date has gone by; until then
// they stay in the sync set so a premature override gets re-derived instead of
// freeing the spot early.
func (r *SyncRepository) ListUnfinished(ctx context.Context) ([]db.Reservation, error) {
	query := `
		SELECT id, user_id, parking_complex, spot_id, vehicle_plate, date, time, duration, status, created_at, updated_at
		FROM reservations
		WHERE status <> 'past' OR date >= to_char(CURRENT_DATE, 'YYYY-MM-DD')
		ORDER BY date, time`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying unfinished reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// UpdateStatuses persists one derived status to a batch of reservations.
func (r *SyncRepository) UpdateStatuses(ctx context.Context, ids []string, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.DB.ExecContext(ctx, `
		UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		status, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error updating reservation statuses: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
		return 0, nil
	}
	return affected, nil
}

// ReleaseUnbackedSpots frees every reserved spot that no upcoming or live
// reservation still claims. Relies on stored statuses, so callers should sync
// them first.
func (r *SyncRepository) ReleaseUnbackedSpots(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE parking_spots ps
		SET status = 'available', updated_at = NOW()
		WHERE ps.status = 'reserved'
		  AND NOT EXISTS (
			SELECT 1 FROM reservations res
			WHERE res.parking_complex = ps.parking_complex
			  AND res.spot_id = ps.spot_id
			  AND res.status IN ('upcoming', 'live')
		  )`)
	if err != nil {
		return 0, fmt.Errorf("error releasing unbacked spots: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
		return 0, nil
	}
	return affected, nil
}
