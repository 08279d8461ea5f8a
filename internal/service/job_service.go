package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"parkspot/internal/repository"
)

// JobService keeps stored reservation statuses and the spot registry in step
// with wall-clock time. Derived status is what every read shows; this job only
// refreshes the stored convenience value and frees spots whose reservations
// have run out.
type JobService struct {
	Repo repository.SyncStore

	now func() time.Time
}

func NewJobService(repo repository.SyncStore) *JobService {
	return &JobService{Repo: repo, now: time.Now}
}

// SyncReservationStatuses recomputes the status of every unfinished
// reservation and persists the ones that changed. Rows with unparsable times
// are skipped, not failed.
func (s *JobService) SyncReservationStatuses(ctx context.Context) error {
	reservations, err := s.Repo.ListUnfinished(ctx)
	if err != nil {
		return fmt.Errorf("sync job: failed to list unfinished reservations: %w", err)
	}
	if len(reservations) == 0 {
		return nil
	}

	now := s.now()
	changed := map[string][]string{}
	for _, res := range reservations {
		derived, err := DeriveStatus(now, res.Date, res.Time, res.Duration)
		if err != nil {
			log.Printf("Sync job: reservation %s has unparsable time %q, skipping", res.ID, res.Time)
			continue
		}
		if derived != res.Status {
			changed[derived] = append(changed[derived], res.ID)
		}
	}

	for status, ids := range changed {
		updated, err := s.Repo.UpdateStatuses(ctx, ids, status)
		if err != nil {
			return fmt.Errorf("sync job: failed to update reservation statuses to '%s': %w", status, err)
		}
		log.Printf("Sync job: marked %d reservations as '%s'", updated, status)
	}
	return nil
}

// ReleaseExpiredSpots frees reserved spots that no upcoming or live
// reservation backs anymore. Runs after the status sync so the stored values
// it queries are fresh.
func (s *JobService) ReleaseExpiredSpots(ctx context.Context) error {
	released, err := s.Repo.ReleaseUnbackedSpots(ctx)
	if err != nil {
		return fmt.Errorf("sync job: failed to release expired spots: %w", err)
	}
	if released > 0 {
		log.Printf("Sync job: released %d spots back to 'available'", released)
	}
	return nil
}

// Run executes one full synchronization pass.
func (s *JobService) Run(ctx context.Context) {
	if err := s.SyncReservationStatuses(ctx); err != nil {
		log.Printf("Sync job: %v", err)
		return
	}
	if err := s.ReleaseExpiredSpots(ctx); err != nil {
		log.Printf("Sync job: %v", err)
	}
}
