package service

import (
	"context"
	"fmt"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	"parkspot/internal/repository"
)

// In-memory stands-ins for the Postgres repositories.

type fakeReservationStore struct {
	rows       []db.Reservation
	spots      *fakeSpotStore // when set, Create mirrors the transactional spot flip
	createErr  error
	deletedIDs []string
}

func (f *fakeReservationStore) Create(_ context.Context, res *db.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.spots != nil {
		spot, ok := f.spots.spots[res.ParkingComplex+"/"+res.SpotID]
		if !ok {
			return repository.ErrNotFound
		}
		spot.Status = db.SpotReserved
	}
	res.ID = fmt.Sprintf("res-%d", len(f.rows)+1)
	f.rows = append(f.rows, *res)
	return nil
}

func (f *fakeReservationStore) GetByID(_ context.Context, id string) (*db.Reservation, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeReservationStore) ListByUser(_ context.Context, userID string) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeReservationStore) List(_ context.Context, _ repository.ReservationFilter) ([]db.Reservation, error) {
	return f.rows, nil
}

func (f *fakeReservationStore) UpdateStatus(_ context.Context, id, status string) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeReservationStore) Delete(_ context.Context, id string, _ bool) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			f.deletedIDs = append(f.deletedIDs, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeSpotStore struct {
	spots         map[string]*db.ParkingSpot // key complex/spotID
	statusUpdates []string                   // "complex/spotID=status"
}

func newFakeSpotStore() *fakeSpotStore {
	return &fakeSpotStore{spots: make(map[string]*db.ParkingSpot)}
}

func (f *fakeSpotStore) add(complex, spotID, status string) {
	key := complex + "/" + spotID
	f.spots[key] = &db.ParkingSpot{
		ID:             key,
		ParkingComplex: complex,
		SpotID:         spotID,
		Status:         status,
	}
}

func (f *fakeSpotStore) Create(_ context.Context, spot *db.ParkingSpot) error {
	key := spot.ParkingComplex + "/" + spot.SpotID
	if _, ok := f.spots[key]; ok {
		return repository.ErrDuplicateEntry
	}
	spot.ID = key
	f.spots[key] = spot
	return nil
}

func (f *fakeSpotStore) BulkCreate(_ context.Context, complex string, count int) ([]db.ParkingSpot, error) {
	var out []db.ParkingSpot
	for i := 1; i <= count; i++ {
		spot := db.ParkingSpot{
			ParkingComplex: complex,
			SpotID:         fmt.Sprintf("A%02d", i),
			Status:         db.SpotAvailable,
		}
		f.add(complex, spot.SpotID, spot.Status)
		out = append(out, spot)
	}
	return out, nil
}

func (f *fakeSpotStore) List(_ context.Context, complex string) ([]db.ParkingSpot, error) {
	var out []db.ParkingSpot
	for _, spot := range f.spots {
		if spot.ParkingComplex == complex {
			out = append(out, *spot)
		}
	}
	return out, nil
}

func (f *fakeSpotStore) Get(_ context.Context, complex, spotID string) (*db.ParkingSpot, error) {
	if spot, ok := f.spots[complex+"/"+spotID]; ok {
		copied := *spot
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSpotStore) GetByID(_ context.Context, id string) (*db.ParkingSpot, error) {
	for _, spot := range f.spots {
		if spot.ID == id {
			copied := *spot
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSpotStore) UpdateStatus(_ context.Context, complex, spotID, status string) error {
	spot, ok := f.spots[complex+"/"+spotID]
	if !ok {
		return repository.ErrNotFound
	}
	spot.Status = status
	f.statusUpdates = append(f.statusUpdates, complex+"/"+spotID+"="+status)
	return nil
}

func (f *fakeSpotStore) UpdateStatusByID(_ context.Context, id, status string) error {
	for key, spot := range f.spots {
		if spot.ID == id {
			spot.Status = status
			f.statusUpdates = append(f.statusUpdates, key+"="+status)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeSpotStore) Delete(_ context.Context, id string) error {
	for key, spot := range f.spots {
		if spot.ID == id {
			delete(f.spots, key)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeSpotStore) RenameComplex(_ context.Context, oldName, newName string) (int64, error) {
	var n int64
	for _, spot := range f.spots {
		if spot.ParkingComplex == oldName {
			spot.ParkingComplex = newName
			n++
		}
	}
	return n, nil
}

func (f *fakeSpotStore) ListComplexes(_ context.Context) ([]entities.ComplexSummary, error) {
	byName := map[string]*entities.ComplexSummary{}
	for _, spot := range f.spots {
		summary, ok := byName[spot.ParkingComplex]
		if !ok {
			summary = &entities.ComplexSummary{Name: spot.ParkingComplex}
			byName[spot.ParkingComplex] = summary
		}
		summary.Total++
		switch spot.Status {
		case db.SpotAvailable:
			summary.Available++
		case db.SpotReserved:
			summary.Reserved++
		case db.SpotOccupied:
			summary.Occupied++
		}
	}
	var out []entities.ComplexSummary
	for _, summary := range byName {
		out = append(out, *summary)
	}
	return out, nil
}

type fakeProfileStore struct {
	profiles map[string]*db.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*db.Profile)}
}

func (f *fakeProfileStore) Create(_ context.Context, p *db.Profile) error {
	for _, existing := range f.profiles {
		if existing.Email == p.Email {
			return repository.ErrDuplicateEntry
		}
	}
	p.ID = fmt.Sprintf("user-%d", len(f.profiles)+1)
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileStore) GetByEmail(_ context.Context, email string) (*db.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfileStore) GetByID(_ context.Context, id string) (*db.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfileStore) Update(_ context.Context, p *db.Profile) error {
	if _, ok := f.profiles[p.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *p
	f.profiles[p.ID] = &copied
	return nil
}

func (f *fakeProfileStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	p, ok := f.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.PasswordHash = passwordHash
	return nil
}

type fakeHub struct {
	updates []db.ParkingSpot
}

func (f *fakeHub) BroadcastSpotUpdate(spot db.ParkingSpot) {
	f.updates = append(f.updates, spot)
}
