package service

import (
	"context"
	"log"
	"time"

	"parkspot/internal/cache"
	"parkspot/internal/db"
	"parkspot/internal/entities"
	apierrors "parkspot/internal/errors"
	"parkspot/internal/queue"
	"parkspot/internal/repository"
)

// SpotBroadcaster pushes spot-status changes to connected clients.
type SpotBroadcaster interface {
	BroadcastSpotUpdate(spot db.ParkingSpot)
}

type ReservationService struct {
	Reservations repository.ReservationStore
	Spots        repository.SpotStore
	Profiles     repository.ProfileStore
	Cache        *cache.SpotCache
	Hub          SpotBroadcaster
	Sender       *SenderService
	AMQPURL      string

	now func() time.Time
}

func NewReservationService(reservations repository.ReservationStore, spots repository.SpotStore,
	profiles repository.ProfileStore, spotCache *cache.SpotCache, hub SpotBroadcaster,
	sender *SenderService, amqpURL string) *ReservationService {
	return &ReservationService{
		Reservations: reservations,
		Spots:        spots,
		Profiles:     profiles,
		Cache:        spotCache,
		Hub:          hub,
		Sender:       sender,
		AMQPURL:      amqpURL,
		now:          time.Now,
	}
}

// Create validates the reservation form, persists the record and reserves the
// spot. Validation short-circuits on the first failing check and nothing is
// written until every check passes; the caller's identity is checked last, at
// submit time.
func (s *ReservationService) Create(ctx context.Context, userID string, req entities.ReservationRequest) (*entities.ReservationResponse, error) {
	now := s.now()
	today := now.Format(ISODate)

	if req.VehiclePlate == "" {
		return nil, apierrors.ErrBadRequest("Please enter your vehicle plate number")
	}
	if req.Date == "" {
		return nil, apierrors.ErrBadRequest("Please select a date")
	}
	if _, err := time.Parse(ISODate, req.Date); err != nil {
		return nil, apierrors.ErrBadRequest("Invalid date, expected YYYY-MM-DD")
	}
	if req.Date < today {
		return nil, apierrors.ErrBadRequest("Reservation date cannot be in the past")
	}
	if req.Time == "" {
		return nil, apierrors.ErrBadRequest("Please select a time")
	}
	normalizedTime, err := NormalizeTime(req.Time)
	if err != nil {
		return nil, apierrors.ErrBadRequest("Invalid time, expected HH:MM")
	}
	if req.Duration == "" {
		return nil, apierrors.ErrBadRequest("Please select the duration")
	}
	if !IsAllowedDuration(req.Duration) {
		return nil, apierrors.ErrBadRequest("Invalid duration")
	}
	if userID == "" {
		return nil, apierrors.ErrUnauthorized("You must be logged in to reserve a parking spot")
	}

	// Initial stored status from the date-only branch; the sync job and every
	// read re-derive it afterwards.
	status := StatusLive
	if req.Date > today {
		status = StatusUpcoming
	}

	res := &db.Reservation{
		UserID:         userID,
		ParkingComplex: req.ParkingComplex,
		SpotID:         req.SpotID,
		VehiclePlate:   req.VehiclePlate,
		Date:           req.Date,
		Time:           normalizedTime,
		Duration:       req.Duration,
		Status:         status,
	}
	if err := s.Reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	s.afterCreate(ctx, res)

	resp := s.toResponse(now, *res)
	return &resp, nil
}

// afterCreate runs the best-effort side effects of a committed reservation:
// cache invalidation, websocket broadcast, broker event, email and SMS.
// None of them can fail the request.
func (s *ReservationService) afterCreate(ctx context.Context, res *db.Reservation) {
	s.Cache.Invalidate(ctx, res.ParkingComplex)

	if s.Hub != nil {
		if spot, err := s.Spots.Get(ctx, res.ParkingComplex, res.SpotID); err == nil {
			s.Hub.BroadcastSpotUpdate(*spot)
		}
	}

	if s.AMQPURL != "" {
		event := queue.ReservationConfirmedEvent{
			ReservationID:  res.ID,
			UserID:         res.UserID,
			ParkingComplex: res.ParkingComplex,
			SpotID:         res.SpotID,
			VehiclePlate:   res.VehiclePlate,
			Date:           res.Date,
			Time:           res.Time,
			Duration:       res.Duration,
			Status:         res.Status,
			CreatedAt:      res.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func(url string, ev queue.ReservationConfirmedEvent) {
			publishCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := queue.PublishReservationConfirmed(publishCtx, url, ev); err != nil {
				log.Printf("Reservation %s created, but event publish failed: %v", ev.ReservationID, err)
			}
		}(s.AMQPURL, event)
	}

	if s.Sender != nil && s.Profiles != nil {
		profile, err := s.Profiles.GetByID(ctx, res.UserID)
		if err != nil {
			log.Printf("Reservation %s created, but profile lookup for notification failed: %v", res.ID, err)
			return
		}
		s.Sender.SendReservationEmail(*profile, *res, "confirmed")
		s.Sender.SendReservationSMS(*profile, *res, "confirmed")
	}
}

// ListForUser buckets the caller's reservations by derived status, the
// profile-page view.
func (s *ReservationService) ListForUser(ctx context.Context, userID string) (*entities.ReservationGroups, error) {
	rows, err := s.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	groups := &entities.ReservationGroups{
		Upcoming: []entities.ReservationResponse{},
		Live:     []entities.ReservationResponse{},
		Past:     []entities.ReservationResponse{},
	}
	for _, row := range rows {
		resp := s.toResponse(now, row)
		switch resp.Status {
		case StatusUpcoming:
			groups.Upcoming = append(groups.Upcoming, resp)
		case StatusLive:
			groups.Live = append(groups.Live, resp)
		default:
			groups.Past = append(groups.Past, resp)
		}
	}
	return groups, nil
}

// Get returns a single reservation. Users may only read their own; admins may
// read any.
func (s *ReservationService) Get(ctx context.Context, userID string, isAdmin bool, id string) (*entities.ReservationResponse, error) {
	row, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && row.UserID != userID {
		return nil, apierrors.ErrForbidden("You can only view your own reservations")
	}
	resp := s.toResponse(s.now(), *row)
	return &resp, nil
}

// Cancel deletes the reservation and frees its spot. Users may only cancel
// their own reservations; admins may cancel any.
func (s *ReservationService) Cancel(ctx context.Context, userID string, isAdmin bool, id string) error {
	row, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && row.UserID != userID {
		return apierrors.ErrForbidden("You can only cancel your own reservations")
	}
	if err := s.Reservations.Delete(ctx, id, true); err != nil {
		return err
	}

	s.Cache.Invalidate(ctx, row.ParkingComplex)
	if s.Hub != nil {
		if spot, err := s.Spots.Get(ctx, row.ParkingComplex, row.SpotID); err == nil {
			s.Hub.BroadcastSpotUpdate(*spot)
		}
	}
	return nil
}

// List is the admin view: all reservations, optionally filtered, with derived
// statuses.
func (s *ReservationService) List(ctx context.Context, f repository.ReservationFilter) ([]entities.ReservationResponse, error) {
	rows, err := s.Reservations.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := s.now()
	responses := make([]entities.ReservationResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, s.toResponse(now, row))
	}
	return responses, nil
}

// UpdateStatus is the admin override for a stored status. The stored value is
// a persistence convenience only; reads keep deriving.
func (s *ReservationService) UpdateStatus(ctx context.Context, id, status string) error {
	if !IsValidStatus(status) {
		return apierrors.ErrBadRequest("Status must be one of upcoming, live, past")
	}
	return s.Reservations.UpdateStatus(ctx, id, status)
}

// toResponse recomputes the status for display. When the stored time string
// is unparsable the row keeps its last stored status and shows an Unknown
// countdown instead of failing the view.
func (s *ReservationService) toResponse(now time.Time, row db.Reservation) entities.ReservationResponse {
	status, err := DeriveStatus(now, row.Date, row.Time, row.Duration)
	remaining := ""
	if err != nil {
		status = row.Status
		remaining = UnknownRemaining
	} else if status == StatusLive {
		remaining = RemainingTime(now, row.Date, row.Time, row.Duration)
	}
	return entities.ReservationResponse{
		ID:             row.ID,
		UserID:         row.UserID,
		ParkingComplex: row.ParkingComplex,
		SpotID:         row.SpotID,
		VehiclePlate:   row.VehiclePlate,
		Date:           row.Date,
		Time:           row.Time,
		Duration:       row.Duration,
		Status:         status,
		RemainingTime:  remaining,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
