package services

import (
	"context"
	"strings"
	"time"

	"github.com/faressmahmoud/DeliciousBites-RMS/database"
	"github.com/faressmahmoud/DeliciousBites-RMS/kds"
	"github.com/faressmahmoud/DeliciousBites-RMS/models"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
)

const (
	maxPartySize       = 20
	reservationConfirm = "confirmed"
	reservationCancel  = "cancelled"
	reservationSeated  = "seated"
)

var reservationStatuses = map[string]bool{
	reservationConfirm: true,
	reservationCancel:  true,
	reservationSeated:  true,
}

type ReservationService struct {
	reservations *database.ReservationStore
	events       kds.Publisher
	now          func() time.Time
}

func NewReservationService(reservations *database.ReservationStore, events kds.Publisher) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		events:       events,
		now:          time.Now,
	}
}

type ReservationInput struct {
	UserID    *uint
	Name      string
	Phone     string
	PartySize int
	Date      string
	Time      string
	Status    string
}

func validateReservation(in ReservationInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		return utils.Validation("Name and phone are required")
	}
	if in.PartySize <= 0 || in.PartySize > maxPartySize {
		return utils.Validation("Party size must be between 1 and %d", maxPartySize)
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return utils.Validation("Date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return utils.Validation("Time must be in HH:MM format")
	}
	if in.Status != "" && !reservationStatuses[in.Status] {
		return utils.Validation("Invalid reservation status '%s'", in.Status)
	}
	return nil
}

func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	if err := validateReservation(in); err != nil {
		return nil, err
	}
	r := &models.Reservation{
		UserID:    in.UserID,
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		PartySize: in.PartySize,
		Date:      in.Date,
		Time:      in.Time,
		Status:    reservationConfirm,
	}
	if err := s.reservations.Create(ctx, r); err != nil {
		return nil, err
	}
	s.events.Publish(kds.ReservationCreatedEvent(*r))
	return r, nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.reservations.Get(ctx, id)
}

func (s *ReservationService) ListForUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return s.reservations.List(ctx, &userID)
}

func (s *ReservationService) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return s.reservations.List(ctx, nil)
}

// Upcoming lists confirmed reservations from today on, for the reception dine-in board.
func (s *ReservationService) Upcoming(ctx context.Context) ([]models.Reservation, error) {
	return s.reservations.ListFrom(ctx, s.now().Format("2006-01-02"))
}

// Update replaces the editable fields. Empty fields keep their stored value.
func (s *ReservationService) Update(ctx context.Context, id uint, in ReservationInput) (*models.Reservation, error) {
	r, err := s.reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := ReservationInput{
		UserID:    r.UserID,
		Name:      r.Name,
		Phone:     r.Phone,
		PartySize: r.PartySize,
		Date:      r.Date,
		Time:      r.Time,
		Status:    r.Status,
	}
	if in.Name != "" {
		merged.Name = in.Name
	}
	if in.Phone != "" {
		merged.Phone = in.Phone
	}
	if in.PartySize != 0 {
		merged.PartySize = in.PartySize
	}
	if in.Date != "" {
		merged.Date = in.Date
	}
	if in.Time != "" {
		merged.Time = in.Time
	}
	if in.Status != "" {
		merged.Status = strings.ToLower(in.Status)
	}
	if err := validateReservation(merged); err != nil {
		return nil, err
	}

	r.Name = strings.TrimSpace(merged.Name)
	r.Phone = strings.TrimSpace(merged.Phone)
	r.PartySize = merged.PartySize
	r.Date = merged.Date
	r.Time = merged.Time
	r.Status = merged.Status
	if err := s.reservations.Save(ctx, r); err != nil {
		return nil, err
	}
	s.events.Publish(kds.ReservationUpdatedEvent(*r))
	return r, nil
}

func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	if err := s.reservations.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(kds.ReservationDeletedEvent(id))
	return nil
}
