package service

import (
	"strings"
	"time"

	"appointment-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidName     = errs.Mark(errs.New("service name must be 1-200 characters"), errs.ErrValidation)
	ErrInvalidDuration = errs.Mark(errs.New("duration_minutes must be between 1 and 1440"), errs.ErrValidation)
	ErrInvalidPrice    = errs.Mark(errs.New("price must not be negative"), errs.ErrValidation)
	ErrDescriptionLong = errs.Mark(errs.New("description must be at most 2000 characters"), errs.ErrValidation)
)

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
	DefaultDuration      = 30
	maxDurationMinutes   = 24 * 60
)

// Service is something an organiser offers for booking.
type Service struct {
	id              uuid.UUID
	organiserID     *uuid.UUID
	name            string
	description     string
	durationMinutes int
	priceMinor      *int64
	published       bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewService(organiserID uuid.UUID, name, description string, durationMinutes int, priceMinor *int64, published bool, now time.Time) (*Service, error) {
	s := &Service{
		id:          uuid.New(),
		organiserID: &organiserID,
		createdAt:   now,
	}
	if err := s.apply(name, description, durationMinutes, priceMinor, published, now); err != nil {
		return nil, err
	}
	return s, nil
}

func ReconstructService(id uuid.UUID, organiserID *uuid.UUID, name, description string, durationMinutes int, priceMinor *int64, published bool, createdAt, updatedAt time.Time) *Service {
	return &Service{
		id:              id,
		organiserID:     organiserID,
		name:            name,
		description:     description,
		durationMinutes: durationMinutes,
		priceMinor:      priceMinor,
		published:       published,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Update replaces every mutable field; callers merge partial input first.
func (s *Service) Update(name, description string, durationMinutes int, priceMinor *int64, published bool, now time.Time) error {
	return s.apply(name, description, durationMinutes, priceMinor, published, now)
}

func (s *Service) apply(name, description string, durationMinutes int, priceMinor *int64, published bool, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > MaxNameLength {
		return ErrInvalidName
	}
	description = strings.TrimSpace(description)
	if len([]rune(description)) > MaxDescriptionLength {
		return ErrDescriptionLong
	}
	if durationMinutes <= 0 || durationMinutes > maxDurationMinutes {
		return ErrInvalidDuration
	}
	if priceMinor != nil && *priceMinor < 0 {
		return ErrInvalidPrice
	}
	s.name = name
	s.description = description
	s.durationMinutes = durationMinutes
	s.priceMinor = priceMinor
	s.published = published
	s.updatedAt = now
	return nil
}

func (s *Service) ID() uuid.UUID           { return s.id }
func (s *Service) OrganiserID() *uuid.UUID { return s.organiserID }
func (s *Service) Name() string            { return s.name }
func (s *Service) Description() string     { return s.description }
func (s *Service) DurationMinutes() int    { return s.durationMinutes }
func (s *Service) PriceMinor() *int64      { return s.priceMinor }
func (s *Service) IsPublished() bool       { return s.published }
func (s *Service) CreatedAt() time.Time    { return s.createdAt }
func (s *Service) UpdatedAt() time.Time    { return s.updatedAt }

func (s *Service) Duration() time.Duration {
	return time.Duration(s.durationMinutes) * time.Minute
}

// Bookable services are published and still owned by an organiser.
func (s *Service) Bookable() bool {
	return s.published && s.organiserID != nil
}

func (s *Service) OwnedBy(userID uuid.UUID) bool {
	return s.organiserID != nil && *s.organiserID == userID
}
