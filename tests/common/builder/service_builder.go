//go:build unit || e2e

package builder

import (
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/service"

	"github.com/google/uuid"
)

type ServiceBuilder struct {
	ID              uuid.UUID
	OrganiserID     *uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	PriceMinor      *int64
	Published       bool
}

func NewServiceBuilder(organiserID uuid.UUID) *ServiceBuilder {
	return &ServiceBuilder{
		ID:              uuid.New(),
		OrganiserID:     &organiserID,
		Name:            "Consultation",
		Description:     "One-to-one session",
		DurationMinutes: 30,
		Published:       true,
	}
}

func (b *ServiceBuilder) WithDuration(minutes int) *ServiceBuilder {
	b.DurationMinutes = minutes
	return b
}

func (b *ServiceBuilder) WithPrice(minor int64) *ServiceBuilder {
	b.PriceMinor = &minor
	return b
}

func (b *ServiceBuilder) Unpublished() *ServiceBuilder {
	b.Published = false
	return b
}

func (b *ServiceBuilder) WithoutOrganiser() *ServiceBuilder {
	b.OrganiserID = nil
	return b
}

func (b *ServiceBuilder) BuildDomain() *service.Service {
	now := time.Now()
	return service.ReconstructService(b.ID, b.OrganiserID, b.Name, b.Description, b.DurationMinutes,
		b.PriceMinor, b.Published, now, now)
}

// WeekBuilder assembles a weekly schedule. Days use 0=Monday.
type WeekBuilder struct {
	organiserID uuid.UUID
	entries     []schedule.Entry
	err         error
}

func NewWeekBuilder(organiserID uuid.UUID) *WeekBuilder {
	return &WeekBuilder{organiserID: organiserID}
}

func (b *WeekBuilder) Open(day int, start, end string) *WeekBuilder {
	return b.add(day, start, end, false)
}

func (b *WeekBuilder) Closed(day int) *WeekBuilder {
	return b.add(day, "00:00", "00:00", true)
}

// Weekdays opens Monday to Friday with the same window.
func (b *WeekBuilder) Weekdays(start, end string) *WeekBuilder {
	for day := 0; day < 5; day++ {
		b.Open(day, start, end)
	}
	return b
}

func (b *WeekBuilder) add(day int, start, end string, closed bool) *WeekBuilder {
	if b.err != nil {
		return b
	}
	e, err := schedule.NewEntry(day, start, end, closed)
	if err != nil {
		b.err = err
		return b
	}
	b.entries = append(b.entries, e)
	return b
}

func (b *WeekBuilder) Build() (*schedule.Week, error) {
	if b.err != nil {
		return nil, b.err
	}
	return schedule.NewWeek(b.organiserID, b.entries)
}
