package queries

//go:generate mockgen -source=appointment.go -destination=../../../tests/mock/queries/appointment.go -package=queries

import (
	"context"
	"time"

	"appointment-booking/internal/domain/appointment"
	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/user"
	"appointment-booking/internal/infra"
	"appointment-booking/internal/pkg/errs"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errs.Mark(errs.New("appointment not found"), errs.ErrNotFound)
	ErrAccessDenied        = errs.Mark(errs.New("access denied"), errs.ErrForbidden)
)

type AppointmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	List(ctx context.Context, filter AppointmentFilter, after *Keyset, limit int32) ([]*AppointmentView, error)
	CountByStatus(ctx context.Context, filter AppointmentFilter) (map[string]int64, error)
	ListByCustomer(ctx context.Context, customerUserID uuid.UUID, limit int32) ([]*AppointmentView, error)
}

// AppointmentListParams are the raw list filters; empty strings mean "any".
type AppointmentListParams struct {
	OrganiserID *uuid.UUID
	Status      string
	Date        string
	ServiceID   *uuid.UUID
}

type AppointmentPage struct {
	Items        []*AppointmentView `json:"items"`
	StatusCounts map[string]int64   `json:"status_counts"`
	Next         *Cursor            `json:"next,omitempty"`
}

type AppointmentQueries interface {
	Get(ctx context.Context, id uuid.UUID, actor *shared.Actor) (*AppointmentView, error)
	List(ctx context.Context, params AppointmentListParams, actor *shared.Actor, cursor *Cursor, limit int) (*AppointmentPage, error)
	ListMine(ctx context.Context, actor *shared.Actor, limit int) ([]*AppointmentView, error)
}

type appointmentQueriesImpl struct {
	repo AppointmentReadStore
	loc  *time.Location
}

func NewAppointmentQueries(repo AppointmentReadStore, policy shared.BookingPolicy) AppointmentQueries {
	return &appointmentQueriesImpl{repo: repo, loc: policy.Location}
}

func (q *appointmentQueriesImpl) Get(ctx context.Context, id uuid.UUID, actor *shared.Actor) (*AppointmentView, error) {
	if actor == nil {
		return nil, ErrAccessDenied
	}
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	if !canView(actor, view) {
		return nil, ErrAccessDenied
	}
	return view, nil
}

func canView(actor *shared.Actor, view *AppointmentView) bool {
	switch actor.Role {
	case user.RoleAdmin:
		return true
	case user.RoleOrganiser:
		return view.OrganiserID == actor.UserID
	case user.RoleCustomer:
		return view.CustomerUserID != nil && *view.CustomerUserID == actor.UserID
	default:
		return false
	}
}

// List is for organisers (scoped to themselves) and admins.
func (q *appointmentQueriesImpl) List(ctx context.Context, params AppointmentListParams, actor *shared.Actor, cursor *Cursor, limit int) (*AppointmentPage, error) {
	filter, err := q.buildFilter(params, actor)
	if err != nil {
		return nil, err
	}

	var after *Keyset
	if cursor != nil && cursor.After != "" {
		start, id, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, derr
		}
		after = &Keyset{Start: start, ID: id}
	}

	limit = ValidateLimit(limit)
	// #nosec G115 -- limit is capped by ValidateLimit
	rows, err := q.repo.List(ctx, filter, after, int32(limit+1))
	if err != nil {
		return nil, err
	}

	counts, err := q.repo.CountByStatus(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, s := range appointment.AllStatuses() {
		if _, ok := counts[s.String()]; !ok {
			counts[s.String()] = 0
		}
	}

	page := &AppointmentPage{Items: rows, StatusCounts: counts}
	if len(rows) > limit {
		last := rows[limit-1]
		page.Next = &Cursor{After: EncodeAfterCursor(last.StartTime, last.ID)}
		page.Items = rows[:limit]
	}
	return page, nil
}

func (q *appointmentQueriesImpl) buildFilter(params AppointmentListParams, actor *shared.Actor) (AppointmentFilter, error) {
	var filter AppointmentFilter
	switch {
	case actor.IsAdmin():
		filter.OrganiserID = params.OrganiserID
	case actor.Is(user.RoleOrganiser):
		if params.OrganiserID != nil && *params.OrganiserID != actor.UserID {
			return filter, ErrAccessDenied
		}
		id := actor.UserID
		filter.OrganiserID = &id
	default:
		return filter, ErrAccessDenied
	}

	if params.Status != "" {
		status, err := appointment.ParseStatus(params.Status)
		if err != nil {
			return filter, err
		}
		s := status.String()
		filter.Status = &s
	}
	if params.Date != "" {
		date, err := schedule.ParseDate(params.Date)
		if err != nil {
			return filter, err
		}
		from := date.At(0, q.loc)
		to := date.AddDays(1).At(0, q.loc)
		filter.From, filter.To = &from, &to
	}
	filter.ServiceID = params.ServiceID
	return filter, nil
}

// ListMine returns bookings made while signed in. Guest bookings carry no
// account and stay out, matching the ownership rule of Get and cancel.
func (q *appointmentQueriesImpl) ListMine(ctx context.Context, actor *shared.Actor, limit int) ([]*AppointmentView, error) {
	if actor == nil {
		return nil, ErrAccessDenied
	}
	// #nosec G115 -- limit is capped by ValidateLimit
	return q.repo.ListByCustomer(ctx, actor.UserID, int32(ValidateLimit(limit)))
}
