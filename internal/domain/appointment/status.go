package appointment

import "appointment-booking/internal/pkg/errs"

var (
	ErrInvalidStatus     = errs.Mark(errs.New("unknown appointment status"), errs.ErrValidation)
	ErrInvalidTransition = errs.Mark(errs.New("appointment status transition not allowed"), errs.ErrInvalidTransition)
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Active statuses occupy capacity.
func (s Status) IsActive() bool {
	return s != StatusCancelled
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
}
