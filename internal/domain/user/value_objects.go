package user

import (
	"regexp"
	"strings"

	"appointment-booking/internal/pkg/errs"
)

var (
	ErrInvalidEmail = errs.Mark(errs.New("invalid email format"), errs.ErrValidation)
	ErrInvalidRole  = errs.Mark(errs.New("invalid role"), errs.ErrValidation)
	ErrInvalidName  = errs.Mark(errs.New("name must be 1-200 characters"), errs.ErrValidation)
)

const MaxNameLength = 200

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

// NewEmail lower-cases the address so lookups by email are case-insensitive.
func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

type FullName struct {
	value string
}

func NewFullName(s string) (FullName, error) {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > MaxNameLength {
		return FullName{}, ErrInvalidName
	}
	return FullName{value: s}, nil
}

func (n FullName) Value() string {
	return n.value
}
