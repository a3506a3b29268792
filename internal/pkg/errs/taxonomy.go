package errs

// Error categories. Concrete errors are marked with one of these so that the
// transport layer can pick a status without knowing every sentinel.
var (
	ErrValidation        = New("validation error")
	ErrNotFound          = New("resource not found")
	ErrSlotFull          = New("slot is fully booked")
	ErrInvalidSlot       = New("requested time is not a valid slot")
	ErrInvalidTransition = New("invalid status transition")
	ErrPaymentProvider   = New("payment provider error")
	ErrConflict          = New("state conflict")
	ErrForbidden         = New("operation not permitted")
)

func Validation(msg string) error {
	return Mark(New(msg), ErrValidation)
}

func Validationf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrValidation)
}

// Category returns the taxonomy marker carried by err, or nil.
func Category(err error) error {
	for _, c := range []error{
		ErrValidation,
		ErrNotFound,
		ErrSlotFull,
		ErrInvalidSlot,
		ErrInvalidTransition,
		ErrPaymentProvider,
		ErrConflict,
		ErrForbidden,
	} {
		if Is(err, c) {
			return c
		}
	}
	return nil
}
