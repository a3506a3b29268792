package httperr

import (
	"net/http"

	"appointment-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

var statusByCategory = map[error]int{
	errs.ErrValidation:        http.StatusBadRequest,
	errs.ErrNotFound:          http.StatusNotFound,
	errs.ErrSlotFull:          http.StatusConflict,
	errs.ErrInvalidSlot:       http.StatusUnprocessableEntity,
	errs.ErrInvalidTransition: http.StatusConflict,
	errs.ErrPaymentProvider:   http.StatusBadGateway,
	errs.ErrConflict:          http.StatusConflict,
	errs.ErrForbidden:         http.StatusForbidden,
}

// StatusOf maps an error to its HTTP status by taxonomy category; uncategorised errors are 500.
func StatusOf(err error) int {
	if status, ok := statusByCategory[errs.Category(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Abort classifies err and aborts with the matching status. Internal errors never leak their message.
func Abort(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	AbortWithError(c, status, err, msg, nil)
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
