package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/koungkub/pushover-notification-service/pushover"
)

type ErrorHandler struct {
	ErrorCode      string   `json:"error_code"`
	Message        string   `json:"message"`
	UpstreamStatus int      `json:"upstream_status,omitempty"`
	Errors         []string `json:"errors,omitempty"`
}

func (e *ErrorHandler) Error() string {
	return fmt.Sprintf("error code: %s, message: %s", e.ErrorCode, e.Message)
}

func GetRequestError(err error) error {
	return &ErrorHandler{
		ErrorCode: "E101",
		Message:   err.Error(),
	}
}

func GetInternalError(err error) error {
	return &ErrorHandler{
		ErrorCode: "E102",
		Message:   err.Error(),
	}
}

func GetUpstreamError(err *pushover.RequestError) error {
	return &ErrorHandler{
		ErrorCode:      "E103",
		Message:        err.Error(),
		UpstreamStatus: err.StatusCode,
		Errors:         err.Errors,
	}
}

// statusFromError maps a service error to the response status and body.
func statusFromError(err error) (int, error) {
	var (
		validationErr *pushover.ValidationError
		requestErr    *pushover.RequestError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, GetRequestError(err)
	case errors.As(err, &requestErr):
		return http.StatusBadGateway, GetUpstreamError(requestErr)
	default:
		return http.StatusInternalServerError, GetInternalError(err)
	}
}
