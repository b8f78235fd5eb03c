package api

import (
	"errors"
	"fmt"
	"net/http"

	"invsim/internal/runner"
	"invsim/internal/scenario"
	"invsim/internal/simulation"
)

// Error codes returned in AppError bodies.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeBadRequest      = "BAD_REQUEST"
	CodeNotFound        = "ROUTE_NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// AppError is an error with the HTTP status and code it is reported under.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// ErrBadRequest reports a request body that could not be read.
func ErrBadRequest(err error) *AppError {
	return &AppError{Code: CodeBadRequest, Message: err.Error(), HTTPStatus: http.StatusBadRequest, Err: err}
}

// MapError converts domain errors into AppErrors. Anything unrecognised is an internal error.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verr *scenario.ValidationError
	if errors.As(err, &verr) {
		return &AppError{
			Code:       CodeValidationError,
			Message:    "scenario failed validation",
			Details:    verr.Fields,
			HTTPStatus: http.StatusBadRequest,
			Err:        err,
		}
	}

	switch {
	case errors.Is(err, simulation.ErrMalformedDistribution),
		errors.Is(err, simulation.ErrDigitOutOfRange),
		errors.Is(err, simulation.ErrInvalidParams),
		errors.Is(err, runner.ErrInvalidSweep):
		return &AppError{Code: CodeValidationError, Message: err.Error(), HTTPStatus: http.StatusBadRequest, Err: err}
	}

	return &AppError{Code: CodeInternalError, Message: "an internal error occurred", HTTPStatus: http.StatusInternalServerError, Err: err}
}
