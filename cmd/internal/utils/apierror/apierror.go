package apierror

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back to the routes layer; the
// routes serialize it as-is with its status code.
type ErrorResponse interface {
	Code() int
}

type Simple struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (s *Simple) Code() int {
	return s.Status
}

func NewSimple(code int, message string) *Simple {
	return &Simple{Status: code, Message: message}
}

func NewMissingParamError(name string) *Simple {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("missing required parameter %q", name))
}

func NewInvalidParamTypeError(name, kind string) *Simple {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("parameter %q must be a valid %s", name, kind))
}

// FromValidationError flattens a validator.ValidationErrors into one
// 400 response naming the offending fields.
func FromValidationError(err error) ErrorResponse {
	valErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return MalformedBodyError
	}

	fields := make([]string, len(valErrs))
	for i, fe := range valErrs {
		fields[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
	}
	msg := "invalid fields: " + strings.Join(fields, ", ")
	return NewSimple(http.StatusBadRequest, msg)
}

var (
	InternalServerError   = NewSimple(http.StatusInternalServerError, "internal server error")
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "malformed request body")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "invalid token")
	MissingAuthError      = NewSimple(http.StatusUnauthorized, "missing auth")
	NotFoundError         = NewSimple(http.StatusNotFound, "not found")

	// Signup / login
	EmailInUseError         = NewSimple(http.StatusBadRequest, "email already in use")
	InvalidCredentialsError = NewSimple(http.StatusUnauthorized, "invalid credentials")

	// Swap ledger
	MissingSlotIDsError    = NewSimple(http.StatusBadRequest, "missing ids")
	InvalidSlotError       = NewSimple(http.StatusBadRequest, "invalid mySlot")
	SelfSwapError          = NewSimple(http.StatusBadRequest, "cannot swap with yourself")
	SlotNotSwappableError  = NewSimple(http.StatusBadRequest, "one or both slots not swappable")
	RequestNotFoundError   = NewSimple(http.StatusNotFound, "request not found")
	NotResponderError      = NewSimple(http.StatusForbidden, "not authorized")
	RequestNotPendingError = NewSimple(http.StatusBadRequest, "request not pending")
	SwapConflictError      = NewSimple(http.StatusBadRequest, "one or both events no longer pending")
)
