package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/validate"
)

// RESTStandardError response error
type RESTStandardError struct {
	Type    string `json:"type,omitempty"`
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

func NewRESTStandardError(code int, detail string) *RESTStandardError {
	return &RESTStandardError{
		Code:   code,
		Title:  http.StatusText(code),
		Detail: detail,
	}
}

func (re RESTStandardError) Error() string {
	return re.Detail
}

func (re RESTStandardError) SetTraceID(traceID string) RESTStandardError {
	re.TraceID = traceID
	return re
}

// RESTValidationError standard validation error
type RESTValidationError struct {
	RESTStandardError
	InvalidParams []*validate.FieldError `json:"invalid_params"`
}

func NewRESTValidationError(code int, detail string, internal []*validate.FieldError) *RESTValidationError {
	return &RESTValidationError{
		RESTStandardError: RESTStandardError{
			Code:   code,
			Title:  http.StatusText(code),
			Detail: detail,
		},
		InvalidParams: internal,
	}
}

func (rve RESTValidationError) Error() string {
	return rve.Detail
}

func (rve RESTValidationError) SetTraceID(traceID string) RESTValidationError {
	rve.RESTStandardError.TraceID = traceID
	return rve
}

// statusFromError maps load failures onto a status code and the message
// shown to the viewer
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrModuleNotFound):
		return http.StatusNotFound, domain.ErrModuleNotFound.Error()
	case errors.Is(err, domain.ErrCourseNotFound):
		return http.StatusNotFound, domain.ErrCourseNotFound.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "The course service took too long to answer"
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusBadGateway, domain.ErrServiceUnavailable.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// restError JSON body for a load failure
func restError(err error, traceID string) (int, RESTStandardError) {
	code, detail := statusFromError(err)
	return code, NewRESTStandardError(code, detail).SetTraceID(traceID)
}
