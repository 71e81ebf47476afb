package failure

import (
	"errors"
	"net/http"
	"time"
)

// Failure is an outcome the caller is expected to handle. Code is the HTTP
// status it maps to; anything below 500 is a business rejection.
type Failure struct {
	Code       int           `json:"code"`
	Message    string        `json:"message"`
	RetryAfter time.Duration `json:"-"`
}

var (
	InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
	ForbiddenError    = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
)

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest turns a decoding or parsing error into a bad request. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound reports a missing table, order, call, product or staff account.
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

// Conflict reports a request that is valid but clashes with the current state,
// like a duplicate pending call or a table that still has open orders.
func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// TooManyRequests reports a cooldown that is still running. retryAfter is how
// long the caller has to wait before the same request can succeed.
func TooManyRequests(msg string, retryAfter time.Duration) error {
	return &Failure{
		Code:       http.StatusTooManyRequests,
		Message:    msg,
		RetryAfter: retryAfter,
	}
}

// GetCode returns the status carried by err, or 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetRetryAfter returns the wait carried by a rate limited failure.
func GetRetryAfter(err error) (time.Duration, bool) {
	var fail *Failure
	if errors.As(err, &fail) && fail.Code == http.StatusTooManyRequests {
		return fail.RetryAfter, true
	}

	return 0, false
}

// IsDomain reports whether err is an expected business outcome rather than a system failure.
func IsDomain(err error) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code < http.StatusInternalServerError
	}

	return false
}
