package response

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"comanda/shared/constant"
	"comanda/shared/failure"
	"comanda/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the body of every failed request. RetryAfter is set for cooldowns and rate limits.
type Error struct {
	Error      *string `json:"error,omitempty"`
	RetryAfter *int    `json:"retry_after_seconds,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError maps err to its failure status. Unclassified errors are 500.
func WithError(writer http.ResponseWriter, err error) {
	message := err.Error()
	body := Error{Error: &message}

	if retryAfter, ok := failure.GetRetryAfter(err); ok {
		body.RetryAfter = retryHeader(writer, retryAfter)
	}

	write(writer, failure.GetCode(err), body)
}

// WithRateLimited rejects a client that used up its request window.
func WithRateLimited(writer http.ResponseWriter, window time.Duration) {
	message := constant.ResponseErrorRequestLimitExceeded

	write(writer, http.StatusTooManyRequests, Error{Error: &message, RetryAfter: retryHeader(writer, window)})
}

// WithShuttingDown answers health probes once the server left the ready state.
func WithShuttingDown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// retryHeader sets Retry-After in whole seconds, rounded up.
func retryHeader(writer http.ResponseWriter, wait time.Duration) *int {
	seconds := int(math.Ceil(wait.Seconds()))
	writer.Header().Set(constant.ResponseHeaderRetryAfter, strconv.Itoa(seconds))

	return &seconds
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
