package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/shared/failure"
	"comanda/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantCode       int
		wantRetryAfter string
	}{
		{name: "conflict", err: failure.Conflict("call already pending"), wantCode: http.StatusConflict},
		{name: "not found", err: failure.NotFound("table not found"), wantCode: http.StatusNotFound},
		{name: "cooldown", err: failure.TooManyRequests("cooldown", 119500*time.Millisecond), wantCode: http.StatusTooManyRequests, wantRetryAfter: "120"},
		{name: "store error", err: errors.New("connection reset"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantRetryAfter, recorder.Header().Get("Retry-After"))

			var body response.Error
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.err.Error(), *body.Error)
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":7}}`, recorder.Body.String())
}

func TestWithRateLimited(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithRateLimited(recorder, time.Minute)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "60", recorder.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"REQUEST LIMIT EXCEEDED","retry_after_seconds":60}`, recorder.Body.String())
}

func TestWithShuttingDown(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithShuttingDown(recorder)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.JSONEq(t, `{"message":"SERVER PREPARING TO SHUT DOWN"}`, recorder.Body.String())
}
