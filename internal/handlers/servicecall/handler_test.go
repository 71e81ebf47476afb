package servicecall_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "comanda/infras/otel/mocks"
	"comanda/internal/domains/servicecall/model/dto"
	serviceMocks "comanda/internal/domains/servicecall/service/mocks"
	"comanda/internal/handlers/servicecall"
	"comanda/shared/constant"
	"comanda/shared/failure"
)

const tableUUID = "5b0c9a4e-2a56-4c1a-9b7e-3c7a1a2f9d10"

func newRouter(t *testing.T) (*serviceMocks.MockServiceCall, http.Handler) {
	t.Helper()

	mockService := serviceMocks.NewMockServiceCall(gomock.NewController(t))
	handler := servicecall.New(mockService, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return mockService, router
}

func TestHandler_CreateCall(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(mockService *serviceMocks.MockServiceCall)
		wantCode  int
		wantRetry string
	}{
		{
			name: "created",
			body: `{"reason":"assistencia"}`,
			setupMock: func(mockService *serviceMocks.MockServiceCall) {
				mockService.EXPECT().
					Create(gomock.Any(), tableUUID, gomock.Any()).
					Return(dto.CallResponse{ID: 1, TableUUID: tableUUID, Reason: "assistencia"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "cooldown running",
			body: `{"reason_code":3}`,
			setupMock: func(mockService *serviceMocks.MockServiceCall) {
				mockService.EXPECT().
					Create(gomock.Any(), tableUUID, gomock.Any()).
					Return(dto.CallResponse{}, failure.TooManyRequests("wait before calling again", 2*time.Minute))
			},
			wantCode:  http.StatusTooManyRequests,
			wantRetry: "120",
		},
		{
			name: "duplicate pending call",
			body: `{"reason":"fechar_conta"}`,
			setupMock: func(mockService *serviceMocks.MockServiceCall) {
				mockService.EXPECT().
					Create(gomock.Any(), tableUUID, gomock.Any()).
					Return(dto.CallResponse{}, failure.Conflict("call already pending"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name:     "malformed body",
			body:     `{"reason":`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := newRouter(t)

			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			request := httptest.NewRequest(http.MethodPost, "/tables/uuid/"+tableUUID+"/calls", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantRetry, recorder.Header().Get(constant.ResponseHeaderRetryAfter))
		})
	}
}

func TestHandler_AttendCall(t *testing.T) {
	mockService, router := newRouter(t)

	mockService.EXPECT().
		Attend(gomock.Any(), int64(9), "staff-1").
		Return(dto.CallResponse{ID: 9, Status: "atendida"}, nil)

	request := httptest.NewRequest(http.MethodPost, "/calls/9/attend", nil)
	request = request.WithContext(context.WithValue(request.Context(), constant.ContextKeyUserID, "staff-1"))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"atendida"`)
}

func TestHandler_BadPathID(t *testing.T) {
	_, router := newRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/calls/abc/attend", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_GetCallHistory(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		setupMock func(mockService *serviceMocks.MockServiceCall)
		wantCode  int
	}{
		{
			name:  "filters forwarded",
			query: "?status=pendente&limit=20",
			setupMock: func(mockService *serviceMocks.MockServiceCall) {
				mockService.EXPECT().
					History(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter dto.HistoryFilter) (dto.GetCallsResponse, error) {
						assert.Equal(t, 20, filter.Limit)
						assert.NotNil(t, filter.Status)

						return dto.GetCallsResponse{}, nil
					})
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "invalid limit",
			query:    "?limit=0",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := newRouter(t)

			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/calls"+tt.query, nil))

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}
