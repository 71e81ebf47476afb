package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"comanda/config"
	"comanda/infras/jwt"
	jwtMocks "comanda/infras/jwt/mocks"
	otelMocks "comanda/infras/otel/mocks"
	"comanda/permissions"
	"comanda/shared/constant"
	"comanda/transport/http/middleware"
)

func newRouter(m middleware.AuthRole) http.Handler {
	ok := func(w http.ResponseWriter, r *http.Request) {
		staffID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-Staff", staffID)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Route("/v1", func(v1 chi.Router) {
		v1.Use(m.APIKey, m.Auth, m.RBAC)
		v1.Get("/tables", ok)
		v1.Post("/tables", ok)
		v1.Get("/tables/uuid/{uuid}", ok)
		v1.Get("/ws/board", ok)
	})

	return router
}

func TestAuthRole(t *testing.T) {
	staffClaims := &jwt.Claims{StaffID: "staff-1", Email: "ana@comanda.io", Role: constant.RoleStaff, TokenID: "t-1", Type: jwt.AccessToken}

	tests := []struct {
		name      string
		method    string
		target    string
		header    string
		apiKey    string
		setupMock func(mockJWT *jwtMocks.MockJWT)
		wantCode  int
		wantStaff string
	}{
		{
			name:     "public route without token",
			method:   http.MethodGet,
			target:   "/v1/tables/uuid/5b0c9a4e-2a56-4c1a-9b7e-3c7a1a2f9d10",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing token",
			method:   http.MethodGet,
			target:   "/v1/tables",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodGet,
			target:   "/v1/tables",
			header:   "Token abc",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "staff reads tables",
			method: http.MethodGet,
			target: "/v1/tables",
			header: "Bearer good",
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(staffClaims, nil)
			},
			wantCode:  http.StatusOK,
			wantStaff: "staff-1",
		},
		{
			name:   "staff cannot create tables",
			method: http.MethodPost,
			target: "/v1/tables",
			header: "Bearer good",
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(staffClaims, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			target: "/v1/tables",
			header: "Bearer old",
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "board token in query",
			method: http.MethodGet,
			target: "/v1/ws/board?access_token=query-token",
			setupMock: func(mockJWT *jwtMocks.MockJWT) {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "query-token", jwt.AccessToken).Return(staffClaims, nil)
			},
			wantCode:  http.StatusOK,
			wantStaff: "staff-1",
		},
		{
			name:      "internal api key",
			method:    http.MethodPost,
			target:    "/v1/tables",
			apiKey:    "internal-key",
			wantCode:  http.StatusOK,
			wantStaff: constant.ContextSystem,
		},
		{
			name:     "wrong api key",
			method:   http.MethodPost,
			target:   "/v1/tables",
			apiKey:   "guess",
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockJWT := jwtMocks.NewMockJWT(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(mockJWT)
			}

			cfg := &config.Config{}
			cfg.App.APIKey = "internal-key"

			router := newRouter(middleware.NewAuthRoleMiddleware(mockJWT, otelMocks.NewOtel(), permissions.Get(), cfg))

			request := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.header != "" {
				request.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			if tt.apiKey != "" {
				request.Header.Set(constant.RequestHeaderAPIKey, tt.apiKey)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantStaff, recorder.Header().Get("X-Staff"))
		})
	}
}
