package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"comanda/config"
	"comanda/infras/jwt"
	"comanda/infras/otel"
	"comanda/permissions"
	"comanda/shared/constant"
	"comanda/shared/failure"
	"comanda/transport/http/response"
)

type SkipAuthKey string

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.Registry
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.Registry, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(SkipAuthKey("skip")).(bool)

	return skip
}

// bearerToken reads the Authorization header. Browsers cannot set headers on a websocket
// handshake, so the access_token query parameter is accepted when the header is absent.
func bearerToken(request *http.Request) (string, error) {
	authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
	if authHeader == "" {
		if token := request.URL.Query().Get(constant.RequestParamAccessToken); token != "" {
			return token, nil
		}
	}

	return jwt.ExtractTokenFromHeader(authHeader) //nolint:wrapcheck
}

func deny(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	scope.End()
	response.WithError(writer, err)
}

func tokenFailure(err error) error {
	switch {
	case errors.Is(err, jwt.ErrMissingHeader):
		return failure.Unauthorized("Missing authorization header")
	case errors.Is(err, jwt.ErrBearerPrefix):
		return failure.Unauthorized("Invalid authorization header format")
	case errors.Is(err, jwt.ErrExpiredToken):
		return failure.Unauthorized("Token has expired")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return failure.Unauthorized("Invalid token claims")
	default:
		return failure.Unauthorized("Invalid token")
	}
}

func withStaff(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.StaffID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)

	return context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)
}

// Auth validates the access token and stores the staff claims in the request context.
// Public routes and API key callers pass untouched.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		path := routePattern(request)

		if skipped(ctx) || (m.permission != nil && m.permission.Lookup(path, request.Method).Public) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{"http.route": path, "http.method": request.Method})

		token, err := bearerToken(request)
		if err != nil {
			deny(writer, scope, tokenFailure(err))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, token, jwt.AccessToken)
		if err != nil {
			deny(writer, scope, tokenFailure(err))

			return
		}

		if claims.StaffID == "" || claims.Email == "" {
			log.Error().Str("token_id", claims.TokenID).Msg("token claims missing staff identity")
			deny(writer, scope, failure.Unauthorized("Invalid token claims"))

			return
		}

		scope.SetAttribute("staff.role", claims.Role)
		scope.End()

		next.ServeHTTP(writer, request.WithContext(withStaff(request.Context(), claims)))
	})
}

// RBAC checks the staff role against the route rule. It runs after Auth; a missing registry
// denies everything.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil && !skipped(ctx) {
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		if skipped(ctx) || m.permission.Open {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		rule := m.permission.Lookup(routePattern(request), request.Method)
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !rule.Public && !rule.Allows(role) {
			scope.SetAttributes(map[string]any{"staff.role": role, "allowed_roles": rule.Roles})
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey admits internal callers as the system admin. Requests without the header fall
// through to the token check.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		presented := request.Header.Get(constant.RequestHeaderAPIKey)
		expected := m.cfg.App.APIKey

		if presented == "" || expected == "" {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
			deny(writer, scope, failure.ForbiddenError)

			return
		}

		scope.SetAttribute("http.source", "internal")
		scope.End()

		ctx := context.WithValue(request.Context(), SkipAuthKey("skip"), true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextSystem)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
