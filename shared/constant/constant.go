package constant

import "time"

type contextKey string

// Request context keys set by the auth middleware.
const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

// Actors and staff roles.
const (
	ContextGuest  = "guest"
	ContextSystem = "system"
	RoleAdmin     = "admin"
	RoleStaff     = "staff"
)

// Query and path parameters.
const (
	RequestParamID          = "id"
	RequestParamUUID        = "uuid"
	RequestParamCallID      = "callID"
	RequestParamStatus      = "status"
	RequestParamSince       = "since"
	RequestParamTableUUID   = "table_uuid"
	RequestParamAccessToken = "access_token"
	RequestParamAvailable   = "available"
	RequestParamPage        = "page"
	RequestParamLimit       = "limit"
	RequestParamSortBy      = "sort_by"
	RequestParamSortDir     = "sort_dir"

	DefaultValuePage  = 1
	DefaultValueLimit = 10
)

// Storage.
const (
	FieldModifiedAt            = "modified_at"
	FieldModifiedBy            = "modified_by"
	PqErrorCodeUniqueViolation = "23505"
)

const (
	DateFormat       = time.RFC3339
	MinutesToSeconds = 60
	// MoneyScale is the number of decimals kept on prices and totals.
	MoneyScale = 2
)

// Tracing scopes.
const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"
	OtelQueryAttributeKey   = "query"
)

// HTTP headers and canned bodies.
const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	ResponseHeaderRetryAfter        = "Retry-After"
	ContentTypeJSON                 = "application/json"

	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
	Asterix              = "*"
)
