package model

import (
	"time"

	"comanda/shared/status"
)

const (
	TableName  = "service_calls"
	EntityName = "service_call"

	FieldID          = "id"
	FieldTableUUID   = "table_uuid"
	FieldReasonID    = "reason_id"
	FieldDetails     = "details"
	FieldStatusID    = "status_id"
	FieldCreatedAt   = "created_at"
	FieldAttendedAt  = "attended_at"
	FieldCancelledAt = "cancelled_at"
	FieldAttendedBy  = "attended_by"

	// PendingIndex enforces one pending call per table and reason.
	PendingIndex = "service_calls_one_pending_per_reason"

	// PendingCachePrefix prefixes the cached pending queue. Anything that removes or
	// changes pending calls clears it.
	PendingCachePrefix = "service_call:pending"

	// ReferenceTimeExpr orders calls by their last state change.
	ReferenceTimeExpr = "COALESCE(service_calls.attended_at, service_calls.cancelled_at, service_calls.created_at)"
)

type ServiceCall struct {
	ID          int64             `db:"id"           generated:"true"`
	TableUUID   string            `db:"table_uuid"`
	ReasonID    status.CallReason `db:"reason_id"`
	Details     *string           `db:"details"`
	StatusID    status.CallStatus `db:"status_id"`
	CreatedAt   time.Time         `db:"created_at"`
	AttendedAt  *time.Time        `db:"attended_at"`
	CancelledAt *time.Time        `db:"cancelled_at"`
	AttendedBy  *string           `db:"attended_by"`

	TableName string `db:"table_name" table:"dining_tables" column:"name"`
}

func (ServiceCall) GetJoinQuery() string {
	return "JOIN dining_tables ON dining_tables.uuid = service_calls.table_uuid"
}

func (c ServiceCall) Exists() bool {
	return c.ID != 0
}

// ReferenceTime is the latest of attended, cancelled and created, the instant
// the cooldown between alternating reasons counts from.
func (c ServiceCall) ReferenceTime() time.Time {
	switch {
	case c.AttendedAt != nil:
		return *c.AttendedAt
	case c.CancelledAt != nil:
		return *c.CancelledAt
	default:
		return c.CreatedAt
	}
}

// CooldownRemaining is how long a call with reason must still wait after
// previous. Zero means it may be created now.
func CooldownRemaining(previous ServiceCall, reason status.CallReason, now time.Time, cooldown time.Duration) time.Duration {
	if !previous.Exists() || !reason.Alternating() || previous.ReasonID == reason {
		return 0
	}

	elapsed := now.Sub(previous.ReferenceTime())
	if elapsed >= cooldown {
		return 0
	}

	return cooldown - elapsed
}
