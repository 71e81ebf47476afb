package model

import (
	"time"

	"github.com/google/uuid"

	"comanda/shared/status"
)

const (
	TableName  = "dining_tables"
	EntityName = "table"

	FieldID        = "id"
	FieldUUID      = "uuid"
	FieldName      = "name"
	FieldStatusID  = "status_id"
	FieldActive    = "active"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

type Table struct {
	ID        int64             `db:"id"         generated:"true"`
	UUID      string            `db:"uuid"`
	Name      string            `db:"name"`
	StatusID  status.TableState `db:"status_id"`
	Active    bool              `db:"active"`
	CreatedAt time.Time         `db:"created_at"`
	UpdatedAt time.Time         `db:"updated_at"`
}

// Exists reports whether the row was found. Repository reads return the zero
// Table when nothing matches.
func (t Table) Exists() bool {
	return t.ID != 0
}

// DeriveState is the state a table is reported in. It never returns IN_USE
// for a table without open orders.
func DeriveState(table Table, hasOpenOrders bool) status.TableState {
	switch {
	case !table.Active:
		return status.TableDisabled
	case hasOpenOrders:
		return status.TableInUse
	// Nothing in this module writes EXPIRED; it is carried so stored rows serialise.
	case table.StatusID == status.TableExpired:
		return status.TableExpired
	default:
		return status.TableAvailable
	}
}

// ValidUUID reports whether value can name a table. Anything else cannot match
// a row, so callers answer not found without querying.
func ValidUUID(value string) bool {
	return uuid.Validate(value) == nil
}
