package model

import (
	"strings"
	"time"

	"comanda/shared/model"
)

const (
	TableName  = "staff_accounts"
	EntityName = "staff"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"

	// EmailIndex keeps emails unique regardless of case.
	EmailIndex = "staff_accounts_email_key"
)

type Staff struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}

func (s Staff) Exists() bool {
	return s.ID != ""
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
