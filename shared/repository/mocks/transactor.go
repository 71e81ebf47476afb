package mocks

import (
	"context"

	"comanda/shared/repository"
)

// Transactor runs the unit of work without a database. Repositories receive a
// nil *sqlx.Tx, which is fine because they are mocked as well.
type Transactor struct {
	// CommitErr is returned after fn succeeds, standing in for a failed commit.
	CommitErr error
	// Calls counts units of work started.
	Calls int
}

// WithinTx implements repository.Transactor.
func (t *Transactor) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	t.Calls++

	if err := fn(ctx, nil); err != nil {
		return err
	}

	return t.CommitErr
}

func NewTransactor() *Transactor {
	return &Transactor{}
}
