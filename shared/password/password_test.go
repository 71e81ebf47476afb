package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"comanda/shared/password"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr error
	}{
		{name: "valid", plain: "kitchen-pass"},
		{name: "empty", plain: "", wantErr: password.ErrEmptyPassword},
		{name: "only spaces", plain: "          ", wantErr: password.ErrEmptyPassword},
		{name: "too short", plain: "abc", wantErr: password.ErrTooShort},
		{name: "multibyte counts runes", plain: "cafécafé"},
		{name: "over bcrypt limit", plain: strings.Repeat("a", password.MaxBytes+1), wantErr: password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Check(tt.plain)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestHashWithCost(t *testing.T) {
	hashed, err := password.HashWithCost("kitchen-pass", bcrypt.MinCost)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	again, err := password.HashWithCost("kitchen-pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again)

	_, err = password.HashWithCost("abc", bcrypt.MinCost)
	assert.ErrorIs(t, err, password.ErrTooShort)
}

func TestHash_DefaultCost(t *testing.T) {
	hashed, err := password.Hash("kitchen-pass")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestVerify(t *testing.T) {
	hashed, err := password.HashWithCost("kitchen-pass", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, password.Verify("kitchen-pass", hashed))
	assert.ErrorIs(t, password.Verify("wrong-pass", hashed), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("", hashed), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("kitchen-pass", ""), password.ErrInvalidPassword)

	err = password.Verify("kitchen-pass", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}
