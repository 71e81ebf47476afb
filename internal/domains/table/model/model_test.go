package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"comanda/internal/domains/table/model"
	"comanda/shared/status"
)

func TestDeriveState(t *testing.T) {
	tests := []struct {
		name          string
		table         model.Table
		hasOpenOrders bool
		want          status.TableState
	}{
		{
			name:  "fresh table",
			table: model.Table{StatusID: status.TableAvailable, Active: true},
			want:  status.TableAvailable,
		},
		{
			name:          "open orders make it in use",
			table:         model.Table{StatusID: status.TableAvailable, Active: true},
			hasOpenOrders: true,
			want:          status.TableInUse,
		},
		{
			name:  "stored in use without open orders projects to available",
			table: model.Table{StatusID: status.TableInUse, Active: true},
			want:  status.TableAvailable,
		},
		{
			name:          "disabled wins over open orders",
			table:         model.Table{StatusID: status.TableInUse, Active: false},
			hasOpenOrders: true,
			want:          status.TableDisabled,
		},
		{
			name:  "expired stays expired",
			table: model.Table{StatusID: status.TableExpired, Active: true},
			want:  status.TableExpired,
		},
		{
			name:  "unset stored state defaults to available",
			table: model.Table{Active: true},
			want:  status.TableAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.DeriveState(tt.table, tt.hasOpenOrders))
		})
	}
}

func TestDeriveStateNeverInUseWithoutOpenOrders(t *testing.T) {
	for _, stored := range []status.TableState{0, status.TableAvailable, status.TableInUse, status.TableExpired, status.TableDisabled} {
		for _, active := range []bool{true, false} {
			got := model.DeriveState(model.Table{StatusID: stored, Active: active}, false)
			assert.NotEqual(t, status.TableInUse, got, "stored=%d active=%t", stored, active)
		}
	}
}

func TestExists(t *testing.T) {
	assert.False(t, model.Table{}.Exists())
	assert.True(t, model.Table{ID: 4}.Exists())
}

func TestValidUUID(t *testing.T) {
	assert.True(t, model.ValidUUID("2b1c6c9e-7c1e-4bb3-9f43-8f1f6c2f8d10"))
	assert.False(t, model.ValidUUID("mesa-7"))
	assert.False(t, model.ValidUUID(""))
}
