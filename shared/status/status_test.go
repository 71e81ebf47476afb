package status_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/shared/failure"
	"comanda/shared/status"
)

func intPtr(v int) *int {
	return &v
}

func TestTextProjections(t *testing.T) {
	assert.Equal(t, "disponivel", status.TableAvailable.String())
	assert.Equal(t, "em_uso", status.TableInUse.String())
	assert.Equal(t, "expirada", status.TableExpired.String())
	assert.Equal(t, "desativada", status.TableDisabled.String())

	assert.Equal(t, "pendente", status.OrderPending.String())
	assert.Equal(t, "em preparo", status.OrderPreparing.String())
	assert.Equal(t, "entregue", status.OrderDelivered.String())
	assert.Equal(t, "concluido", status.OrderCompleted.String())

	assert.Equal(t, "assistencia", status.CallAssistance.String())
	assert.Equal(t, "fechar_conta", status.CallCloseTab.String())
	assert.Equal(t, "urgente", status.CallUrgent.String())

	assert.Equal(t, "pendente", status.CallPending.String())
	assert.Equal(t, "atendida", status.CallAttended.String())
	assert.Equal(t, "cancelada", status.CallCancelled.String())
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    status.OrderStatus
		wantErr bool
	}{
		{name: "text", input: "entregue", want: status.OrderDelivered},
		{name: "text with underscore", input: "em_preparo", want: status.OrderPreparing},
		{name: "mixed case and spaces", input: "  Concluido ", want: status.OrderCompleted},
		{name: "numeric code", input: "2", want: status.OrderPreparing},
		{name: "unknown code", input: "9", wantErr: true},
		{name: "unknown text", input: "cooking", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := status.ParseOrderStatus(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOrderStatus(t *testing.T) {
	tests := []struct {
		name    string
		code    *int
		text    string
		want    status.OrderStatus
		wantErr bool
	}{
		{name: "code only", code: intPtr(3), want: status.OrderDelivered},
		{name: "text only", text: "pendente", want: status.OrderPending},
		{name: "matching code and text", code: intPtr(4), text: "concluido", want: status.OrderCompleted},
		{name: "mismatching code and text", code: intPtr(1), text: "concluido", wantErr: true},
		{name: "neither", wantErr: true},
		{name: "unknown code", code: intPtr(0), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := status.ResolveOrderStatus(tt.code, tt.text)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableStateSettable(t *testing.T) {
	assert.True(t, status.TableAvailable.Settable())
	assert.True(t, status.TableDisabled.Settable())
	assert.False(t, status.TableInUse.Settable())
	assert.False(t, status.TableExpired.Settable())

	state, err := status.ResolveTableState(nil, "desativada")
	require.NoError(t, err)
	assert.Equal(t, status.TableDisabled, state)
}

func TestCallReasonAlternating(t *testing.T) {
	assert.True(t, status.CallAssistance.Alternating())
	assert.True(t, status.CallUrgent.Alternating())
	assert.False(t, status.CallCloseTab.Alternating())

	reason, err := status.ParseCallReason("fechar conta")
	require.NoError(t, err)
	assert.Equal(t, status.CallCloseTab, reason)
}

func TestOrderStatusOpen(t *testing.T) {
	for _, s := range status.OpenOrderStatuses() {
		assert.True(t, s.Open(), s.String())
	}

	assert.False(t, status.OrderCompleted.Open())
	assert.False(t, status.OrderStatus(7).Open())
}
