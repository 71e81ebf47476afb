// Package status holds the numeric codes shared by tables, orders and service
// calls together with their text projections. Codes are what the store keeps;
// text is only produced or accepted at the serialization boundary.
package status

import (
	"fmt"
	"strconv"
	"strings"

	"comanda/shared/failure"
)

type TableState int

const (
	TableAvailable TableState = iota + 1
	TableInUse
	TableExpired // read and serialised only; never assigned here
	TableDisabled
)

type OrderStatus int

const (
	OrderPending OrderStatus = iota + 1
	OrderPreparing
	OrderDelivered
	OrderCompleted
)

type CallReason int

const (
	CallAssistance CallReason = iota + 1
	CallCloseTab
	CallUrgent
)

type CallStatus int

const (
	CallPending CallStatus = iota + 1
	CallAttended
	CallCancelled
)

type vocabulary[T ~int] struct {
	kind  string
	names map[T]string
}

func (v vocabulary[T]) text(code T) string {
	return v.names[code]
}

func (v vocabulary[T]) valid(code T) bool {
	_, ok := v.names[code]

	return ok
}

func (v vocabulary[T]) fromCode(code int) (T, error) {
	if !v.valid(T(code)) {
		return 0, failure.BadRequestFromString(fmt.Sprintf("unknown %s code: %d", v.kind, code))
	}

	return T(code), nil
}

// parse accepts either the text name (case and surrounding space insensitive,
// "_" and " " interchangeable) or the numeric code written as a string.
func (v vocabulary[T]) parse(value string) (T, error) {
	value = strings.TrimSpace(value)

	if code, err := strconv.Atoi(value); err == nil {
		return v.fromCode(code)
	}

	normalized := normalize(value)
	for code, name := range v.names {
		if normalize(name) == normalized {
			return code, nil
		}
	}

	return 0, failure.BadRequestFromString(fmt.Sprintf("unknown %s: %q", v.kind, value))
}

// resolve picks a value from an optional code and an optional text. When both
// are present they must name the same value.
func (v vocabulary[T]) resolve(code *int, text string) (T, error) {
	switch {
	case code == nil && strings.TrimSpace(text) == "":
		return 0, failure.BadRequestFromString(v.kind + " is required")
	case code == nil:
		return v.parse(text)
	case strings.TrimSpace(text) == "":
		return v.fromCode(*code)
	}

	fromCode, err := v.fromCode(*code)
	if err != nil {
		return 0, err
	}

	fromText, err := v.parse(text)
	if err != nil {
		return 0, err
	}

	if fromCode != fromText {
		return 0, failure.BadRequestFromString(fmt.Sprintf("%s code %d does not match %q", v.kind, *code, text))
	}

	return fromCode, nil
}

func normalize(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "_", " ")
}

var (
	tableStates = vocabulary[TableState]{
		kind: "table status",
		names: map[TableState]string{
			TableAvailable: "disponivel",
			TableInUse:     "em_uso",
			TableExpired:   "expirada",
			TableDisabled:  "desativada",
		},
	}
	orderStatuses = vocabulary[OrderStatus]{
		kind: "order status",
		names: map[OrderStatus]string{
			OrderPending:   "pendente",
			OrderPreparing: "em preparo",
			OrderDelivered: "entregue",
			OrderCompleted: "concluido",
		},
	}
	callReasons = vocabulary[CallReason]{
		kind: "call reason",
		names: map[CallReason]string{
			CallAssistance: "assistencia",
			CallCloseTab:   "fechar_conta",
			CallUrgent:     "urgente",
		},
	}
	callStatuses = vocabulary[CallStatus]{
		kind: "call status",
		names: map[CallStatus]string{
			CallPending:   "pendente",
			CallAttended:  "atendida",
			CallCancelled: "cancelada",
		},
	}
)

func (s TableState) Code() int      { return int(s) }
func (s TableState) String() string { return tableStates.text(s) }
func (s TableState) Valid() bool    { return tableStates.valid(s) }

// Settable reports whether staff may request the state directly. IN_USE and
// EXPIRED are only ever derived.
func (s TableState) Settable() bool {
	return s == TableAvailable || s == TableDisabled
}

func (s OrderStatus) Code() int      { return int(s) }
func (s OrderStatus) String() string { return orderStatuses.text(s) }
func (s OrderStatus) Valid() bool    { return orderStatuses.valid(s) }

// Open reports whether an order still counts against its table.
func (s OrderStatus) Open() bool {
	return s.Valid() && s != OrderCompleted
}

func (r CallReason) Code() int      { return int(r) }
func (r CallReason) String() string { return callReasons.text(r) }
func (r CallReason) Valid() bool    { return callReasons.valid(r) }

// Alternating reports whether the reason belongs to the assistance/urgent pair
// that shares a cooldown.
func (r CallReason) Alternating() bool {
	return r == CallAssistance || r == CallUrgent
}

func (s CallStatus) Code() int      { return int(s) }
func (s CallStatus) String() string { return callStatuses.text(s) }
func (s CallStatus) Valid() bool    { return callStatuses.valid(s) }

func ParseTableState(value string) (TableState, error)   { return tableStates.parse(value) }
func ParseOrderStatus(value string) (OrderStatus, error) { return orderStatuses.parse(value) }
func ParseCallReason(value string) (CallReason, error)   { return callReasons.parse(value) }
func ParseCallStatus(value string) (CallStatus, error)   { return callStatuses.parse(value) }

func ResolveTableState(code *int, text string) (TableState, error) {
	return tableStates.resolve(code, text)
}

func ResolveOrderStatus(code *int, text string) (OrderStatus, error) {
	return orderStatuses.resolve(code, text)
}

func ResolveCallReason(code *int, text string) (CallReason, error) {
	return callReasons.resolve(code, text)
}

// OpenOrderStatuses lists every status an order can hold before its tab is closed.
func OpenOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderPreparing, OrderDelivered}
}

// KitchenOrderStatuses lists the statuses still waiting on the kitchen.
func KitchenOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderPreparing}
}
