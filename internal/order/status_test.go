package order

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
	StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

func TestCanTransition_Matrix(t *testing.T) {
	allowed := map[string]bool{
		"pending->confirmed":            true,
		"pending->cancelled":            true,
		"confirmed->preparing":          true,
		"confirmed->cancelled":          true,
		"preparing->ready":              true,
		"preparing->cancelled":          true,
		"ready->out_for_delivery":       true,
		"ready->cancelled":              true,
		"out_for_delivery->delivered":   true,
		"out_for_delivery->cancelled":   true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			key := fmt.Sprintf("%s->%s", from, to)
			t.Run(key, func(t *testing.T) {
				assert.Equal(t, allowed[key], CanTransition(from, to))
			})
		}
	}
}

func TestCanTransition_TerminalStatesHaveNoEdges(t *testing.T) {
	for _, from := range []OrderStatus{StatusDelivered, StatusCancelled} {
		assert.True(t, from.IsTerminal())
		assert.Empty(t, Transitions[from])
	}
}

func TestCanTransition_NoSkipping(t *testing.T) {
	assert.False(t, CanTransition(StatusPending, StatusPreparing))
	assert.False(t, CanTransition(StatusPending, StatusDelivered))
	assert.False(t, CanTransition(StatusConfirmed, StatusReady))
	assert.False(t, CanTransition(StatusReady, StatusDelivered))
}

func TestCanTransition_NoBackwardEdges(t *testing.T) {
	assert.False(t, CanTransition(StatusConfirmed, StatusPending))
	assert.False(t, CanTransition(StatusDelivered, StatusOutForDelivery))
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}
