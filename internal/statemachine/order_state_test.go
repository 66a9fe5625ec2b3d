package statemachine

import (
	"testing"

	"food-marketplace/internal/data/entity"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from  entity.OrderState
		to    entity.OrderState
		actor Actor
		ok    bool
	}{
		{entity.OrderPending, entity.OrderPaid, ActorPayment, true},
		{entity.OrderPending, entity.OrderRejected, ActorPayment, true},
		{entity.OrderPaid, entity.OrderReady, ActorEstablishment, true},
		{entity.OrderReady, entity.OrderEnRoute, ActorCourier, true},
		{entity.OrderEnRoute, entity.OrderDelivered, ActorCourier, true},
		{entity.OrderPaid, entity.OrderEnRoute, ActorCourier, false},
		{entity.OrderReady, entity.OrderEnRoute, ActorEstablishment, false},
		{entity.OrderDelivered, entity.OrderPending, ActorOperator, false},
		{entity.OrderRejected, entity.OrderPaid, ActorPayment, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	got := ValidTransitionsFrom(entity.OrderPending)
	want := []entity.OrderState{entity.OrderPaid, entity.OrderRejected}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ValidTransitionsFrom(PENDING) mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, ValidTransitionsFrom(entity.OrderDelivered))
	assert.Empty(t, ValidTransitionsFrom(entity.OrderRejected))
}

func TestTerminalStatesHaveNoSuccessors(t *testing.T) {
	for _, state := range []entity.OrderState{entity.OrderDelivered, entity.OrderRejected} {
		assert.Empty(t, ValidTransitionsFrom(state), "terminal state %s has outgoing transition", state)
	}

	err := CanTransition(entity.OrderDelivered, entity.OrderPaid, ActorOperator)
	assert.ErrorContains(t, err, "none (terminal state)")
}

func TestIsGraphed(t *testing.T) {
	assert.True(t, IsGraphed(entity.OrderPaid, entity.OrderReady))
	assert.False(t, IsGraphed(entity.OrderDelivered, entity.OrderPaid))
	assert.False(t, IsGraphed(entity.OrderPending, entity.OrderReady))
}
