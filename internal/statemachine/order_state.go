package statemachine

import (
	"fmt"
	"strings"

	"food-marketplace/internal/data/entity"
)

type Actor string

const (
	ActorPayment       Actor = "payment"
	ActorEstablishment Actor = "establishment"
	ActorCourier       Actor = "courier"
	ActorOperator      Actor = "operator"
)

// Transition is one legal state change and who drives it.
type Transition struct {
	From  entity.OrderState
	To    entity.OrderState
	Actor Actor
}

var transitions = []Transition{
	// payment outcome reconciles a pending order; "pending" keeps it where it is
	{From: entity.OrderPending, To: entity.OrderPaid, Actor: ActorPayment},
	{From: entity.OrderPending, To: entity.OrderRejected, Actor: ActorPayment},
	{From: entity.OrderPending, To: entity.OrderPending, Actor: ActorPayment},
	// establishment marks the order ready for pickup
	{From: entity.OrderPaid, To: entity.OrderReady, Actor: ActorEstablishment},
	// courier accepts and delivers
	{From: entity.OrderReady, To: entity.OrderEnRoute, Actor: ActorCourier},
	{From: entity.OrderEnRoute, To: entity.OrderDelivered, Actor: ActorCourier},
}

type transitionKey struct {
	From  entity.OrderState
	To    entity.OrderState
	Actor Actor
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool, len(transitions))
	for _, t := range transitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns the distinct next states reachable from state.
func ValidTransitionsFrom(state entity.OrderState) []entity.OrderState {
	var nexts []entity.OrderState
	seen := map[entity.OrderState]bool{}
	for _, t := range transitions {
		if t.From == state && t.To != state && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition returns nil when actor may move an order from one state to another.
func CanTransition(from, to entity.OrderState, actor Actor) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return fmt.Errorf("invalid transition %s -> %s for actor %q, valid next states: %s",
		from, to, actor, describeValidFrom(from))
}

// IsGraphed reports whether any actor may perform the transition.
func IsGraphed(from, to entity.OrderState) bool {
	for _, t := range transitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}

func describeValidFrom(state entity.OrderState) string {
	if state.IsTerminal() {
		return "none (terminal state)"
	}
	nexts := ValidTransitionsFrom(state)
	if len(nexts) == 0 {
		return "none"
	}

	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
