// Package statemachine governs work order status transitions and their
// side effects on the completion timestamp.
package statemachine

import (
	"fmt"
	"time"

	"github.com/sciops/workorder-gin/internal/model"
)

// TransitionError reports an illegal status transition request. It carries
// the current and attempted status so the rejection can be shown as-is.
type TransitionError struct {
	From model.Status
	To   model.Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %q to %q", e.From, e.To)
}

// transitions is the legal transition table. Cancelled is terminal;
// Completed allows only the reopen path back to Pending.
var transitions = map[model.Status][]model.Status{
	model.StatusPending:          {model.StatusInProgress, model.StatusCancelled},
	model.StatusInProgress:       {model.StatusAwaitingApproval, model.StatusCompleted, model.StatusCancelled},
	model.StatusAwaitingApproval: {model.StatusCompleted, model.StatusInProgress, model.StatusCancelled},
	model.StatusCompleted:        {model.StatusPending},
	model.StatusCancelled:        {},
}

// Initial is the status assigned to every freshly created work order.
func Initial() model.Status {
	return model.StatusPending
}

// CanTransition reports whether from → to is a legal move.
func CanTransition(from, to model.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal moves out of from, in table order.
func NextStatuses(from model.Status) []model.Status {
	next := make([]model.Status, len(transitions[from]))
	copy(next, transitions[from])
	return next
}

// Apply moves the order to the requested status, stamping the completion
// time on entering Completed and clearing it on the way out (reopen).
// The order is only mutated when the transition is legal.
func Apply(o *model.WorkOrder, to model.Status, now time.Time) error {
	if !to.Valid() {
		return fmt.Errorf("unknown work order status %q", to)
	}
	if !CanTransition(o.Status, to) {
		return &TransitionError{From: o.Status, To: to}
	}
	from := o.Status
	o.Status = to
	switch {
	case to == model.StatusCompleted:
		at := now
		o.CompletedAt = &at
	case from == model.StatusCompleted:
		o.CompletedAt = nil
	}
	return nil
}
