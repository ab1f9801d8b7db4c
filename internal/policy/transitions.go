package policy

import (
	"errors"

	"github.com/worktrail/backend/internal/model"
)

var ErrInvalidTransition = errors.New("40903:status transition not allowed")

// TransitionTable maps a task status to the statuses it may move to.
// A nil table is fully permissive, which matches the historical
// behavior where any status could jump to any other.
type TransitionTable map[model.TaskStatus][]model.TaskStatus

// StrictTransitions enforces a forward-only workflow with explicit
// reopen edges. Enabled via workflow.strict_transitions in config.
var StrictTransitions = TransitionTable{
	model.StatusTodo:     {model.StatusOngoing},
	model.StatusOngoing:  {model.StatusTodo, model.StatusComplete},
	model.StatusComplete: {model.StatusOngoing},
}

// CheckTransition validates a status change against the table.
// Re-asserting the current status is always a permitted no-op.
func (t TransitionTable) CheckTransition(from, to model.TaskStatus) error {
	if t == nil || from == to {
		return nil
	}
	for _, allowed := range t[from] {
		if allowed == to {
			return nil
		}
	}
	return ErrInvalidTransition
}
