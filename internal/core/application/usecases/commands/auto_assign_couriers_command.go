package commands

import (
	"errors"

	"cargo/internal/pkg/guard"
)

var ErrAutoAssignCouriersCommandIsNotConstructed = errors.New(
	"AutoAssignCouriersCommand must be created via NewAutoAssignCouriersCommand constructor",
)

// AutoAssignCouriersCommand retries pickup assignment for orders that left
// intake without a courier. Parameterless; the scheduler fires it.
type AutoAssignCouriersCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoAssignCouriersCommand creates a command to trigger the retry sweep.
func NewAutoAssignCouriersCommand() AutoAssignCouriersCommand {
	return AutoAssignCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignCouriersCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignCouriersCommandIsNotConstructed)
}
