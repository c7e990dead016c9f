package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrReleaseStaleClaimsCommandIsNotConstructed is returned when the command
// was not created via NewReleaseStaleClaimsCommand.
var ErrReleaseStaleClaimsCommandIsNotConstructed = errors.New(
	"ReleaseStaleClaimsCommand must be created via NewReleaseStaleClaimsCommand constructor",
)

// ReleaseStaleClaimsCommand reopens deliveries whose claim went stale: the
// agency accepted but never picked the package up within the allowed age.
// Triggered periodically by the stale-claim release job.
type ReleaseStaleClaimsCommand struct { //nolint:recvcheck //using for validation
	maxClaimAge time.Duration

	guard guard.ConstructorGuard
}

// NewReleaseStaleClaimsCommand validates and builds the command.
// maxClaimAge must be positive.
func NewReleaseStaleClaimsCommand(maxClaimAge time.Duration) (ReleaseStaleClaimsCommand, error) {
	if maxClaimAge <= 0 {
		return ReleaseStaleClaimsCommand{}, errs.NewValueIsInvalidError("max claim age")
	}

	return ReleaseStaleClaimsCommand{
		maxClaimAge: maxClaimAge,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseStaleClaimsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStaleClaimsCommandIsNotConstructed)
}

// MaxClaimAge returns how long a claim may sit in accepted status before it
// is considered abandoned.
func (c ReleaseStaleClaimsCommand) MaxClaimAge() time.Duration {
	return c.maxClaimAge
}
