package ledger

import "errors"

// Operation failures surfaced to callers. Validation and state-conflict
// errors leave the ledger untouched; a failed token transfer aborts the
// whole operation with any committed bookkeeping rolled back first.
var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrAlreadyStaked      = errors.New("account already has an active stake")
	ErrNoActiveStake      = errors.New("account has no active stake")
	ErrLockNotElapsed     = errors.New("stake is still locked")
	ErrInvalidRate        = errors.New("reward rate must be between 1 and 10000 basis points")
	ErrInvalidDuration    = errors.New("lock duration must be positive")
	ErrInsufficientExcess = errors.New("amount exceeds vault balance not owed to stakers")
	ErrTransferFailed     = errors.New("token transfer failed")
)
