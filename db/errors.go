package db

import "errors"

// Validation failures: bad input, nothing mutated.
var (
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrNegativeQuantity = errors.New("returned quantity cannot be negative")
	ErrExceedsIssued    = errors.New("returned quantity cannot exceed issued quantity")
)

// Not-found failures.
var (
	ErrLabNotFound         = errors.New("lab not found")
	ErrComponentNotFound   = errors.New("component not found")
	ErrGroupNotFound       = errors.New("component group not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("user not found")
)

// Business-rule violations: the operation is well-formed but would break a
// stock invariant. Wrapped with the offending quantity where it helps the
// user.
var (
	ErrInsufficientStock   = errors.New("insufficient quantity available")
	ErrNoActiveIssue       = errors.New("no active issued transactions found for return")
	ErrOverReturn          = errors.New("cannot return more than pending quantity")
	ErrExceedsInitialStock = errors.New("returned quantity would exceed initial stock")
	ErrNegativeStock       = errors.New("component quantity would become negative")
)

// Role-scope violations.
var ErrAccessDenied = errors.New("access denied")

// ErrDuplicate covers natural-key collisions (uid, group name per lab).
var ErrDuplicate = errors.New("already exists")
