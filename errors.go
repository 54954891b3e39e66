package storefront

import "errors"

// The engine reports failures as wrapped sentinel values so the replay loop
// can classify a record failure without inspecting message text.
//
// ErrParse is the only fatal kind: the record never became a transaction.
// All the others are constraint failures raised while applying one.
var (
	// ErrParse marks a malformed record: unknown code or wrong field layout.
	ErrParse = errors.New("parse error")
	// ErrUsername marks an unknown, duplicate, or self-referential username.
	ErrUsername = errors.New("username error")
	// ErrBalance marks insufficient funds or a negative balance attempt.
	ErrBalance = errors.New("balance error")
	// ErrListing marks a duplicate, missing, on-probation, or ungiftable listing.
	ErrListing = errors.New("listing error")
	// ErrAccess marks an operation the acting account's capability forbids.
	ErrAccess = errors.New("access error")
	// ErrDailyLimit marks a deposit that would exceed the daily cap.
	ErrDailyLimit = errors.New("daily limit error")
)

// Fatal reports whether err is a parse-level failure rather than a business
// rule violation.
func Fatal(err error) bool { return errors.Is(err, ErrParse) }
