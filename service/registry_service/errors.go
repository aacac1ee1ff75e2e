package registry_service

import "errors"

// Ledger error taxonomy. Every precondition violation aborts the whole
// operation before anything is staged; there are no partial commits.
var (
	// ErrUnknownToken token does not exist in the registry
	ErrUnknownToken = errors.New("token does not exist")

	// ErrDuplicateTokenID mint attempted with an existing token ID
	ErrDuplicateTokenID = errors.New("token ID already exists")

	// ErrInvalidTokenID token ID missing or not permitted by the drop config
	ErrInvalidTokenID = errors.New("invalid token ID")

	// ErrNotOwner operation is owner-gated and the caller is not the owner
	ErrNotOwner = errors.New("caller is not the token owner")

	// ErrUnauthorized caller is neither the owner nor a delegate with a
	// matching approval ID
	ErrUnauthorized = errors.New("caller is not authorized for this token")

	// ErrOwnerMismatch the expected-owner guard did not match
	ErrOwnerMismatch = errors.New("current owner does not match expected owner")

	// ErrCapExceeded a mint cap (total or per external users) is reached
	ErrCapExceeded = errors.New("mint cap exceeded")

	// ErrInsufficientPayment attached deposit does not cover the operation
	ErrInsufficientPayment = errors.New("attached deposit is insufficient")

	// ErrInvalidAccount malformed or unacceptable account ID
	ErrInvalidAccount = errors.New("invalid account ID")

	// ErrTooManyRoyaltyShares royalty map larger than the configured limit
	ErrTooManyRoyaltyShares = errors.New("too many royalty shares")

	// ErrInvalidRoyaltyTotal royalty basis points sum above 10000
	ErrInvalidRoyaltyTotal = errors.New("royalty shares exceed 10000 basis points")
)
