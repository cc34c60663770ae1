package exchangeerrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the exchange core matches exactly one of these.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCollaboratorFailure = errors.New("collaborator failure")
)

// Repository-level errors
var (
	ErrListingNotFound = fmt.Errorf("listing %w", ErrNotFound)
	ErrBidNotFound     = fmt.Errorf("bid %w", ErrNotFound)
	ErrNoBids          = fmt.Errorf("no bids on listing: %w", ErrNotFound)
	ErrListingExists   = fmt.Errorf("listing already exists: %w", ErrInvalidArgument)
	ErrDuplicateBid    = fmt.Errorf("bidder already holds an active bid: %w", ErrInvalidArgument)
)

// business logic errors
var (
	ErrNotTokenOwner     = fmt.Errorf("caller does not own token: %w", ErrUnauthorized)
	ErrNotSeller         = fmt.Errorf("caller is not the seller: %w", ErrUnauthorized)
	ErrNonPositivePrice  = fmt.Errorf("price must be positive: %w", ErrInvalidArgument)
	ErrNonPositiveAmount = fmt.Errorf("amount must be positive: %w", ErrInvalidArgument)
	ErrSelfTrade         = fmt.Errorf("seller cannot trade own listing: %w", ErrInvalidArgument)
)
