package registry

//go:generate mockgen -source=registry.go -destination=mock_registry.go -package=registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	model "token-exchange/internal/models"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrTokenNotFound = errors.New("token does not exist")
	ErrTokenExists   = errors.New("token already minted")
	ErrNotOwner      = errors.New("from is not the token owner")
	ErrNotApproved   = errors.New("operator is not approved for token")
	ErrZeroAddress   = errors.New("zero address")
)

// AssetRegistry is the ownership and transfer-authorization authority for tokens.
// The exchange only reads ownership and asks the registry to move tokens on a seller's behalf.
type AssetRegistry interface {
	OwnerOf(ctx context.Context, tokenID model.TokenID) (common.Address, error)
	TransferFrom(ctx context.Context, operator, from, to common.Address, tokenID model.TokenID) error
}

// MemoryRegistry is a concurrency-safe in-memory AssetRegistry
type MemoryRegistry struct {
	mu        sync.RWMutex
	owners    map[model.TokenID]common.Address
	approvals map[model.TokenID]common.Address          // key: tokenID -> value: single-token approved address
	operators map[common.Address]map[common.Address]bool // key: owner -> value: set of approved operators
}

// NewMemoryRegistry creates an empty registry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		owners:    make(map[model.TokenID]common.Address),
		approvals: make(map[model.TokenID]common.Address),
		operators: make(map[common.Address]map[common.Address]bool),
	}
}

// Mint creates tokenID owned by to
func (r *MemoryRegistry) Mint(to common.Address, tokenID model.TokenID) error {
	if to == (common.Address{}) {
		return fmt.Errorf("mint token %d: %w", tokenID, ErrZeroAddress)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owners[tokenID]; ok {
		return fmt.Errorf("mint token %d: %w", tokenID, ErrTokenExists)
	}
	r.owners[tokenID] = to
	return nil
}

// OwnerOf returns the current owner of tokenID
func (r *MemoryRegistry) OwnerOf(_ context.Context, tokenID model.TokenID) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[tokenID]
	if !ok {
		return common.Address{}, fmt.Errorf("owner of token %d: %w", tokenID, ErrTokenNotFound)
	}
	return owner, nil
}

// Approve lets spender transfer a single token. Only the owner may approve;
// the zero address clears the approval.
func (r *MemoryRegistry) Approve(owner, spender common.Address, tokenID model.TokenID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.owners[tokenID]
	if !ok {
		return fmt.Errorf("approve token %d: %w", tokenID, ErrTokenNotFound)
	}
	if current != owner {
		return fmt.Errorf("approve token %d: %w", tokenID, ErrNotOwner)
	}
	if spender == (common.Address{}) {
		delete(r.approvals, tokenID)
		return nil
	}
	r.approvals[tokenID] = spender
	return nil
}

// GetApproved returns the single-token approved address, or the zero address
func (r *MemoryRegistry) GetApproved(tokenID model.TokenID) common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.approvals[tokenID]
}

// SetApprovalForAll grants or revokes operator rights over every token owned by owner
func (r *MemoryRegistry) SetApprovalForAll(owner, operator common.Address, approved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !approved {
		delete(r.operators[owner], operator)
		return
	}
	if r.operators[owner] == nil {
		r.operators[owner] = make(map[common.Address]bool)
	}
	r.operators[owner][operator] = true
}

// IsApprovedForAll reports whether operator may move every token of owner
func (r *MemoryRegistry) IsApprovedForAll(owner, operator common.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.operators[owner][operator]
}

// TransferFrom moves tokenID from -> to on behalf of operator. Nothing changes on failure.
func (r *MemoryRegistry) TransferFrom(_ context.Context, operator, from, to common.Address, tokenID model.TokenID) error {
	if to == (common.Address{}) {
		return fmt.Errorf("transfer token %d: %w", tokenID, ErrZeroAddress)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.owners[tokenID]
	if !ok {
		return fmt.Errorf("transfer token %d: %w", tokenID, ErrTokenNotFound)
	}
	if owner != from {
		return fmt.Errorf("transfer token %d from %s: %w", tokenID, from.Hex(), ErrNotOwner)
	}
	if operator != owner && r.approvals[tokenID] != operator && !r.operators[owner][operator] {
		return fmt.Errorf("transfer token %d by %s: %w", tokenID, operator.Hex(), ErrNotApproved)
	}

	delete(r.approvals, tokenID)
	r.owners[tokenID] = to
	return nil
}
