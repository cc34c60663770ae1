package ledger

//go:generate mockgen -source=ledger.go -destination=mock_ledger.go -package=ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrZeroAddress           = errors.New("zero address")
)

// BalanceLedger owns balances and allowances of the single payment unit.
// Every mutating call is atomic: it either fully applies or returns an error.
type BalanceLedger interface {
	BalanceOf(ctx context.Context, account common.Address) (decimal.Decimal, error)
	Allowance(ctx context.Context, owner, spender common.Address) (decimal.Decimal, error)
	Approve(ctx context.Context, owner, spender common.Address, amount decimal.Decimal) error
	Transfer(ctx context.Context, from, to common.Address, amount decimal.Decimal) error
	TransferFrom(ctx context.Context, spender, from, to common.Address, amount decimal.Decimal) error
}

// MemoryLedger is a concurrency-safe in-memory BalanceLedger
type MemoryLedger struct {
	mu         sync.RWMutex
	balances   map[common.Address]decimal.Decimal
	allowances map[common.Address]map[common.Address]decimal.Decimal // key: owner -> spender -> remaining allowance
}

// NewMemoryLedger creates a ledger with no balances
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances:   make(map[common.Address]decimal.Decimal),
		allowances: make(map[common.Address]map[common.Address]decimal.Decimal),
	}
}

// Mint credits amount to account out of thin air
func (l *MemoryLedger) Mint(account common.Address, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("mint to %s: %w", account.Hex(), ErrInvalidAmount)
	}
	if account == (common.Address{}) {
		return fmt.Errorf("mint: %w", ErrZeroAddress)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] = l.balances[account].Add(amount)
	return nil
}

// BalanceOf returns the balance of account; unknown accounts hold zero
func (l *MemoryLedger) BalanceOf(_ context.Context, account common.Address) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account], nil
}

// Allowance returns how much spender may still pull from owner
func (l *MemoryLedger) Allowance(_ context.Context, owner, spender common.Address) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allowances[owner][spender], nil
}

// Approve sets (not adds to) the allowance of spender over owner's funds. Zero revokes it.
func (l *MemoryLedger) Approve(_ context.Context, owner, spender common.Address, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("approve %s: %w", spender.Hex(), ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.IsZero() {
		delete(l.allowances[owner], spender)
		return nil
	}
	if l.allowances[owner] == nil {
		l.allowances[owner] = make(map[common.Address]decimal.Decimal)
	}
	l.allowances[owner][spender] = amount
	return nil
}

// Transfer moves amount of from's own funds to to
func (l *MemoryLedger) Transfer(_ context.Context, from, to common.Address, amount decimal.Decimal) error {
	if err := validateTransfer(to, amount); err != nil {
		return fmt.Errorf("transfer from %s: %w", from.Hex(), err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[from].LessThan(amount) {
		return fmt.Errorf("transfer %s from %s: %w", amount, from.Hex(), ErrInsufficientBalance)
	}
	l.move(from, to, amount)
	return nil
}

// TransferFrom pulls amount from -> to on behalf of spender, consuming allowance
func (l *MemoryLedger) TransferFrom(_ context.Context, spender, from, to common.Address, amount decimal.Decimal) error {
	if err := validateTransfer(to, amount); err != nil {
		return fmt.Errorf("transfer from %s by %s: %w", from.Hex(), spender.Hex(), err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	allowance := l.allowances[from][spender]
	if allowance.LessThan(amount) {
		return fmt.Errorf("transfer %s from %s by %s: %w", amount, from.Hex(), spender.Hex(), ErrInsufficientAllowance)
	}
	if l.balances[from].LessThan(amount) {
		return fmt.Errorf("transfer %s from %s: %w", amount, from.Hex(), ErrInsufficientBalance)
	}

	l.allowances[from][spender] = allowance.Sub(amount)
	l.move(from, to, amount)
	return nil
}

func (l *MemoryLedger) move(from, to common.Address, amount decimal.Decimal) {
	l.balances[from] = l.balances[from].Sub(amount)
	l.balances[to] = l.balances[to].Add(amount)
}

func validateTransfer(to common.Address, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	return nil
}
