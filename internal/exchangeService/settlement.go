package exchange

import (
	"context"
	"errors"
	"fmt"

	"token-exchange/internal/exchangeerrors"
	model "token-exchange/internal/models"
	"token-exchange/internal/registry"
	"token-exchange/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// unwinder collects compensating actions for external steps that already succeeded,
// so a failed operation can hand back what it took before returning.
type unwinder struct {
	op    string
	steps []func(ctx context.Context) error
}

func (u *unwinder) push(step func(ctx context.Context) error) {
	u.steps = append(u.steps, step)
}

// unwind runs the compensations newest first. A compensation that fails is logged
// and the rest still run.
func (u *unwinder) unwind(ctx context.Context) {
	for i := len(u.steps) - 1; i >= 0; i-- {
		if err := u.steps[i](ctx); err != nil {
			utils.Error("service: compensation failed", map[string]any{
				"operation": u.op,
				"step":      i,
				"error":     err.Error(),
			})
		}
	}
	u.steps = nil
}

// pullIntoEscrow moves amount from payer into the exchange's escrow account and
// registers the undo: the refund plus the allowance the pull consumed.
func (s *ExchangeService) pullIntoEscrow(ctx context.Context, u *unwinder, payer common.Address, amount decimal.Decimal) error {
	allowance, err := s.funds.Allowance(ctx, payer, s.escrow)
	if err != nil {
		return fmt.Errorf("allowance of %s: %w: %w", payer.Hex(), exchangeerrors.ErrCollaboratorFailure, err)
	}
	if err := s.funds.TransferFrom(ctx, s.escrow, payer, s.escrow, amount); err != nil {
		return fmt.Errorf("pull %s from %s: %w: %w", amount, payer.Hex(), exchangeerrors.ErrInsufficientFunds, err)
	}
	u.push(func(ctx context.Context) error {
		if err := s.funds.Transfer(ctx, s.escrow, payer, amount); err != nil {
			return err
		}
		return s.funds.Approve(ctx, payer, s.escrow, allowance)
	})
	return nil
}

// payFromEscrow moves amount out of escrow to payee. Its compensation pulls the funds
// back, which only succeeds if the payee has authorised the exchange to do so, and
// then resets the payee's allowance to what it was before the clawback.
func (s *ExchangeService) payFromEscrow(ctx context.Context, u *unwinder, payee common.Address, amount decimal.Decimal) error {
	if err := s.funds.Transfer(ctx, s.escrow, payee, amount); err != nil {
		return fmt.Errorf("pay %s to %s: %w: %w", amount, payee.Hex(), exchangeerrors.ErrCollaboratorFailure, err)
	}
	u.push(func(ctx context.Context) error {
		allowance, err := s.funds.Allowance(ctx, payee, s.escrow)
		if err != nil {
			return err
		}
		if err := s.funds.TransferFrom(ctx, s.escrow, payee, s.escrow, amount); err != nil {
			return err
		}
		return s.funds.Approve(ctx, payee, s.escrow, allowance)
	})
	return nil
}

// refundBids returns every bid's escrow to its bidder
func (s *ExchangeService) refundBids(ctx context.Context, u *unwinder, bids []model.Bid) error {
	for _, b := range bids {
		if err := s.payFromEscrow(ctx, u, b.Bidder, b.Amount); err != nil {
			return fmt.Errorf("refund bid %s: %w", b.BidID, err)
		}
	}
	return nil
}

// ensureEscrowCovers checks that escrow holds at least need before any payout starts,
// so payouts cannot run dry halfway through a settlement.
func (s *ExchangeService) ensureEscrowCovers(ctx context.Context, need decimal.Decimal) error {
	held, err := s.funds.BalanceOf(ctx, s.escrow)
	if err != nil {
		return fmt.Errorf("escrow balance: %w: %w", exchangeerrors.ErrCollaboratorFailure, err)
	}
	if held.LessThan(need) {
		return fmt.Errorf("escrow holds %s, settlement needs %s: %w", held, need, exchangeerrors.ErrCollaboratorFailure)
	}
	return nil
}

// transferAsset moves the token from seller to buyer using the exchange's operator rights.
// Its compensation moves the token back, which needs the buyer to have approved the exchange.
func (s *ExchangeService) transferAsset(ctx context.Context, u *unwinder, seller, buyer common.Address, tokenID model.TokenID) error {
	if err := s.assets.TransferFrom(ctx, s.escrow, seller, buyer, tokenID); err != nil {
		kind := exchangeerrors.ErrCollaboratorFailure
		if errors.Is(err, registry.ErrNotApproved) {
			kind = exchangeerrors.ErrUnauthorized
		}
		return fmt.Errorf("transfer token %d to %s: %w: %w", tokenID, buyer.Hex(), kind, err)
	}
	u.push(func(ctx context.Context) error {
		return s.assets.TransferFrom(ctx, s.escrow, buyer, seller, tokenID)
	})
	return nil
}
