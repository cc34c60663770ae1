package exchange

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"token-exchange/internal/events"
	"token-exchange/internal/exchangeerrors"
	"token-exchange/internal/ledger"
	"token-exchange/internal/models"
	"token-exchange/internal/registry"
	"token-exchange/internal/repository"
	"token-exchange/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ExchangeService owns listing and bid state and settles sales against the
// asset registry and the balance ledger.
//
// Mutating operations are serialized by mu and touch the repository only after
// every external call has succeeded, so a failed call leaves listings, bids and
// escrow exactly as they were.
type ExchangeService struct {
	mu        sync.Mutex
	repo      repository.ExchangeDB
	assets    registry.AssetRegistry
	funds     ledger.BalanceLedger
	publisher events.Publisher
	escrow    common.Address // exchange's own ledger account and registry operator
}

// NewExchangeService creates a new ExchangeService instance
func NewExchangeService(repo repository.ExchangeDB, assets registry.AssetRegistry, funds ledger.BalanceLedger,
	publisher events.Publisher, escrow common.Address) *ExchangeService {
	return &ExchangeService{
		repo:      repo,
		assets:    assets,
		funds:     funds,
		publisher: publisher,
		escrow:    escrow,
	}
}

// EscrowAccount returns the account that holds bid escrow and acts as registry operator
func (s *ExchangeService) EscrowAccount() common.Address {
	return s.escrow
}

// CreateListing offers caller's token for sale at price
func (s *ExchangeService) CreateListing(ctx context.Context, caller common.Address, tokenID models.TokenID, price decimal.Decimal) (models.Listing, error) {
	if !price.IsPositive() {
		return models.Listing{}, fmt.Errorf("service: create listing %d: %w", tokenID, exchangeerrors.ErrNonPositivePrice)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.GetListing(tokenID); err == nil {
		return models.Listing{}, fmt.Errorf("service: create listing %d: %w", tokenID, exchangeerrors.ErrListingExists)
	}

	owner, err := s.assets.OwnerOf(ctx, tokenID)
	if err != nil {
		kind := exchangeerrors.ErrCollaboratorFailure
		if errors.Is(err, registry.ErrTokenNotFound) {
			kind = exchangeerrors.ErrNotFound
		}
		return models.Listing{}, fmt.Errorf("service: owner of token %d: %w: %w", tokenID, kind, err)
	}
	if owner != caller {
		return models.Listing{}, fmt.Errorf("service: create listing %d by %s: %w", tokenID, caller.Hex(), exchangeerrors.ErrNotTokenOwner)
	}

	listing := models.Listing{
		TokenID:   tokenID,
		Seller:    caller,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertListing(listing); err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to record listing %d: %w", tokenID, err)
	}

	s.emit(ctx, models.EventListingCreated, listing.TokenID, listing.Seller, nil, listing.Price)
	return listing, nil
}

// ChangeListingPrice lets the seller reprice an active listing; bids are untouched
func (s *ExchangeService) ChangeListingPrice(ctx context.Context, caller common.Address, tokenID models.TokenID, price decimal.Decimal) (models.Listing, error) {
	if !price.IsPositive() {
		return models.Listing{}, fmt.Errorf("service: change price of %d: %w", tokenID, exchangeerrors.ErrNonPositivePrice)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.sellerListing(caller, tokenID); err != nil {
		return models.Listing{}, err
	}

	updated, err := s.repo.UpdateListingPrice(tokenID, price)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to update listing %d: %w", tokenID, err)
	}

	s.emit(ctx, models.EventListingPriceChanged, tokenID, updated.Seller, nil, updated.Price)
	return updated, nil
}

// RemoveListing withdraws a listing and refunds every bid on it
func (s *ExchangeService) RemoveListing(ctx context.Context, caller common.Address, tokenID models.TokenID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, err := s.sellerListing(caller, tokenID)
	if err != nil {
		return err
	}

	bids, err := s.repo.GetBidsByToken(tokenID)
	if err != nil {
		return fmt.Errorf("service: failed to load bids for %d: %w", tokenID, err)
	}
	if err := s.ensureEscrowCovers(ctx, s.repo.EscrowTotal(tokenID)); err != nil {
		return fmt.Errorf("service: remove listing %d: %w", tokenID, err)
	}

	u := &unwinder{op: "remove_listing"}
	if err := s.refundBids(ctx, u, bids); err != nil {
		u.unwind(ctx)
		return fmt.Errorf("service: remove listing %d: %w", tokenID, err)
	}
	if _, _, err := s.repo.DeleteListing(tokenID); err != nil {
		u.unwind(ctx)
		return fmt.Errorf("service: failed to delete listing %d: %w", tokenID, err)
	}

	utils.Info("service: listing removed", map[string]any{
		"token_id": tokenID,
		"seller":   listing.Seller.Hex(),
		"refunded": len(bids),
	})
	s.emit(ctx, models.EventListingRemoved, tokenID, listing.Seller, nil, listing.Price)
	return nil
}

// BidOnToken escrows amount from caller as a standing offer on a listed token.
// A bidder holds at most one bid per token; it must be cancelled before bidding again.
func (s *ExchangeService) BidOnToken(ctx context.Context, caller common.Address, tokenID models.TokenID, amount decimal.Decimal) (models.Bid, error) {
	if !amount.IsPositive() {
		return models.Bid{}, fmt.Errorf("service: bid on %d: %w", tokenID, exchangeerrors.ErrNonPositiveAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	listing, err := s.repo.GetListing(tokenID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: bid on %d: %w", tokenID, err)
	}
	if listing.Seller == caller {
		return models.Bid{}, fmt.Errorf("service: bid on %d: %w", tokenID, exchangeerrors.ErrSelfTrade)
	}
	if _, err := s.repo.GetBid(tokenID, caller); err == nil {
		return models.Bid{}, fmt.Errorf("service: bid on %d by %s: %w", tokenID, caller.Hex(), exchangeerrors.ErrDuplicateBid)
	}

	u := &unwinder{op: "bid_on_token"}
	if err := s.pullIntoEscrow(ctx, u, caller, amount); err != nil {
		return models.Bid{}, fmt.Errorf("service: bid on %d: %w", tokenID, err)
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		TokenID:   tokenID,
		Bidder:    caller,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertBid(bid); err != nil {
		u.unwind(ctx)
		return models.Bid{}, fmt.Errorf("service: failed to record bid on %d by %s: %w", tokenID, caller.Hex(), err)
	}

	s.emit(ctx, models.EventBidPlaced, tokenID, listing.Seller, &caller, amount)
	return bid, nil
}

// CancelBid deletes caller's bid and refunds its escrow
func (s *ExchangeService) CancelBid(ctx context.Context, caller common.Address, tokenID models.TokenID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bid, err := s.repo.GetBid(tokenID, caller)
	if err != nil {
		return fmt.Errorf("service: cancel bid on %d: %w", tokenID, err)
	}
	listing, err := s.repo.GetListing(tokenID)
	if err != nil {
		return fmt.Errorf("service: cancel bid on %d: %w", tokenID, err)
	}

	u := &unwinder{op: "cancel_bid"}
	if err := s.payFromEscrow(ctx, u, caller, bid.Amount); err != nil {
		return fmt.Errorf("service: cancel bid on %d: %w", tokenID, err)
	}
	if _, err := s.repo.DeleteBid(tokenID, caller); err != nil {
		u.unwind(ctx)
		return fmt.Errorf("service: failed to delete bid on %d by %s: %w", tokenID, caller.Hex(), err)
	}

	s.emit(ctx, models.EventBidCancelled, tokenID, listing.Seller, &caller, bid.Amount)
	return nil
}

// BuyToken purchases a listed token at its asking price. Payment goes to the seller,
// the token to caller, and every outstanding bid is refunded.
func (s *ExchangeService) BuyToken(ctx context.Context, caller common.Address, tokenID models.TokenID) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, err := s.repo.GetListing(tokenID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: buy %d: %w", tokenID, err)
	}
	if listing.Seller == caller {
		return models.Listing{}, fmt.Errorf("service: buy %d: %w", tokenID, exchangeerrors.ErrSelfTrade)
	}
	bids, err := s.repo.GetBidsByToken(tokenID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to load bids for %d: %w", tokenID, err)
	}
	if err := s.ensureEscrowCovers(ctx, s.repo.EscrowTotal(tokenID)); err != nil {
		return models.Listing{}, fmt.Errorf("service: buy %d: %w", tokenID, err)
	}

	u := &unwinder{op: "buy_token"}
	if err := s.pullIntoEscrow(ctx, u, caller, listing.Price); err != nil {
		return models.Listing{}, fmt.Errorf("service: buy %d: %w", tokenID, err)
	}
	if err := s.settle(ctx, u, listing, caller, listing.Price, bids); err != nil {
		u.unwind(ctx)
		return models.Listing{}, fmt.Errorf("service: buy %d: %w", tokenID, err)
	}

	utils.Info("service: token sold", map[string]any{
		"token_id": tokenID,
		"seller":   listing.Seller.Hex(),
		"buyer":    caller.Hex(),
		"price":    listing.Price.String(),
		"refunded": len(bids),
	})
	s.emit(ctx, models.EventTokenSold, tokenID, listing.Seller, &caller, listing.Price)
	return listing, nil
}

// SellViaBidding lets the seller accept the best bid. The highest amount wins and
// the earliest bid breaks ties; the winner's escrow pays the seller and all other
// bids are refunded.
func (s *ExchangeService) SellViaBidding(ctx context.Context, caller common.Address, tokenID models.TokenID) (models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, err := s.sellerListing(caller, tokenID)
	if err != nil {
		return models.Bid{}, err
	}
	winning, err := s.repo.GetMaxBid(tokenID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: sell %d via bidding: %w", tokenID, err)
	}
	bids, err := s.repo.GetBidsByToken(tokenID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to load bids for %d: %w", tokenID, err)
	}
	if err := s.ensureEscrowCovers(ctx, s.repo.EscrowTotal(tokenID)); err != nil {
		return models.Bid{}, fmt.Errorf("service: sell %d via bidding: %w", tokenID, err)
	}

	losing := make([]models.Bid, 0, len(bids))
	for _, b := range bids {
		if b.BidID != winning.BidID {
			losing = append(losing, b)
		}
	}

	u := &unwinder{op: "sell_via_bidding"}
	if err := s.settle(ctx, u, listing, winning.Bidder, winning.Amount, losing); err != nil {
		u.unwind(ctx)
		return models.Bid{}, fmt.Errorf("service: sell %d via bidding: %w", tokenID, err)
	}

	utils.Info("service: token sold via bid", map[string]any{
		"token_id": tokenID,
		"seller":   listing.Seller.Hex(),
		"winner":   winning.Bidder.Hex(),
		"amount":   winning.Amount.String(),
		"refunded": len(losing),
	})
	s.emit(ctx, models.EventTokenSoldViaBid, tokenID, listing.Seller, &winning.Bidder, winning.Amount)
	return winning, nil
}

// settle runs the shared tail of both sale paths once the payment sits in escrow:
// move the token, pay the seller, refund the remaining bids, then drop the listing.
// The token transfer comes first since it is the step most likely to be refused.
func (s *ExchangeService) settle(ctx context.Context, u *unwinder, listing models.Listing, buyer common.Address,
	payment decimal.Decimal, refunds []models.Bid) error {
	if err := s.transferAsset(ctx, u, listing.Seller, buyer, listing.TokenID); err != nil {
		return err
	}
	if err := s.payFromEscrow(ctx, u, listing.Seller, payment); err != nil {
		return err
	}
	if err := s.refundBids(ctx, u, refunds); err != nil {
		return err
	}
	if _, _, err := s.repo.DeleteListing(listing.TokenID); err != nil {
		return fmt.Errorf("failed to delete listing %d: %w", listing.TokenID, err)
	}
	return nil
}

// TotalListings returns the number of active listings
func (s *ExchangeService) TotalListings() int {
	return s.repo.CountListings()
}

// GetListing returns the active listing for a token
func (s *ExchangeService) GetListing(tokenID models.TokenID) (models.Listing, error) {
	listing, err := s.repo.GetListing(tokenID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to get listing %d: %w", tokenID, err)
	}
	return listing, nil
}

// GetAllListings returns every active listing in creation order
func (s *ExchangeService) GetAllListings() []models.Listing {
	return s.repo.ListListings()
}

// GetListingsByUser returns the active listings whose seller is account
func (s *ExchangeService) GetListingsByUser(account common.Address) []models.Listing {
	return s.repo.ListListingsBySeller(account)
}

// GetAllBids returns the active bids on a token in the order they were placed.
// An unlisted token has no bids.
func (s *ExchangeService) GetAllBids(tokenID models.TokenID) ([]models.Bid, error) {
	bids, err := s.repo.GetBidsByToken(tokenID)
	if errors.Is(err, exchangeerrors.ErrListingNotFound) {
		return []models.Bid{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for %d: %w", tokenID, err)
	}
	return bids, nil
}

// GetMaxBidder returns the bidder that SellViaBidding would pick right now
func (s *ExchangeService) GetMaxBidder(tokenID models.TokenID) (models.Bid, error) {
	bid, err := s.repo.GetMaxBid(tokenID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get max bidder for %d: %w", tokenID, err)
	}
	return bid, nil
}

// sellerListing loads the listing and checks that caller created it
func (s *ExchangeService) sellerListing(caller common.Address, tokenID models.TokenID) (models.Listing, error) {
	listing, err := s.repo.GetListing(tokenID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: listing %d: %w", tokenID, err)
	}
	if listing.Seller != caller {
		return models.Listing{}, fmt.Errorf("service: listing %d caller %s: %w", tokenID, caller.Hex(), exchangeerrors.ErrNotSeller)
	}
	return listing, nil
}

func (s *ExchangeService) emit(ctx context.Context, typ models.EventType, tokenID models.TokenID,
	seller common.Address, counterparty *common.Address, amount decimal.Decimal) {
	if s.publisher == nil {
		return
	}
	var cp *common.Address
	if counterparty != nil {
		c := *counterparty
		cp = &c
	}
	s.publisher.Publish(ctx, models.Event{
		ID:           utils.GenerateID(),
		Type:         typ,
		TokenID:      tokenID,
		Seller:       seller,
		Counterparty: cp,
		Amount:       amount,
		Timestamp:    time.Now().UTC(),
	})
}
