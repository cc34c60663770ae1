package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"fmt"
	"sync"

	"token-exchange/internal/exchangeerrors"
	model "token-exchange/internal/models"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ExchangeDB defines the listing and bid storage interface for the exchange
type ExchangeDB interface {
	InsertListing(listing model.Listing) error
	GetListing(tokenID model.TokenID) (model.Listing, error)
	UpdateListingPrice(tokenID model.TokenID, price decimal.Decimal) (model.Listing, error)
	DeleteListing(tokenID model.TokenID) (model.Listing, []model.Bid, error)
	ListListings() []model.Listing
	ListListingsBySeller(seller common.Address) []model.Listing
	CountListings() int

	InsertBid(bid model.Bid) error
	GetBid(tokenID model.TokenID, bidder common.Address) (model.Bid, error)
	DeleteBid(tokenID model.TokenID, bidder common.Address) (model.Bid, error)
	GetBidsByToken(tokenID model.TokenID) ([]model.Bid, error)
	GetMaxBid(tokenID model.TokenID) (model.Bid, error)
	EscrowTotal(tokenID model.TokenID) decimal.Decimal
}

// MemoryRepo is a concurrency-safe in-memory implementation of ExchangeDB
type MemoryRepo struct {
	mu       sync.RWMutex
	order    []model.TokenID                 // listed tokens in creation order
	listings map[model.TokenID]model.Listing // key: tokenID -> value: active listing
	bids     map[model.TokenID][]model.Bid   // key: tokenID -> value: bids in insertion order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		listings: make(map[model.TokenID]model.Listing),
		bids:     make(map[model.TokenID][]model.Bid),
	}
}

// InsertListing records a new listing; at most one may exist per token
func (r *MemoryRepo) InsertListing(listing model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listing.TokenID]; ok {
		return fmt.Errorf("insert listing %d: %w", listing.TokenID, exchangeerrors.ErrListingExists)
	}
	r.listings[listing.TokenID] = listing
	r.order = append(r.order, listing.TokenID)
	return nil
}

// GetListing returns the active listing for a token
func (r *MemoryRepo) GetListing(tokenID model.TokenID) (model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[tokenID]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %d: %w", tokenID, exchangeerrors.ErrListingNotFound)
	}
	return listing, nil
}

// UpdateListingPrice sets a new price and returns the updated listing
func (r *MemoryRepo) UpdateListingPrice(tokenID model.TokenID, price decimal.Decimal) (model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[tokenID]
	if !ok {
		return model.Listing{}, fmt.Errorf("update listing %d: %w", tokenID, exchangeerrors.ErrListingNotFound)
	}
	listing.Price = price
	r.listings[tokenID] = listing
	return listing, nil
}

// DeleteListing removes a listing together with every bid attached to it.
// The removed bids are returned in insertion order so the caller can settle them.
func (r *MemoryRepo) DeleteListing(tokenID model.TokenID) (model.Listing, []model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[tokenID]
	if !ok {
		return model.Listing{}, nil, fmt.Errorf("delete listing %d: %w", tokenID, exchangeerrors.ErrListingNotFound)
	}

	removed := r.bids[tokenID]
	delete(r.bids, tokenID)
	delete(r.listings, tokenID)

	for i, id := range r.order {
		if id == tokenID {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return listing, removed, nil
}

// ListListings returns all active listings in creation order
func (r *MemoryRepo) ListListings() []model.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Listing, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.listings[id])
	}
	return out
}

// ListListingsBySeller returns the active listings created by seller, in creation order
func (r *MemoryRepo) ListListingsBySeller(seller common.Address) []model.Listing {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Listing, 0)
	for _, id := range r.order {
		if l := r.listings[id]; l.Seller == seller {
			out = append(out, l)
		}
	}
	return out
}

// CountListings returns the number of active listings
func (r *MemoryRepo) CountListings() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listings)
}

// InsertBid appends a bid to its token's bid list
func (r *MemoryRepo) InsertBid(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[bid.TokenID]; !ok {
		return fmt.Errorf("insert bid on %d: %w", bid.TokenID, exchangeerrors.ErrListingNotFound)
	}
	if indexOf(r.bids[bid.TokenID], bid.Bidder) >= 0 {
		return fmt.Errorf("insert bid on %d by %s: %w", bid.TokenID, bid.Bidder.Hex(), exchangeerrors.ErrDuplicateBid)
	}

	r.bids[bid.TokenID] = append(r.bids[bid.TokenID], bid)
	return nil
}

// GetBid returns bidder's active bid on a token
func (r *MemoryRepo) GetBid(tokenID model.TokenID, bidder common.Address) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := r.bids[tokenID]
	i := indexOf(bids, bidder)
	if i < 0 {
		return model.Bid{}, fmt.Errorf("get bid on %d by %s: %w", tokenID, bidder.Hex(), exchangeerrors.ErrBidNotFound)
	}
	return bids[i], nil
}

// DeleteBid removes bidder's bid, keeping the remaining bids in order
func (r *MemoryRepo) DeleteBid(tokenID model.TokenID, bidder common.Address) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bids := r.bids[tokenID]
	i := indexOf(bids, bidder)
	if i < 0 {
		return model.Bid{}, fmt.Errorf("delete bid on %d by %s: %w", tokenID, bidder.Hex(), exchangeerrors.ErrBidNotFound)
	}

	removed := bids[i]
	rest := append(bids[:i:i], bids[i+1:]...)
	if len(rest) == 0 {
		delete(r.bids, tokenID)
	} else {
		r.bids[tokenID] = rest
	}
	return removed, nil
}

// GetBidsByToken returns all bids on a listed token in insertion order.
// A listed token without bids yields an empty slice.
func (r *MemoryRepo) GetBidsByToken(tokenID model.TokenID) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.listings[tokenID]; !ok {
		return nil, fmt.Errorf("get bids for %d: %w", tokenID, exchangeerrors.ErrListingNotFound)
	}
	return append([]model.Bid{}, r.bids[tokenID]...), nil
}

// GetMaxBid returns the highest bid on a token; the earliest bid wins ties
func (r *MemoryRepo) GetMaxBid(tokenID model.TokenID) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := r.bids[tokenID]
	if len(bids) == 0 {
		return model.Bid{}, fmt.Errorf("get max bid for %d: %w", tokenID, exchangeerrors.ErrNoBids)
	}

	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Amount.GreaterThan(winning.Amount) {
			winning = b
		}
	}
	return winning, nil
}

// EscrowTotal returns the sum of all active bid amounts on a token
func (r *MemoryRepo) EscrowTotal(tokenID model.TokenID) decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := decimal.Zero
	for _, b := range r.bids[tokenID] {
		total = total.Add(b.Amount)
	}
	return total
}

func indexOf(bids []model.Bid, bidder common.Address) int {
	for i, b := range bids {
		if b.Bidder == bidder {
			return i
		}
	}
	return -1
}
