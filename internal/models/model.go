package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// TokenID identifies a single non-fungible asset in the registry
type TokenID uint64

// Listing represents a token currently offered for sale at a fixed price
type Listing struct {
	TokenID   TokenID         `json:"token_id"`
	Seller    common.Address  `json:"seller"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// Bid represents an account's standing, escrowed offer on a listed token
type Bid struct {
	BidID     string          `json:"bid_id"`
	TokenID   TokenID         `json:"token_id"`
	Bidder    common.Address  `json:"bidder"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// EventType names a state change of the exchange
type EventType string

const (
	EventListingCreated      EventType = "listing_created"
	EventListingPriceChanged EventType = "listing_price_changed"
	EventListingRemoved      EventType = "listing_removed"
	EventBidPlaced           EventType = "bid_placed"
	EventBidCancelled        EventType = "bid_cancelled"
	EventTokenSold           EventType = "token_sold"
	EventTokenSoldViaBid     EventType = "token_sold_via_bid"
)

// Event is a notification emitted after a committed state change.
// Counterparty is the bidder or buyer where one exists; Amount is the
// price, bid amount or settled amount depending on Type.
type Event struct {
	ID           string          `json:"id"`
	Seq          uint64          `json:"seq"`
	Type         EventType       `json:"type"`
	TokenID      TokenID         `json:"token_id"`
	Seller       common.Address  `json:"seller"`
	Counterparty *common.Address `json:"counterparty,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Timestamp    time.Time       `json:"timestamp"`
}
