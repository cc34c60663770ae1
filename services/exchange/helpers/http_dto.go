package helpers

import (
	"time"

	model "token-exchange/internal/models"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs

// TokenID is a pointer so that token 0 still satisfies "required"
type CreateListingRequest struct {
	TokenID *uint64         `json:"token_id" binding:"required"`
	Price   decimal.Decimal `json:"price"`
}

type ChangePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type ListingResponse struct {
	TokenID   uint64 `json:"token_id"`
	Seller    string `json:"seller"`
	Price     string `json:"price"`
	CreatedAt string `json:"created_at"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	TokenID   uint64 `json:"token_id"`
	Bidder    string `json:"bidder"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"created_at"`
}

func NewListingResponse(l model.Listing) ListingResponse {
	return ListingResponse{
		TokenID:   uint64(l.TokenID),
		Seller:    l.Seller.Hex(),
		Price:     l.Price.String(),
		CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:     b.BidID,
		TokenID:   uint64(b.TokenID),
		Bidder:    b.Bidder.Hex(),
		Amount:    b.Amount.String(),
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewListingResponses(ls []model.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewListingResponse(l))
	}
	return out
}

func NewBidResponses(bs []model.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, NewBidResponse(b))
	}
	return out
}
