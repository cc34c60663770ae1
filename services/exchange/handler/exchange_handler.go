package handler

//go:generate mockgen -source=exchange_handler.go -destination=mock_handler.go -package=handler

import (
	"context"
	"fmt"
	"net/http"

	model "token-exchange/internal/models"
	"token-exchange/services/exchange/helpers"
	"token-exchange/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ExchangeServiceInterface interface {
	CreateListing(ctx context.Context, caller common.Address, tokenID model.TokenID, price decimal.Decimal) (model.Listing, error)
	ChangeListingPrice(ctx context.Context, caller common.Address, tokenID model.TokenID, price decimal.Decimal) (model.Listing, error)
	RemoveListing(ctx context.Context, caller common.Address, tokenID model.TokenID) error
	BidOnToken(ctx context.Context, caller common.Address, tokenID model.TokenID, amount decimal.Decimal) (model.Bid, error)
	CancelBid(ctx context.Context, caller common.Address, tokenID model.TokenID) error
	BuyToken(ctx context.Context, caller common.Address, tokenID model.TokenID) (model.Listing, error)
	SellViaBidding(ctx context.Context, caller common.Address, tokenID model.TokenID) (model.Bid, error)

	TotalListings() int
	GetListing(tokenID model.TokenID) (model.Listing, error)
	GetAllListings() []model.Listing
	GetListingsByUser(account common.Address) []model.Listing
	GetAllBids(tokenID model.TokenID) ([]model.Bid, error)
	GetMaxBidder(tokenID model.TokenID) (model.Bid, error)
}

type ExchangeHandler struct {
	service ExchangeServiceInterface
}

func NewExchangeHandler(service ExchangeServiceInterface) *ExchangeHandler {
	return &ExchangeHandler{service: service}
}

// caller returns the authenticated account or answers 401
func (h *ExchangeHandler) caller(c *gin.Context, handlerName string) (common.Address, bool) {
	caller, ok := helpers.CallerFrom(c)
	if !ok {
		err := fmt.Errorf("missing %s header", helpers.CallerHeader)
		utils.JSONError(c, http.StatusUnauthorized, err, "caller account required")
		utils.Warn(handlerName+": no caller", map[string]any{"path": c.Request.URL.Path})
		return common.Address{}, false
	}
	return caller, true
}

// tokenID reads the :token_id path parameter or answers 400
func (h *ExchangeHandler) tokenID(c *gin.Context, handlerName string) (model.TokenID, bool) {
	id, err := helpers.ParseTokenID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid token id")
		utils.Warn(handlerName+": bad token id", map[string]any{"token_id": c.Param("token_id")})
		return 0, false
	}
	return id, true
}

// CreateListingHandler handles POST /listings
func (h *ExchangeHandler) CreateListingHandler(c *gin.Context) {
	caller, ok := h.caller(c, "CreateListingHandler")
	if !ok {
		return
	}

	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	listing, err := h.service.CreateListing(c.Request.Context(), caller, model.TokenID(*req.TokenID), req.Price)
	if err != nil {
		helpers.HandleServiceError(c, "CreateListingHandler", "failed to create listing", err, map[string]any{
			"token_id": *req.TokenID,
			"caller":   caller.Hex(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewListingResponse(listing), "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"token_id": listing.TokenID,
		"seller":   listing.Seller.Hex(),
		"price":    listing.Price.String(),
	})
}

// ChangePriceHandler handles PATCH /listings/:token_id
func (h *ExchangeHandler) ChangePriceHandler(c *gin.Context) {
	caller, ok := h.caller(c, "ChangePriceHandler")
	if !ok {
		return
	}
	tokenID, ok := h.tokenID(c, "ChangePriceHandler")
	if !ok {
		return
	}

	var req helpers.ChangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ChangePriceHandler", err)
		return
	}

	listing, err := h.service.ChangeListingPrice(c.Request.Context(), caller, tokenID, req.Price)
	if err != nil {
		helpers.HandleServiceError(c, "ChangePriceHandler", "failed to change price", err, map[string]any{
			"token_id": tokenID,
			"caller":   caller.Hex(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponse(listing), "listing price updated successfully")
	helpers.LogSuccess("ChangePriceHandler", "listing price updated successfully", map[string]any{
		"token_id": tokenID,
		"price":    listing.Price.String(),
	})
}

// RemoveListingHandler handles DELETE /listings/:token_id
func (h *ExchangeHandler) RemoveListingHandler(c *gin.Context) {
	caller, ok := h.caller(c, "RemoveListingHandler")
	if !ok {
		return
	}
	tokenID, ok := h.tokenID(c, "RemoveListingHandler")
	if !ok {
		return
	}

	if err := h.service.RemoveListing(c.Request.Context(), caller, tokenID); err != nil {
		helpers.HandleServiceError(c, "RemoveListingHandler", "failed to remove listing", err, map[string]any{
			"token_id": tokenID,
			"caller":   caller.Hex(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"token_id": uint64(tokenID)}, "listing removed successfully")
	helpers.LogSuccess("RemoveListingHandler", "listing removed successfully", map[string]any{"token_id": tokenID})
}

// BuyTokenHandler handles POST /listings/:token_id/buy
func (h *ExchangeHandler) BuyTokenHandler(c *gin.Context) {
	caller, ok := h.caller(c, "BuyTokenHandler")
	if !ok {
		return
	}
	tokenID, ok := h.tokenID(c, "BuyTokenHandler")
	if !ok {
		return
	}

	listing, err := h.service.BuyToken(c.Request.Context(), caller, tokenID)
	if err != nil {
		helpers.HandleServiceError(c, "BuyTokenHandler", "failed to buy token", err, map[string]any{
			"token_id": tokenID,
			"buyer":    caller.Hex(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponse(listing), "token bought successfully")
	helpers.LogSuccess("BuyTokenHandler", "token bought successfully", map[string]any{
		"token_id": tokenID,
		"buyer":    caller.Hex(),
		"price":    listing.Price.String(),
	})
}

// SellViaBiddingHandler handles POST /listings/:token_id/sell
func (h *ExchangeHandler) SellViaBiddingHandler(c *gin.Context) {
	caller, ok := h.caller(c, "SellViaBiddingHandler")
	if !ok {
		return
	}
	tokenID, ok := h.tokenID(c, "SellViaBiddingHandler")
	if !ok {
		return
	}

	winning, err := h.service.SellViaBidding(c.Request.Context(), caller, tokenID)
	if err != nil {
		helpers.HandleServiceError(c, "SellViaBiddingHandler", "failed to sell token", err, map[string]any{
			"token_id": tokenID,
			"caller":   caller.Hex(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(winning), "token sold to highest bidder")
	helpers.LogSuccess("SellViaBiddingHandler", "token sold to highest bidder", map[string]any{
		"token_id": tokenID,
		"winner":   winning.Bidder.Hex(),
		"amount":   winning.Amount.String(),
	})
}

// PlaceBidHandler handles POST /listings/:token_id/bids
func (h *ExchangeHandler) PlaceBidHandler(c *gin.Context) {
	caller, ok := h.caller(c, "PlaceBidHandler")
	if !ok {
		return
	}
	tokenID, ok := h.tokenID(c, "PlaceBidHandler")
	if !ok {
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.BidOnToken(c.Request.Context(), caller, tokenID, req.Amount)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", "failed to record bid", err, map[string]any{
			"token_id": tokenID,
			"bidder":   caller.Hex(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":   bid.BidID,
		"token_id": tokenID,
		"bidder":   caller.Hex(),
		"amount":   bid.Amount.String(),
	})
}

// CancelBidHandler handles DELETE /listings/:token_id/bids
func (h *ExchangeHandler) CancelBidHandler(c *gin.Context) {
	caller, ok := h.caller(c, "CancelBidHandler")
	if !ok {
		return
	}
	tokenID, ok := h.tokenID(c, "CancelBidHandler")
	if !ok {
		return
	}

	if err := h.service.CancelBid(c.Request.Context(), caller, tokenID); err != nil {
		helpers.HandleServiceError(c, "CancelBidHandler", "failed to cancel bid", err, map[string]any{
			"token_id": tokenID,
			"bidder":   caller.Hex(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"token_id": uint64(tokenID), "bidder": caller.Hex()}, "bid cancelled successfully")
	helpers.LogSuccess("CancelBidHandler", "bid cancelled successfully", map[string]any{
		"token_id": tokenID,
		"bidder":   caller.Hex(),
	})
}

// TotalListingsHandler handles GET /listings/count
func (h *ExchangeHandler) TotalListingsHandler(c *gin.Context) {
	total := h.service.TotalListings()
	utils.JSONResponse(c, http.StatusOK, gin.H{"total": total}, "listing count retrieved successfully")
}

// GetAllListingsHandler handles GET /listings
func (h *ExchangeHandler) GetAllListingsHandler(c *gin.Context) {
	listings := helpers.NewListingResponses(h.service.GetAllListings())
	utils.JSONList(c, http.StatusOK, listings, len(listings), "listings retrieved successfully")
	helpers.LogSuccess("GetAllListingsHandler", "listings retrieved successfully", map[string]any{"count": len(listings)})
}

// GetListingHandler handles GET /listings/:token_id
func (h *ExchangeHandler) GetListingHandler(c *gin.Context) {
	tokenID, ok := h.tokenID(c, "GetListingHandler")
	if !ok {
		return
	}

	listing, err := h.service.GetListing(tokenID)
	if err != nil {
		helpers.HandleServiceError(c, "GetListingHandler", "error retrieving listing", err, map[string]any{"token_id": tokenID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewListingResponse(listing), "listing retrieved successfully")
}

// GetListingsByUserHandler handles GET /users/:account/listings
func (h *ExchangeHandler) GetListingsByUserHandler(c *gin.Context) {
	account, err := helpers.ParseAccount(c.Param("account"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid account")
		utils.Warn("GetListingsByUserHandler: bad account", map[string]any{"account": c.Param("account")})
		return
	}

	listings := helpers.NewListingResponses(h.service.GetListingsByUser(account))
	utils.JSONList(c, http.StatusOK, listings, len(listings), "listings retrieved successfully")
	helpers.LogSuccess("GetListingsByUserHandler", "listings retrieved successfully", map[string]any{
		"account": account.Hex(),
		"count":   len(listings),
	})
}

// GetAllBidsHandler handles GET /listings/:token_id/bids
func (h *ExchangeHandler) GetAllBidsHandler(c *gin.Context) {
	tokenID, ok := h.tokenID(c, "GetAllBidsHandler")
	if !ok {
		return
	}

	bids, err := h.service.GetAllBids(tokenID)
	if err != nil {
		helpers.HandleServiceError(c, "GetAllBidsHandler", "error retrieving bids", err, map[string]any{"token_id": tokenID})
		return
	}

	resp := helpers.NewBidResponses(bids)
	utils.JSONList(c, http.StatusOK, resp, len(resp), "bids retrieved successfully")
	helpers.LogSuccess("GetAllBidsHandler", "bids retrieved successfully", map[string]any{
		"token_id": tokenID,
		"count":    len(resp),
	})
}

// GetMaxBidderHandler handles GET /listings/:token_id/max-bidder
func (h *ExchangeHandler) GetMaxBidderHandler(c *gin.Context) {
	tokenID, ok := h.tokenID(c, "GetMaxBidderHandler")
	if !ok {
		return
	}

	bid, err := h.service.GetMaxBidder(tokenID)
	if err != nil {
		helpers.HandleServiceError(c, "GetMaxBidderHandler", "max bidder error", err, map[string]any{"token_id": tokenID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "max bidder retrieved successfully")
	helpers.LogSuccess("GetMaxBidderHandler", "max bidder retrieved successfully", map[string]any{
		"token_id": tokenID,
		"bidder":   bid.Bidder.Hex(),
		"amount":   bid.Amount.String(),
	})
}
