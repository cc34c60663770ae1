package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"token-exchange/internal/exchangeerrors"
	model "token-exchange/internal/models"
	"token-exchange/services/exchange/helpers"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	seller = common.HexToAddress("0x0000000000000000000000000000000000005e11")
	bidder = common.HexToAddress("0x000000000000000000000000000000000000000a")
)

type decimalMatcher struct{ want decimal.Decimal }

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string { return "is decimal " + m.want.String() }

func decEq(s string) gomock.Matcher { return decimalMatcher{want: decimal.RequireFromString(s)} }

// withCaller stands in for the caller middleware
func withCaller(c *gin.Context) {
	if h := c.GetHeader(helpers.CallerHeader); h != "" {
		c.Set(helpers.CallerKey, common.HexToAddress(h))
	}
	c.Next()
}

func newTestRouter(t *testing.T) (*gin.Engine, *MockExchangeServiceInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := NewMockExchangeServiceInterface(ctrl)
	h := NewExchangeHandler(mockService)

	// Initialize Gin in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(withCaller)
	router.POST("/listings", h.CreateListingHandler)
	router.GET("/listings", h.GetAllListingsHandler)
	router.GET("/listings/count", h.TotalListingsHandler)
	router.GET("/listings/:token_id", h.GetListingHandler)
	router.PATCH("/listings/:token_id", h.ChangePriceHandler)
	router.DELETE("/listings/:token_id", h.RemoveListingHandler)
	router.POST("/listings/:token_id/buy", h.BuyTokenHandler)
	router.POST("/listings/:token_id/sell", h.SellViaBiddingHandler)
	router.POST("/listings/:token_id/bids", h.PlaceBidHandler)
	router.DELETE("/listings/:token_id/bids", h.CancelBidHandler)
	router.GET("/listings/:token_id/bids", h.GetAllBidsHandler)
	router.GET("/listings/:token_id/max-bidder", h.GetMaxBidderHandler)
	router.GET("/users/:account/listings", h.GetListingsByUserHandler)
	return router, mockService
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, caller *common.Address, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set(helpers.CallerHeader, caller.Hex())
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

// Test CreateListingHandler
func TestCreateListingHandler(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	tests := []struct {
		name           string
		caller         *common.Address
		requestBody    any
		mockSetup      func(m *MockExchangeServiceInterface)
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_token_zero",
			caller:      &seller,
			requestBody: `{"token_id": 0, "price": "20"}`,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().
					CreateListing(gomock.Any(), seller, model.TokenID(0), decEq("20")).
					Return(model.Listing{TokenID: 0, Seller: seller, Price: decimal.NewFromInt(20), CreatedAt: now}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "listing created successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, 0.0, data["token_id"])
				require.Equal(t, seller.Hex(), data["seller"])
				require.Equal(t, "20", data["price"])
			},
		},
		{
			name:        "numeric_price",
			caller:      &seller,
			requestBody: `{"token_id": 7, "price": 12.5}`,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().
					CreateListing(gomock.Any(), seller, model.TokenID(7), decEq("12.5")).
					Return(model.Listing{TokenID: 7, Seller: seller, Price: decimal.RequireFromString("12.5"), CreatedAt: now}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "listing created successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "12.5", data["price"])
			},
		},
		{
			name:           "invalid_json",
			caller:         &seller,
			requestBody:    `{invalid json}`,
			mockSetup:      func(*MockExchangeServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "missing_token_id",
			caller:         &seller,
			requestBody:    `{"price": "20"}`,
			mockSetup:      func(*MockExchangeServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "negative_token_id",
			caller:         &seller,
			requestBody:    `{"token_id": -1, "price": "20"}`,
			mockSetup:      func(*MockExchangeServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "no_caller",
			requestBody:    `{"token_id": 1, "price": "20"}`,
			mockSetup:      func(*MockExchangeServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "caller account required",
		},
		{
			name:        "zero_price",
			caller:      &seller,
			requestBody: `{"token_id": 2, "price": "0"}`,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().
					CreateListing(gomock.Any(), seller, model.TokenID(2), decEq("0")).
					Return(model.Listing{}, exchangeerrors.ErrNonPositivePrice)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request",
		},
		{
			name:        "not_owner",
			caller:      &bidder,
			requestBody: `{"token_id": 3, "price": "20"}`,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().
					CreateListing(gomock.Any(), bidder, model.TokenID(3), decEq("20")).
					Return(model.Listing{}, fmt.Errorf("service: %w", exchangeerrors.ErrNotTokenOwner))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "not permitted",
		},
		{
			name:        "unknown_token",
			caller:      &seller,
			requestBody: `{"token_id": 99, "price": "20"}`,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().
					CreateListing(gomock.Any(), seller, model.TokenID(99), decEq("20")).
					Return(model.Listing{}, exchangeerrors.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "not found",
		},
		{
			name:        "service_generic_error",
			caller:      &seller,
			requestBody: `{"token_id": 4, "price": "20"}`,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().
					CreateListing(gomock.Any(), seller, model.TokenID(4), decEq("20")).
					Return(model.Listing{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, mockService := newTestRouter(t)
			tc.mockSetup(mockService)

			w, resp := doRequest(t, router, http.MethodPost, "/listings", tc.caller, tc.requestBody)

			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)

			if tc.validateData != nil && w.Code == http.StatusCreated {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	tests := []struct {
		name           string
		path           string
		requestBody    any
		mockSetup      func(m *MockExchangeServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success_valid_bid",
			path:        "/listings/0/bids",
			requestBody: helpers.PlaceBidRequest{Amount: decimal.NewFromInt(5)},
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().
					BidOnToken(gomock.Any(), bidder, model.TokenID(0), decEq("5")).
					Return(model.Bid{BidID: uuid.NewString(), TokenID: 0, Bidder: bidder, Amount: decimal.NewFromInt(5), CreatedAt: now}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid recorded successfully",
		},
		{
			name:           "bad_token_id",
			path:           "/listings/abc/bids",
			requestBody:    helpers.PlaceBidRequest{Amount: decimal.NewFromInt(5)},
			mockSetup:      func(*MockExchangeServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid token id",
		},
		{
			name:           "invalid_json",
			path:           "/listings/0/bids",
			requestBody:    `{"amount": "five"}`,
			mockSetup:      func(*MockExchangeServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "duplicate_bid",
			path:        "/listings/1/bids",
			requestBody: helpers.PlaceBidRequest{Amount: decimal.NewFromInt(15)},
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().
					BidOnToken(gomock.Any(), bidder, model.TokenID(1), decEq("15")).
					Return(model.Bid{}, exchangeerrors.ErrDuplicateBid)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request",
		},
		{
			name:        "insufficient_funds",
			path:        "/listings/2/bids",
			requestBody: helpers.PlaceBidRequest{Amount: decimal.NewFromInt(5000)},
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().
					BidOnToken(gomock.Any(), bidder, model.TokenID(2), decEq("5000")).
					Return(model.Bid{}, exchangeerrors.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedMsg:    "insufficient funds",
		},
		{
			name:        "listing_not_found",
			path:        "/listings/3/bids",
			requestBody: helpers.PlaceBidRequest{Amount: decimal.NewFromInt(5)},
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().
					BidOnToken(gomock.Any(), bidder, model.TokenID(3), decEq("5")).
					Return(model.Bid{}, exchangeerrors.ErrListingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, mockService := newTestRouter(t)
			tc.mockSetup(mockService)

			w, resp := doRequest(t, router, http.MethodPost, tc.path, &bidder, tc.requestBody)

			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)

			if w.Code == http.StatusCreated {
				data := resp["data"].(map[string]any)
				_, parseErr := uuid.Parse(data["bid_id"].(string))
				require.NoError(t, parseErr, "BidID should be a valid UUID")
				require.Equal(t, bidder.Hex(), data["bidder"])
				require.Equal(t, "5", data["amount"])
			}
		})
	}
}

// Test the remaining state-changing handlers
func TestMutationHandlers(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	listing := model.Listing{TokenID: 7, Seller: seller, Price: decimal.NewFromInt(20), CreatedAt: now}
	winning := model.Bid{BidID: uuid.NewString(), TokenID: 7, Bidder: bidder, Amount: decimal.NewFromInt(10), CreatedAt: now}

	tests := []struct {
		name           string
		method         string
		path           string
		caller         *common.Address
		body           any
		mockSetup      func(m *MockExchangeServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:   "change_price",
			method: http.MethodPatch,
			path:   "/listings/7",
			caller: &seller,
			body:   `{"price": "10"}`,
			mockSetup: func(m *MockExchangeServiceInterface) {
				updated := listing
				updated.Price = decimal.NewFromInt(10)
				m.EXPECT().ChangeListingPrice(gomock.Any(), seller, model.TokenID(7), decEq("10")).Return(updated, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "listing price updated successfully",
		},
		{
			name:   "change_price_not_seller",
			method: http.MethodPatch,
			path:   "/listings/7",
			caller: &bidder,
			body:   `{"price": "10"}`,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().ChangeListingPrice(gomock.Any(), bidder, model.TokenID(7), decEq("10")).Return(model.Listing{}, exchangeerrors.ErrNotSeller)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "not permitted",
		},
		{
			name:   "remove_listing",
			method: http.MethodDelete,
			path:   "/listings/7",
			caller: &seller,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().RemoveListing(gomock.Any(), seller, model.TokenID(7)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "listing removed successfully",
		},
		{
			name:   "remove_listing_refund_failed",
			method: http.MethodDelete,
			path:   "/listings/7",
			caller: &seller,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().RemoveListing(gomock.Any(), seller, model.TokenID(7)).Return(exchangeerrors.ErrCollaboratorFailure)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "settlement failed",
		},
		{
			name:   "buy_token",
			method: http.MethodPost,
			path:   "/listings/7/buy",
			caller: &bidder,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().BuyToken(gomock.Any(), bidder, model.TokenID(7)).Return(listing, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "token bought successfully",
		},
		{
			name:   "buy_token_no_funds",
			method: http.MethodPost,
			path:   "/listings/7/buy",
			caller: &bidder,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().BuyToken(gomock.Any(), bidder, model.TokenID(7)).Return(model.Listing{}, exchangeerrors.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedMsg:    "insufficient funds",
		},
		{
			name:           "buy_token_no_caller",
			method:         http.MethodPost,
			path:           "/listings/7/buy",
			mockSetup:      func(*MockExchangeServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "caller account required",
		},
		{
			name:   "sell_via_bidding",
			method: http.MethodPost,
			path:   "/listings/7/sell",
			caller: &seller,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().SellViaBidding(gomock.Any(), seller, model.TokenID(7)).Return(winning, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "token sold to highest bidder",
		},
		{
			name:   "sell_via_bidding_no_bids",
			method: http.MethodPost,
			path:   "/listings/7/sell",
			caller: &seller,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().SellViaBidding(gomock.Any(), seller, model.TokenID(7)).Return(model.Bid{}, exchangeerrors.ErrNoBids)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "not found",
		},
		{
			name:   "cancel_bid",
			method: http.MethodDelete,
			path:   "/listings/7/bids",
			caller: &bidder,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().CancelBid(gomock.Any(), bidder, model.TokenID(7)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bid cancelled successfully",
		},
		{
			name:   "cancel_missing_bid",
			method: http.MethodDelete,
			path:   "/listings/7/bids",
			caller: &bidder,
			mockSetup: func(m *MockExchangeServiceInterface) {
				m.EXPECT().CancelBid(gomock.Any(), bidder, model.TokenID(7)).Return(exchangeerrors.ErrBidNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			router, mockService := newTestRouter(t)
			tc.mockSetup(mockService)

			w, resp := doRequest(t, router, tc.method, tc.path, tc.caller, tc.body)

			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)
		})
	}
}

// Test read-only handlers
func TestQueryHandlers(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	listings := []model.Listing{
		{TokenID: 0, Seller: seller, Price: decimal.NewFromInt(20), CreatedAt: now},
		{TokenID: 7, Seller: seller, Price: decimal.NewFromInt(30), CreatedAt: now},
	}
	bids := []model.Bid{
		{BidID: uuid.NewString(), TokenID: 0, Bidder: bidder, Amount: decimal.NewFromInt(5), CreatedAt: now},
	}

	t.Run("all_listings", func(t *testing.T) {
		t.Parallel()
		router, m := newTestRouter(t)
		m.EXPECT().GetAllListings().Return(listings)

		w, resp := doRequest(t, router, http.MethodGet, "/listings", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 2.0, resp["count"])
		require.Len(t, resp["data"].([]any), 2)
	})

	t.Run("all_listings_empty", func(t *testing.T) {
		t.Parallel()
		router, m := newTestRouter(t)
		m.EXPECT().GetAllListings().Return(nil)

		w, resp := doRequest(t, router, http.MethodGet, "/listings", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 0.0, resp["count"])
		require.NotNil(t, resp["data"], "empty result is [] not null")
	})

	t.Run("count", func(t *testing.T) {
		t.Parallel()
		router, m := newTestRouter(t)
		m.EXPECT().TotalListings().Return(2)

		w, resp := doRequest(t, router, http.MethodGet, "/listings/count", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, 2.0, resp["data"].(map[string]any)["total"])
	})

	t.Run("single_listing_missing", func(t *testing.T) {
		t.Parallel()
		router, m := newTestRouter(t)
		m.EXPECT().GetListing(model.TokenID(5)).Return(model.Listing{}, exchangeerrors.ErrListingNotFound)

		w, _ := doRequest(t, router, http.MethodGet, "/listings/5", nil, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("listings_by_user", func(t *testing.T) {
		t.Parallel()
		router, m := newTestRouter(t)
		m.EXPECT().GetListingsByUser(seller).Return(listings[:1])

		w, resp := doRequest(t, router, http.MethodGet, "/users/"+seller.Hex()+"/listings", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].([]any)
		require.Len(t, data, 1)
		require.Equal(t, seller.Hex(), data[0].(map[string]any)["seller"])
	})

	t.Run("listings_by_bad_account", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		w, resp := doRequest(t, router, http.MethodGet, "/users/alice/listings", nil, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, resp["message"], "invalid account")
	})

	t.Run("bids", func(t *testing.T) {
		t.Parallel()
		router, m := newTestRouter(t)
		m.EXPECT().GetAllBids(model.TokenID(0)).Return(bids, nil)

		w, resp := doRequest(t, router, http.MethodGet, "/listings/0/bids", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].([]any)
		require.Len(t, data, 1)
		require.Equal(t, "5", data[0].(map[string]any)["amount"])
	})

	t.Run("bids_unlisted_is_empty", func(t *testing.T) {
		t.Parallel()
		router, m := newTestRouter(t)
		m.EXPECT().GetAllBids(model.TokenID(9)).Return([]model.Bid{}, nil)

		w, resp := doRequest(t, router, http.MethodGet, "/listings/9/bids", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Empty(t, resp["data"].([]any))
	})

	t.Run("max_bidder", func(t *testing.T) {
		t.Parallel()
		router, m := newTestRouter(t)
		m.EXPECT().GetMaxBidder(model.TokenID(0)).Return(bids[0], nil)

		w, resp := doRequest(t, router, http.MethodGet, "/listings/0/max-bidder", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, bidder.Hex(), resp["data"].(map[string]any)["bidder"])
	})

	t.Run("max_bidder_no_bids", func(t *testing.T) {
		t.Parallel()
		router, m := newTestRouter(t)
		m.EXPECT().GetMaxBidder(model.TokenID(1)).Return(model.Bid{}, exchangeerrors.ErrNoBids)

		w, resp := doRequest(t, router, http.MethodGet, "/listings/1/max-bidder", nil, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, resp["message"], "not found")
	})
}
