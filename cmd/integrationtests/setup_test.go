package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"token-exchange/internal/events"
	exchange "token-exchange/internal/exchangeService"
	"token-exchange/internal/journal"
	"token-exchange/internal/ledger"
	model "token-exchange/internal/models"
	"token-exchange/internal/registry"
	"token-exchange/internal/repository"
	"token-exchange/internal/server"
	"token-exchange/services/exchange/helpers"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	escrow  = common.HexToAddress("0x00000000000000000000000000000000000e8c4a")
	seller  = common.HexToAddress("0x1000000000000000000000000000000000000001")
	bidderA = common.HexToAddress("0x1000000000000000000000000000000000000002")
	bidderB = common.HexToAddress("0x1000000000000000000000000000000000000003")
)

// testEnv is the full HTTP stack over in-memory collaborators
type testEnv struct {
	router *gin.Engine
	funds  *ledger.MemoryLedger
	assets *registry.MemoryRegistry
}

// SetupTestEnv wires router, service, event bus and journal, funds every test
// account with 1000 units and mints the given tokens to the seller.
func SetupTestEnv(t *testing.T, tokens ...model.TokenID) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	j, err := journal.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	hub := server.NewHub()
	t.Cleanup(hub.Close)
	bus := events.NewBus(0, j, hub)

	env := &testEnv{
		funds:  ledger.NewMemoryLedger(),
		assets: registry.NewMemoryRegistry(),
	}

	ctx := context.Background()
	for _, acct := range []common.Address{seller, bidderA, bidderB} {
		require.NoError(t, env.funds.Mint(acct, decimal.NewFromInt(1000)))
		require.NoError(t, env.funds.Approve(ctx, acct, escrow, decimal.NewFromInt(1000)))
		env.assets.SetApprovalForAll(acct, escrow, true)
	}
	for _, id := range tokens {
		require.NoError(t, env.assets.Mint(seller, id))
	}

	service := exchange.NewExchangeService(repository.NewMemoryRepo(), env.assets, env.funds, bus, escrow)
	env.router = server.SetupRouter(service, j, hub)
	return env
}

func (e *testEnv) balance(t *testing.T, acct common.Address) decimal.Decimal {
	t.Helper()
	b, err := e.funds.BalanceOf(context.Background(), acct)
	require.NoError(t, err)
	return b
}

func (e *testEnv) requireBalance(t *testing.T, acct common.Address, want int64) {
	t.Helper()
	got := e.balance(t, acct)
	require.True(t, got.Equal(decimal.NewFromInt(want)), "balance of %s: want %d, got %s", acct.Hex(), want, got)
}

func (e *testEnv) owner(t *testing.T, tokenID model.TokenID) common.Address {
	t.Helper()
	o, err := e.assets.OwnerOf(context.Background(), tokenID)
	require.NoError(t, err)
	return o
}

// ExecuteRequestAndParse executes an HTTP request as caller (nil for anonymous) and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, caller *common.Address, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set(helpers.CallerHeader, caller.Hex())
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}
