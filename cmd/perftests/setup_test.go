package perftests

import (
	"context"
	"math/big"

	exchange "token-exchange/internal/exchangeService"
	"token-exchange/internal/ledger"
	model "token-exchange/internal/models"
	"token-exchange/internal/registry"
	"token-exchange/internal/repository"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var (
	escrow = common.HexToAddress("0x00000000000000000000000000000000000e8c4a")
	seller = common.HexToAddress("0x1000000000000000000000000000000000000001")
	grant  = decimal.NewFromInt(1_000_000_000)
)

// bench bundles the service with its collaborators so benchmarks can fund accounts
type bench struct {
	svc    *exchange.ExchangeService
	funds  *ledger.MemoryLedger
	assets *registry.MemoryRegistry
}

// setupExchange lists tokens 0..numTokens-1 for the seller at price 100
func setupExchange(numTokens int) *bench {
	b := &bench{
		funds:  ledger.NewMemoryLedger(),
		assets: registry.NewMemoryRegistry(),
	}
	b.svc = exchange.NewExchangeService(repository.NewMemoryRepo(), b.assets, b.funds, nil, escrow)

	ctx := context.Background()
	b.assets.SetApprovalForAll(seller, escrow, true)
	for i := 0; i < numTokens; i++ {
		id := model.TokenID(i)
		_ = b.assets.Mint(seller, id)
		_, _ = b.svc.CreateListing(ctx, seller, id, decimal.NewFromInt(100))
	}
	return b
}

// account returns the n-th bidder address, funded and approved
func (b *bench) account(n int64) common.Address {
	acct := common.BigToAddress(big.NewInt(0x10000 + n))
	_ = b.funds.Mint(acct, grant)
	_ = b.funds.Approve(context.Background(), acct, escrow, grant)
	b.assets.SetApprovalForAll(acct, escrow, true)
	return acct
}
