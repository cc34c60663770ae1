package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"token-exchange/internal/config"
	"token-exchange/internal/events"
	exchange "token-exchange/internal/exchangeService"
	"token-exchange/internal/journal"
	"token-exchange/internal/ledger"
	model "token-exchange/internal/models"
	"token-exchange/internal/registry"
	"token-exchange/internal/repository"
	"token-exchange/internal/server"
	"token-exchange/utils"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
)

// demoAccounts are funded and approved when SEED_DEMO is on
var demoAccounts = []common.Address{
	common.HexToAddress("0x1000000000000000000000000000000000000001"),
	common.HexToAddress("0x1000000000000000000000000000000000000002"),
	common.HexToAddress("0x1000000000000000000000000000000000000003"),
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.LogLevel)

	j, err := journal.Open(cfg.JournalPath)
	if err != nil {
		utils.Fatal("failed to open event journal", map[string]any{"path": cfg.JournalPath, "error": err.Error()})
	}
	defer j.Close()

	lastSeq, err := j.LastSeq()
	if err != nil {
		utils.Fatal("failed to read event journal", map[string]any{"error": err.Error()})
	}

	hub := server.NewHub()
	defer hub.Close()
	bus := events.NewBus(lastSeq, j, hub, events.LogSink{})

	funds := ledger.NewMemoryLedger()
	assets := registry.NewMemoryRegistry()
	repo := repository.NewMemoryRepo()

	if cfg.Exchange.SeedDemo {
		if err := seedDemo(funds, assets, cfg.Exchange.Escrow); err != nil {
			utils.Fatal("failed to seed demo state", map[string]any{"error": err.Error()})
		}
	}

	exchangeSvc := exchange.NewExchangeService(repo, assets, funds, bus, cfg.Exchange.Escrow)

	router := server.SetupRouter(exchangeSvc, j, hub)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Account"},
	}).Handler(router)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           corsHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.Info("starting exchange server", map[string]any{
			"addr":     srv.Addr,
			"escrow":   cfg.Exchange.Escrow.Hex(),
			"last_seq": lastSeq,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("server failed", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	utils.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}
}

// seedDemo funds each demo account with 1000 units, approves the exchange for
// all of it, and mints token 0 to the first account with the exchange as operator
func seedDemo(funds *ledger.MemoryLedger, assets *registry.MemoryRegistry, escrow common.Address) error {
	ctx := context.Background()
	grant := decimal.NewFromInt(1000)

	for _, acct := range demoAccounts {
		if err := funds.Mint(acct, grant); err != nil {
			return err
		}
		if err := funds.Approve(ctx, acct, escrow, grant); err != nil {
			return err
		}
		assets.SetApprovalForAll(acct, escrow, true)
	}

	if err := assets.Mint(demoAccounts[0], model.TokenID(0)); err != nil {
		return err
	}

	utils.Info("demo state seeded", map[string]any{
		"accounts": len(demoAccounts),
		"owner":    demoAccounts[0].Hex(),
		"token_id": 0,
	})
	return nil
}
