package events

import (
	"context"
	"sync"

	model "token-exchange/internal/models"
	"token-exchange/utils"
)

// Publisher receives committed exchange events
type Publisher interface {
	Publish(ctx context.Context, ev model.Event)
}

// Sink is a downstream consumer of numbered events (journal, websocket hub, log)
type Sink interface {
	Name() string
	Handle(ctx context.Context, ev model.Event) error
}

// Bus numbers events and fans them out to its sinks in registration order.
// A failing sink is logged and skipped; it never affects the others.
type Bus struct {
	mu    sync.Mutex
	seq   uint64
	sinks []Sink
}

// NewBus creates a bus whose first event gets lastSeq+1
func NewBus(lastSeq uint64, sinks ...Sink) *Bus {
	return &Bus{seq: lastSeq, sinks: sinks}
}

// Publish stamps ev with the next sequence number and delivers it.
// Delivery happens under the bus lock so every sink sees events in seq order.
func (b *Bus) Publish(ctx context.Context, ev model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	ev.Seq = b.seq

	for _, s := range b.sinks {
		if err := s.Handle(ctx, ev); err != nil {
			utils.Error("event sink failed", map[string]any{
				"sink":  s.Name(),
				"seq":   ev.Seq,
				"type":  ev.Type,
				"error": err.Error(),
			})
		}
	}
}

// LastSeq returns the number of the most recently published event
func (b *Bus) LastSeq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

// LogSink writes every event to the structured log
type LogSink struct{}

func (LogSink) Name() string { return "log" }

func (LogSink) Handle(_ context.Context, ev model.Event) error {
	fields := map[string]any{
		"seq":      ev.Seq,
		"type":     ev.Type,
		"token_id": ev.TokenID,
		"seller":   ev.Seller.Hex(),
		"amount":   ev.Amount.String(),
	}
	if ev.Counterparty != nil {
		fields["counterparty"] = ev.Counterparty.Hex()
	}
	utils.Info("exchange event", fields)
	return nil
}
