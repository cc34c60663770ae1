package journal

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	model "token-exchange/internal/models"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// MaxRange caps how many events a single Range call returns
const MaxRange = 1000

var prefix = []byte("ev:")

// Journal is an append-only, pebble-backed log of exchange events keyed by seq
type Journal struct {
	db *pebble.DB
}

// Open opens (or creates) a journal stored under dir
func Open(dir string) (*Journal, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", dir, err)
	}
	return &Journal{db: db}, nil
}

// OpenInMemory opens a journal on an in-memory filesystem; nothing survives Close
func OpenInMemory() (*Journal, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("open in-memory journal: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error { return j.db.Close() }

// key: ev:<8-byte big-endian seq>, so lexical order is seq order
func eventKey(seq uint64) []byte {
	k := make([]byte, len(prefix)+8)
	copy(k, prefix)
	binary.BigEndian.PutUint64(k[len(prefix):], seq)
	return k
}

func upperBound() []byte {
	end := append([]byte{}, prefix...)
	end[len(end)-1]++
	return end
}

// Name identifies the journal as an event sink
func (j *Journal) Name() string { return "journal" }

// Handle appends the event; it lets the journal sit on the event bus
func (j *Journal) Handle(_ context.Context, ev model.Event) error {
	return j.Append(ev)
}

// Append persists ev under its seq
func (j *Journal) Append(ev model.Event) error {
	if ev.Seq == 0 {
		return errors.New("append event: seq must be set")
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event %d: %w", ev.Seq, err)
	}
	if err := j.db.Set(eventKey(ev.Seq), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to save event %d: %w", ev.Seq, err)
	}
	return nil
}

// Range returns up to limit events with seq >= from, in seq order
func (j *Journal) Range(from uint64, limit int) ([]model.Event, error) {
	if limit <= 0 || limit > MaxRange {
		limit = MaxRange
	}

	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: eventKey(from),
		UpperBound: upperBound(),
	})
	if err != nil {
		return nil, fmt.Errorf("range events from %d: %w", from, err)
	}
	defer iter.Close()

	out := make([]model.Event, 0)
	for iter.First(); iter.Valid() && len(out) < limit; iter.Next() {
		var ev model.Event
		if err := json.Unmarshal(iter.Value(), &ev); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event at %x: %w", iter.Key(), err)
		}
		out = append(out, ev)
	}
	return out, nil
}

// LastSeq returns the highest stored seq, or 0 for an empty journal
func (j *Journal) LastSeq() (uint64, error) {
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(),
	})
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, nil
	}
	return binary.BigEndian.Uint64(iter.Key()[len(prefix):]), nil
}
