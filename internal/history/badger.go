// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/floatquery/internal/config"
	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/metrics"
)

const (
	// keyPrefix namespaces journal entries inside the Badger keyspace.
	keyPrefix = "q:"

	// defaultRecentLimit is used when Recent is called with n <= 0.
	defaultRecentLimit = 10

	// defaultTTL is applied when the configured entry lifetime is unset.
	defaultTTL = 7 * 24 * time.Hour

	gcDiscardRatio = 0.5
)

// ErrJournalClosed is returned by operations on a closed journal.
var ErrJournalClosed = errors.New("history journal is closed")

// Badger is the durable Journal implementation. Entries are stored under
// time-ordered keys with a native Badger TTL, so expiry needs no sweeper of
// its own; value log garbage collection reclaims the space.
type Badger struct {
	db  *badger.DB
	ttl time.Duration

	mu     sync.RWMutex
	closed bool
}

// Open creates or opens the journal at the configured path.
func Open(cfg config.HistoryConfig) (*Badger, error) {
	opts := badger.DefaultOptions(cfg.Path)
	opts.Logger = nil
	// Journal records are a few hundred bytes; the default 1GB value log
	// segments would be absurd for this store.
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history journal: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	logging.Info().
		Str("path", cfg.Path).
		Dur("ttl", ttl).
		Msg("Query history journal opened")

	return &Badger{db: db, ttl: ttl}, nil
}

// NewFromDB wraps an existing Badger instance, taking ownership of it.
// Used by tests with an in-memory database.
func NewFromDB(db *badger.DB, ttl time.Duration) *Badger {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Badger{db: db, ttl: ttl}
}

// entryKey builds a journal key: prefix, zero-padded nanosecond timestamp,
// entry ID. The padding keeps lexicographic key order chronological, which
// is what makes reverse iteration return newest entries first.
func entryKey(ts time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", keyPrefix, ts.UnixNano(), id))
}

// Append writes one entry with the journal's TTL.
func (j *Badger) Append(ctx context.Context, e Entry) (err error) {
	defer func() { metrics.RecordHistoryAppend(err) }()

	j.mu.RLock()
	if j.closed {
		j.mu.RUnlock()
		return ErrJournalClosed
	}
	j.mu.RUnlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	key := entryKey(e.Timestamp, e.ID)
	err = j.db.Update(func(txn *badger.Txn) error {
		ent := badger.NewEntry(key, data).WithTTL(j.ttl)
		return txn.SetEntry(ent)
	})
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}

	return nil
}

// Recent returns up to n entries, newest first.
func (j *Badger) Recent(ctx context.Context, n int) ([]Entry, error) {
	j.mu.RLock()
	if j.closed {
		j.mu.RUnlock()
		return nil, ErrJournalClosed
	}
	j.mu.RUnlock()

	if n <= 0 {
		n = defaultRecentLimit
	}

	entries := make([]Entry, 0, n)
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		// Reverse iteration starts at the greatest key at or below the
		// seek target, so aim past every possible journal key.
		seek := append([]byte(keyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(entries) < n; it.Next() {
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				logging.Warn().Err(err).Msg("Skipping undecodable journal entry")
				continue
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}

	return entries, nil
}

// Close closes the backing database. Safe to call more than once.
func (j *Badger) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

// StartGC runs value log garbage collection at the given interval until the
// context is canceled. Badger drops expired entries during compaction; GC
// reclaims the value log space they held.
func (j *Badger) StartGC(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.runGC()
			}
		}
	}()
}

// runGC repeats collection until a pass rewrites nothing.
func (j *Badger) runGC() {
	j.mu.RLock()
	if j.closed {
		j.mu.RUnlock()
		return
	}
	j.mu.RUnlock()

	for {
		err := j.db.RunValueLogGC(gcDiscardRatio)
		if err != nil {
			if !errors.Is(err, badger.ErrNoRewrite) {
				logging.Warn().Err(err).Msg("History journal GC failed")
			}
			return
		}
	}
}

// Compile-time interface assertions
var (
	_ Journal = (*Badger)(nil)
	_ Journal = Disabled{}
)
