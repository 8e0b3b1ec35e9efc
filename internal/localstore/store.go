// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package localstore persists user-added and materialized movie records.
//
// Records live in BadgerDB under "movie:<id>" keys. Each value carries an
// insertion sequence so listings come back in the order records were first
// stored, independent of Badger's key order.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

var (
	// ErrNotFound is returned when no record exists for an id.
	ErrNotFound = errors.New("local record not found")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("local store closed")

	// ErrInvalidRecord is returned when a record fails basic checks.
	ErrInvalidRecord = errors.New("invalid local record")
)

const (
	prefixMovie = "movie:"
	keySequence = "meta:seq"
)

// Config configures the local store.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory (tests, ephemeral deployments).
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool
}

// record is the stored value.
type record struct {
	Seq     uint64       `json:"seq"`
	Movie   models.Movie `json:"movie"`
	AddedAt time.Time    `json:"added_at"`
}

// Store is a BadgerDB-backed record store. It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store described by cfg.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("local store path is required")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = newBadgerLogger(logger.With().Str("component", "localstore").Logger())

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	seq, err := db.GetSequence([]byte(keySequence), 64)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sequence: %w", err)
	}

	s := &Store{
		db:     db,
		seq:    seq,
		logger: logger.With().Str("component", "localstore").Logger(),
	}
	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Local store opened")
	return s, nil
}

// Close releases the sequence lease and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.seq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release sequence: %w", err))
	}
	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close BadgerDB: %w", err))
	}
	return errors.Join(errs...)
}

func movieKey(id int) []byte {
	return []byte(prefixMovie + strconv.Itoa(id))
}

func (s *Store) guard() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Put inserts or replaces m. Records are always stored as user_added; a
// replaced record keeps its original insertion position.
func (s *Store) Put(ctx context.Context, m models.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidRecord)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return err
	}

	m = m.Clone()
	m.Source = models.SourceUserAdded

	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, m.ID)
		switch {
		case errors.Is(err, ErrNotFound):
			next, err := s.seq.Next()
			if err != nil {
				return fmt.Errorf("next sequence: %w", err)
			}
			rec = record{Seq: next, AddedAt: time.Now().UTC()}
		case err != nil:
			return err
		}
		rec.Movie = m
		return setRecord(txn, rec)
	})
	metrics.RecordLocalStoreOp("put", err)
	if err != nil {
		return fmt.Errorf("put movie %d: %w", m.ID, err)
	}
	return nil
}

// Get returns the record stored for id.
func (s *Store) Get(ctx context.Context, id int) (models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return models.Movie{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return models.Movie{}, err
	}

	var rec record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, id)
		return err
	})
	if err != nil {
		return models.Movie{}, err
	}
	return rec.Movie, nil
}

// Delete removes the record for id. Deleting a missing id returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(movieKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(movieKey(id))
	})
	metrics.RecordLocalStoreOp("delete", err)
	return err
}

// All returns every stored record in insertion order.
func (s *Store) All(ctx context.Context) ([]models.Movie, error) {
	return s.scan(ctx, func(models.Movie) bool { return true })
}

// Len returns the number of stored records.
func (s *Store) Len(ctx context.Context) (int, error) {
	all, err := s.All(ctx)
	return len(all), err
}

// PrefixSearch returns stored records whose trimmed, lowercased title starts
// with the lowercased query, in insertion order.
func (s *Store) PrefixSearch(ctx context.Context, query string) ([]models.Movie, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.Movie{}, nil
	}
	return s.scan(ctx, func(m models.Movie) bool {
		return strings.HasPrefix(strings.ToLower(strings.TrimSpace(m.Title)), q)
	})
}

// Materialize copies m into the store unless a record with its id already
// exists, returning the stored record either way.
func (s *Store) Materialize(ctx context.Context, m models.Movie) (models.Movie, error) {
	existing, err := s.Get(ctx, m.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Movie{}, err
	}
	if err := s.Put(ctx, m); err != nil {
		return models.Movie{}, err
	}
	s.logger.Debug().Int("id", m.ID).Str("title", m.Title).Msg("Materialized catalog record")
	return s.Get(ctx, m.ID)
}

// Update applies fn to the stored record for id inside a single transaction.
// The record's id and source cannot be changed by fn.
func (s *Store) Update(ctx context.Context, id int, fn func(*models.Movie) error) (models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return models.Movie{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return models.Movie{}, err
	}

	var out models.Movie
	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, id)
		if err != nil {
			return err
		}
		m := rec.Movie.Clone()
		if err := fn(&m); err != nil {
			return err
		}
		m.ID = id
		m.Source = models.SourceUserAdded
		if m.LikeCount < 0 {
			m.LikeCount = 0
		}
		rec.Movie = m
		out = m
		return setRecord(txn, rec)
	})
	metrics.RecordLocalStoreOp("update", err)
	if err != nil {
		return models.Movie{}, err
	}
	return out, nil
}

// AdjustLikes adds delta to the like count of id, never going below zero.
func (s *Store) AdjustLikes(ctx context.Context, id, delta int) (models.Movie, error) {
	return s.Update(ctx, id, func(m *models.Movie) error {
		m.LikeCount = max(0, m.LikeCount+delta)
		return nil
	})
}

func (s *Store) scan(ctx context.Context, keep func(models.Movie) bool) ([]models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	var recs []record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixMovie)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := it.Item()
			var rec record
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				s.logger.Warn().Err(err).Str("key", string(item.Key())).Msg("Skipping undecodable local record")
				continue
			}
			if keep(rec.Movie) {
				recs = append(recs, rec)
			}
		}
		return nil
	})
	metrics.RecordLocalStoreOp("scan", err)
	if err != nil {
		return nil, fmt.Errorf("scan local records: %w", err)
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].Seq < recs[j].Seq })
	out := make([]models.Movie, len(recs))
	for i, rec := range recs {
		out[i] = rec.Movie
	}
	return out, nil
}

func getRecord(txn *badger.Txn, id int) (record, error) {
	item, err := txn.Get(movieKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return record{}, ErrNotFound
	}
	if err != nil {
		return record{}, err
	}
	var rec record
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	if err != nil {
		return record{}, fmt.Errorf("decode movie %d: %w", id, err)
	}
	return rec, nil
}

func setRecord(txn *badger.Txn, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode movie %d: %w", rec.Movie.ID, err)
	}
	return txn.Set(movieKey(rec.Movie.ID), data)
}
