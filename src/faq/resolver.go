package faq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/yunbow/line-faq-bot/src/types"
)

const snapshotKey = "faq:snapshot"

// Source lists the FAQ table in row order.
type Source interface {
	ListFAQ(ctx context.Context) ([]types.FAQEntry, error)
}

// Resolver looks up FAQ entries by id. Without a cache every call re-reads
// the full table.
type Resolver struct {
	src   Source
	cache *bigcache.BigCache
}

func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// WithSnapshotCache keeps the last table read for ttl. A zero ttl leaves the
// resolver uncached.
func (r *Resolver) WithSnapshotCache(ctx context.Context, ttl time.Duration) (*Resolver, error) {
	if ttl <= 0 {
		return r, nil
	}
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 1
	cfg.CleanWindow = ttl
	cfg.Verbose = false
	cache, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("faq snapshot cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

// Resolve returns the first row whose id matches, or nil.
func (r *Resolver) Resolve(ctx context.Context, id string) (*types.FAQEntry, error) {
	entries, err := r.entries(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if MatchID(id, entries[i].ID) {
			e := entries[i]
			return &e, nil
		}
	}
	return nil, nil
}

// Invalidate drops the cached snapshot, if any.
func (r *Resolver) Invalidate() {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(snapshotKey); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		log.Printf("faq: invalidate snapshot: %v", err)
	}
}

// Close releases the snapshot cache.
func (r *Resolver) Close() error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Close()
}

func (r *Resolver) entries(ctx context.Context) ([]types.FAQEntry, error) {
	if r.cache != nil {
		if raw, err := r.cache.Get(snapshotKey); err == nil {
			var entries []types.FAQEntry
			if err := json.Unmarshal(raw, &entries); err == nil {
				return entries, nil
			}
		}
	}

	entries, err := r.src.ListFAQ(ctx)
	if err != nil {
		return nil, fmt.Errorf("read faq table: %w", err)
	}

	if r.cache != nil {
		if raw, err := json.Marshal(entries); err == nil {
			if err := r.cache.Set(snapshotKey, raw); err != nil {
				log.Printf("faq: store snapshot: %v", err)
			}
		}
	}
	return entries, nil
}
