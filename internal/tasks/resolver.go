package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/okhester/ludex/internal/models"
	"github.com/okhester/ludex/internal/shared"
	"golang.org/x/time/rate"
)

// Resolver maps normalized titles to catalog row ids, creating rows on first
// sight. It owns a private title→id cache whose lifetime is one consolidation
// run; the cache is a fast path only, with the store's unique constraint as
// the actual dedup guarantee.
//
// Lookup order: cache, then a linear scan of existing catalog titles after
// normalization, then insert. The scan runs once per distinct title per run,
// not per request, so its cost is acceptable.
type Resolver struct {
	catalog CatalogStore
	limiter *rate.Limiter
	cache   map[string]string
}

// NewResolver creates a Resolver over the given catalog store. limiter may be
// nil to leave inserts unthrottled.
func NewResolver(catalog CatalogStore, limiter *rate.Limiter) *Resolver {
	return &Resolver{
		catalog: catalog,
		limiter: limiter,
		cache:   make(map[string]string),
	}
}

// ResolveOrCreate returns the catalog row id for the given shared metadata,
// creating the row if no existing title normalizes to the same key. isNew
// reports whether a row was created.
//
// Errors fail the caller's whole group: no library entries should be written
// against an unresolved catalog id.
func (r *Resolver) ResolveOrCreate(ctx context.Context, data models.SharedGameData) (id string, isNew bool, err error) {
	key := shared.NormalizeTitle(data.Title)

	if id, ok := r.cache[key]; ok {
		return id, false, nil
	}

	id, found, err := r.lookup(key)
	if err != nil {
		return "", false, err
	}
	if found {
		r.cache[key] = id
		return id, false, nil
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", false, err
		}
	}

	game, err := r.catalog.Create(data)
	if errors.Is(err, shared.ErrAlreadyExists) {
		// The unique constraint caught a row the scan missed. Reuse it.
		id, found, err := r.lookup(key)
		if err != nil {
			return "", false, err
		}
		if !found {
			return "", false, fmt.Errorf("catalog entry for %q exists but could not be resolved", key)
		}
		r.cache[key] = id
		return id, false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to create catalog entry: %w", err)
	}

	r.cache[key] = game.ID
	return game.ID, true, nil
}

// lookup scans every existing catalog title for one normalizing to key.
func (r *Resolver) lookup(key string) (string, bool, error) {
	titles, err := r.catalog.Titles()
	if err != nil {
		return "", false, fmt.Errorf("failed to scan catalog titles: %w", err)
	}

	for _, t := range titles {
		if shared.NormalizeTitle(t.Title) == key {
			return t.ID, true, nil
		}
	}

	return "", false, nil
}
