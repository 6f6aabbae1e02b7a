package gencache

import (
	"context"
	"time"
)

// generator matches planner.Generator without importing it.
type generator interface {
	Generate(ctx context.Context, system, userPrompt string) (string, error)
}

// CachingGenerator serves replies from the file cache when the identical
// request was seen within the TTL, and fills the cache on miss. Errors from
// the inner generator are never cached.
type CachingGenerator struct {
	inner generator
	cache *FileCache
	model string
	ttl   time.Duration
}

// Wrap decorates gen with the reply cache. model is part of the cache key
// so switching models never replays stale text.
func Wrap(gen generator, cache *FileCache, model string, ttl time.Duration) *CachingGenerator {
	return &CachingGenerator{inner: gen, cache: cache, model: model, ttl: ttl}
}

func (g *CachingGenerator) Generate(ctx context.Context, system, userPrompt string) (string, error) {
	key := Key(g.model, system, userPrompt)
	if entry, ok := g.cache.Read(key, g.ttl); ok {
		return entry.Reply, nil
	}

	reply, err := g.inner.Generate(ctx, system, userPrompt)
	if err != nil {
		return "", err
	}

	// Cache write failures are not fatal; the reply is still good.
	_ = g.cache.Write(key, &Entry{Model: g.model, Reply: reply})
	return reply, nil
}
