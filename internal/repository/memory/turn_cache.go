package memory

import (
	"time"

	"paper-rag-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// TurnCache keeps the most recent completed TurnState per session so the
// last retrieval can be inspected without touching the database. Entries
// expire on their own and the whole cache is flushed on document swap.
type TurnCache struct {
	cache *cache.Cache
}

func NewTurnCache() *TurnCache {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &TurnCache{
		cache: c,
	}
}

func (r *TurnCache) Save(state *store.TurnState) {
	r.cache.Set(state.SessionID, state, cache.DefaultExpiration)
}

func (r *TurnCache) Get(sessionID string) (*store.TurnState, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.TurnState), true
	}
	return nil, false
}

func (r *TurnCache) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Flush drops every cached turn. Called when the active document changes:
// any snapshot taken against the old index is stale by definition.
func (r *TurnCache) Flush() {
	r.cache.Flush()
}
