package shared

import (
	"context"
	"time"
)

// DedupStore remembers keys that have already been acted upon, with a TTL.
// It is a non-authoritative fast path: the durable dedup guarantee lives in
// the storage layer (unique dedup keys), this store only short-circuits
// repeated evaluation within a process or across a shared Redis.
type DedupStore interface {
	// MarkSeen marks a key as seen with a TTL.
	// Returns true if the key was newly marked, false if it was already seen.
	MarkSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsSeen checks whether a key has already been marked.
	IsSeen(ctx context.Context, key string) (bool, error)

	// Close releases resources held by the store.
	Close() error
}
