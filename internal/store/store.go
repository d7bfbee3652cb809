// Package store defines the contract shared by the sqlite and snapshot backends,
// the failure taxonomy, and the block identifier classification.
package store

import (
	"context"

	"github.com/setavenger/raito-oracle/internal/types"
)

const (
	MinPageLimit = 1
	MaxPageLimit = 50
)

// Store is the read contract. Both backends behave identically through it;
// callers and tests are written against this interface, never a concrete backend.
type Store interface {
	// ListBlocks returns one page ordered by height descending. The cursor is an
	// exclusive height boundary; nil starts at the tip.
	ListBlocks(ctx context.Context, limit int, cursor *uint32) (types.BlocksPage, error)
	BlockByHeight(ctx context.Context, height uint32) (types.BlockDetail, error)
	BlockByHash(ctx context.Context, hash string) (types.BlockDetail, error)
	// TransactionStatus never yields NotFoundErr; an unknown txid reports
	// included=false.
	TransactionStatus(ctx context.Context, txid string) (types.TransactionStatus, error)
	// HeaderStatus never yields NotFoundErr; an unknown hash reports
	// in_chain=false.
	HeaderStatus(ctx context.Context, hash string) (types.HeaderStatus, error)
	// BlockExists tries the identifier as a height first, then as a hash.
	BlockExists(ctx context.Context, identifier string) (bool, error)
	// ProofExists consults the proof artifact index, not the filesystem.
	ProofExists(ctx context.Context, height uint32) (bool, error)
	// Ping is a trivial round-trip against the backing storage.
	Ping(ctx context.Context) error
}

// Inserter is the write surface of the persistent backend. Only seeding and
// migration go through it, never read-path callers.
type Inserter interface {
	InsertBlock(ctx context.Context, record types.BlockRecord) error
}

// ClampLimit caps a page limit to [MinPageLimit, MaxPageLimit]. Over-large
// requests are silently capped, not rejected.
func ClampLimit(limit int) int {
	if limit < MinPageLimit {
		return MinPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}
