// Package snapshot implements the block store contract on an immutable
// in-memory index built once at startup.
package snapshot

import (
	"context"
	"fmt"
	"sort"

	"github.com/setavenger/raito-oracle/internal/store"
	"github.com/setavenger/raito-oracle/internal/types"
)

// Store holds the four derived indices plus a height-descending slice for
// pagination. Never mutated after New returns, so concurrent reads need no
// locking.
type Store struct {
	byHeight     map[uint32]types.BlockDetail
	hashIndex    map[string]uint32
	txIndex      map[string]uint32
	headerIndex  map[string]uint32
	proofHeights map[uint32]struct{}
	heightsDesc  []uint32
}

var _ store.Store = (*Store)(nil)

// New derives all indices in a single pass over the dataset. A malformed input
// is an error the caller should treat as fatal; the snapshot is load-bearing
// process state with no fallback.
func New(records []types.BlockRecord) (*Store, error) {
	s := &Store{
		byHeight:     make(map[uint32]types.BlockDetail, len(records)),
		hashIndex:    make(map[string]uint32, len(records)),
		txIndex:      make(map[string]uint32),
		headerIndex:  make(map[string]uint32, len(records)),
		proofHeights: make(map[uint32]struct{}),
		heightsDesc:  make([]uint32, 0, len(records)),
	}

	for i := range records {
		rec := records[i]
		if !store.IsHex64(rec.Hash) {
			return nil, fmt.Errorf("block %d: malformed hash %q", rec.Height, rec.Hash)
		}
		if _, ok := s.byHeight[rec.Height]; ok {
			return nil, fmt.Errorf("duplicate block height %d", rec.Height)
		}
		if _, ok := s.hashIndex[rec.Hash]; ok {
			return nil, fmt.Errorf("duplicate block hash %s", rec.Hash)
		}
		for _, txid := range rec.Txids {
			if !store.IsHex64(txid) {
				return nil, fmt.Errorf("block %d: malformed txid %q", rec.Height, txid)
			}
			if _, ok := s.txIndex[txid]; ok {
				return nil, fmt.Errorf("txid %s appears in more than one block", txid)
			}
			s.txIndex[txid] = rec.Height
		}

		s.byHeight[rec.Height] = rec.Detail()
		s.hashIndex[rec.Hash] = rec.Height
		s.headerIndex[rec.Hash] = rec.Height
		s.heightsDesc = append(s.heightsDesc, rec.Height)
		if rec.Proof != nil {
			s.proofHeights[rec.Height] = struct{}{}
		}
	}

	sort.Slice(s.heightsDesc, func(i, j int) bool {
		return s.heightsDesc[i] > s.heightsDesc[j]
	})

	return s, nil
}

func (s *Store) ListBlocks(_ context.Context, limit int, cursor *uint32) (types.BlocksPage, error) {
	limit = store.ClampLimit(limit)

	start := 0
	if cursor != nil {
		// heightsDesc is sorted descending; find the first height below the cursor.
		start = sort.Search(len(s.heightsDesc), func(i int) bool {
			return s.heightsDesc[i] < *cursor
		})
	}
	end := start + limit
	if end > len(s.heightsDesc) {
		end = len(s.heightsDesc)
	}

	blocks := make([]types.BlockSummary, 0, end-start)
	for _, height := range s.heightsDesc[start:end] {
		blocks = append(blocks, s.byHeight[height].BlockSummary)
	}

	page := types.BlocksPage{
		Blocks:  blocks,
		Total:   uint32(len(s.heightsDesc)),
		HasNext: len(blocks) == limit,
	}
	if page.HasNext {
		next := blocks[len(blocks)-1].Height
		page.NextCursor = &next
	}
	return page, nil
}

func (s *Store) BlockByHeight(_ context.Context, height uint32) (types.BlockDetail, error) {
	detail, ok := s.byHeight[height]
	if !ok {
		return types.BlockDetail{}, store.NotFoundErr{Identifier: fmt.Sprintf("%d", height)}
	}
	return detail, nil
}

func (s *Store) BlockByHash(ctx context.Context, hash string) (types.BlockDetail, error) {
	height, ok := s.hashIndex[hash]
	if !ok {
		return types.BlockDetail{}, store.NotFoundErr{Identifier: hash}
	}
	return s.BlockByHeight(ctx, height)
}

func (s *Store) TransactionStatus(_ context.Context, txid string) (types.TransactionStatus, error) {
	height, ok := s.txIndex[txid]
	if !ok {
		return types.TransactionStatus{Included: false}, nil
	}
	return types.TransactionStatus{Included: true, BlockHeight: &height}, nil
}

func (s *Store) HeaderStatus(_ context.Context, hash string) (types.HeaderStatus, error) {
	height, ok := s.headerIndex[hash]
	if !ok {
		return types.HeaderStatus{InChain: false}, nil
	}
	return types.HeaderStatus{InChain: true, BlockHeight: &height}, nil
}

func (s *Store) BlockExists(_ context.Context, identifier string) (bool, error) {
	switch id := store.ClassifyIdentifier(identifier); id.Kind {
	case store.IdentifierHeight:
		_, ok := s.byHeight[id.Height]
		return ok, nil
	case store.IdentifierHash:
		_, ok := s.hashIndex[id.Hash]
		return ok, nil
	default:
		return false, nil
	}
}

func (s *Store) ProofExists(_ context.Context, height uint32) (bool, error) {
	_, ok := s.proofHeights[height]
	return ok, nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}
