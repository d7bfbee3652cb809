// Package proofs locates externally stored proof artifacts by block height.
package proofs

import (
	"context"
	"os"
	"strconv"

	"github.com/setavenger/raito-oracle/internal/dataset"
	"github.com/setavenger/raito-oracle/internal/store"
)

// Index is the slice of the store contract the locator needs.
type Index interface {
	BlockExists(ctx context.Context, identifier string) (bool, error)
	ProofExists(ctx context.Context, height uint32) (bool, error)
}

type Locator struct {
	index Index
	dir   string
}

func NewLocator(index Index, dir string) *Locator {
	return &Locator{index: index, dir: dir}
}

// Path returns the conventional artifact location for a height.
func (l *Locator) Path(height uint32) string {
	return dataset.ArtifactPath(l.dir, height)
}

// Exists consults the proof artifact index only. An indexed record whose
// backing blob is missing still reports true here.
func (l *Locator) Exists(ctx context.Context, height uint32) (bool, error) {
	return l.index.ProofExists(ctx, height)
}

// Fetch returns the raw artifact bytes. An unknown block is NotFoundErr, a known
// block without an artifact record is ProofNotFoundErr. A read failure on an
// indexed artifact is also ProofNotFoundErr; from the caller's point of view the
// artifact is unavailable either way.
func (l *Locator) Fetch(ctx context.Context, height uint32) ([]byte, error) {
	heightStr := strconv.FormatUint(uint64(height), 10)

	ok, err := l.index.BlockExists(ctx, heightStr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, store.NotFoundErr{Identifier: heightStr}
	}

	ok, err = l.index.ProofExists(ctx, height)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, store.ProofNotFoundErr{Height: height}
	}

	data, err := os.ReadFile(l.Path(height))
	if err != nil {
		return nil, store.ProofNotFoundErr{Height: height}
	}
	return data, nil
}
