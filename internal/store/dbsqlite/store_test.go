package dbsqlite_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setavenger/raito-oracle/internal/store"
	"github.com/setavenger/raito-oracle/internal/store/dbsqlite"
	"github.com/setavenger/raito-oracle/internal/store/snapshot"
	"github.com/setavenger/raito-oracle/internal/testhelpers"
	"github.com/setavenger/raito-oracle/internal/types"
)

func openStore(t *testing.T) *dbsqlite.Store {
	t.Helper()
	s, err := dbsqlite.Open(filepath.Join(t.TempDir(), "test.db"), dbsqlite.NopMetrics{})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func seededStore(t *testing.T, heights ...uint32) *dbsqlite.Store {
	t.Helper()
	s := openStore(t)
	require.NoError(t, s.Seed(context.Background(), testhelpers.Blocks(heights...)))
	return s
}

func pageHeights(page types.BlocksPage) []uint32 {
	heights := make([]uint32, 0, len(page.Blocks))
	for _, b := range page.Blocks {
		heights = append(heights, b.Height)
	}
	return heights
}

func TestListBlocksPagination(t *testing.T) {
	s := seededStore(t, 98, 99, 100)
	ctx := context.Background()

	page, err := s.ListBlocks(ctx, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{100, 99}, pageHeights(page))
	assert.Equal(t, uint32(3), page.Total)
	assert.True(t, page.HasNext)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, uint32(99), *page.NextCursor)

	page, err = s.ListBlocks(ctx, 2, page.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, []uint32{98}, pageHeights(page))
	assert.False(t, page.HasNext)
	assert.Nil(t, page.NextCursor)
}

func TestListBlocksEmptyStore(t *testing.T) {
	s := openStore(t)

	page, err := s.ListBlocks(context.Background(), 20, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Blocks)
	assert.Equal(t, uint32(0), page.Total)
	assert.False(t, page.HasNext)
	assert.Nil(t, page.NextCursor)
}

func TestSeedIsIdempotent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	records := testhelpers.Blocks(10, 11, 12)

	require.NoError(t, s.Seed(ctx, records))
	first, err := s.ListBlocks(ctx, 50, nil)
	require.NoError(t, err)

	require.NoError(t, s.Seed(ctx, records))
	second, err := s.ListBlocks(ctx, 50, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, uint32(3), second.Total)
}

func TestInsertBlockReplacesDerivedRows(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	old := testhelpers.Block(10)
	require.NoError(t, s.InsertBlock(ctx, old))

	replacement := testhelpers.Block(10)
	replacement.Hash = strings.Repeat("ee", 32)
	replacement.Txids = []string{strings.Repeat("ff", 32)}
	replacement.TxCount = 1
	require.NoError(t, s.InsertBlock(ctx, replacement))

	detail, err := s.BlockByHeight(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, replacement.Hash, detail.Hash)
	assert.Equal(t, replacement.Txids, detail.Txids)

	// Every index entry of the replaced record is gone.
	_, err = s.BlockByHash(ctx, old.Hash)
	assert.ErrorAs(t, err, &store.NotFoundErr{})

	status, err := s.TransactionStatus(ctx, old.Txids[0])
	require.NoError(t, err)
	assert.False(t, status.Included)

	header, err := s.HeaderStatus(ctx, old.Hash)
	require.NoError(t, err)
	assert.False(t, header.InChain)
}

func TestBlockByHeightAndHash(t *testing.T) {
	s := seededStore(t, 869120)
	ctx := context.Background()

	byHeight, err := s.BlockByHeight(ctx, 869120)
	require.NoError(t, err)

	byHash, err := s.BlockByHash(ctx, testhelpers.HashForHeight(869120))
	require.NoError(t, err)

	assert.Equal(t, byHeight, byHash)
	assert.Equal(t, "/v1/blocks/869120/proof", byHeight.ProofURL)
}

func TestBlockByHeightNotFound(t *testing.T) {
	s := seededStore(t, 869120)

	_, err := s.BlockByHeight(context.Background(), 1)
	assert.ErrorAs(t, err, &store.NotFoundErr{})
}

func TestTxidsKeepInsertionOrder(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec := testhelpers.Block(20)
	rec.Txids = []string{
		strings.Repeat("ff", 32),
		strings.Repeat("00", 32),
		strings.Repeat("aa", 32),
	}
	rec.TxCount = 3
	require.NoError(t, s.InsertBlock(ctx, rec))

	detail, err := s.BlockByHeight(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, rec.Txids, detail.Txids)
}

func TestTransactionStatus(t *testing.T) {
	s := seededStore(t, 869120)
	ctx := context.Background()

	status, err := s.TransactionStatus(ctx, testhelpers.TxidAt(869120, 0))
	require.NoError(t, err)
	assert.True(t, status.Included)
	require.NotNil(t, status.BlockHeight)
	assert.Equal(t, uint32(869120), *status.BlockHeight)

	status, err = s.TransactionStatus(ctx, strings.Repeat("deadbeef", 8))
	require.NoError(t, err)
	assert.False(t, status.Included)
	assert.Nil(t, status.BlockHeight)
}

func TestHeaderStatus(t *testing.T) {
	s := seededStore(t, 869120)
	ctx := context.Background()

	status, err := s.HeaderStatus(ctx, testhelpers.HashForHeight(869120))
	require.NoError(t, err)
	assert.True(t, status.InChain)
	require.NotNil(t, status.BlockHeight)
	assert.Equal(t, uint32(869120), *status.BlockHeight)

	status, err = s.HeaderStatus(ctx, strings.Repeat("11", 32))
	require.NoError(t, err)
	assert.False(t, status.InChain)
}

func TestBlockExists(t *testing.T) {
	s := seededStore(t, 869120)
	ctx := context.Background()

	ok, err := s.BlockExists(ctx, "869120")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.BlockExists(ctx, testhelpers.HashForHeight(869120))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.BlockExists(ctx, "42")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.BlockExists(ctx, "not-an-identifier")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProofExists(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	records := testhelpers.Blocks(10, 11)
	records[0].Proof = &types.ProofRecord{
		FilePath:        "/tmp/10.json",
		ProofVersion:    "v1.0",
		GeneratedAt:     1700000000,
		ExecutionTimeMS: 45000,
	}
	require.NoError(t, s.Seed(ctx, records))

	ok, err := s.ProofExists(ctx, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ProofExists(ctx, 11)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPing(t *testing.T) {
	s := openStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

// Both backends implement the same contract; seeded with the same dataset they
// must give the same answers.
func TestBackendsAgree(t *testing.T) {
	records := testhelpers.Blocks(98, 99, 100)
	records[1].Proof = &types.ProofRecord{
		FilePath:        "/tmp/99.json",
		ProofVersion:    "v1.0",
		GeneratedAt:     1700000000,
		ExecutionTimeMS: 45000,
	}

	db := openStore(t)
	ctx := context.Background()
	require.NoError(t, db.Seed(ctx, records))

	snap, err := snapshot.New(records)
	require.NoError(t, err)

	backends := []store.Store{db, snap}

	dbPage, err := backends[0].ListBlocks(ctx, 2, nil)
	require.NoError(t, err)
	snapPage, err := backends[1].ListBlocks(ctx, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, dbPage, snapPage)

	for _, rec := range records {
		dbDetail, err := backends[0].BlockByHeight(ctx, rec.Height)
		require.NoError(t, err)
		snapDetail, err := backends[1].BlockByHeight(ctx, rec.Height)
		require.NoError(t, err)
		assert.Equal(t, dbDetail, snapDetail)

		for _, st := range backends {
			ok, err := st.ProofExists(ctx, rec.Height)
			require.NoError(t, err)
			assert.Equal(t, rec.Proof != nil, ok)
		}
	}
}
