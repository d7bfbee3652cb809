package proofs_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setavenger/raito-oracle/internal/proofs"
	"github.com/setavenger/raito-oracle/internal/store"
	"github.com/setavenger/raito-oracle/internal/store/snapshot"
	"github.com/setavenger/raito-oracle/internal/testhelpers"
	"github.com/setavenger/raito-oracle/internal/types"
)

// newLocator indexes three blocks: 5 has an artifact on disk, 6 has an index
// entry whose blob is missing, 7 has no proof at all.
func newLocator(t *testing.T) (*proofs.Locator, []byte) {
	t.Helper()

	dir := t.TempDir()
	contents := []byte(`{"proof":"0xabc"}`)
	artifact := testhelpers.WriteProofArtifact(t, dir, 5, contents)

	records := testhelpers.Blocks(5, 6, 7)
	records[0].Proof = &types.ProofRecord{
		FilePath:        artifact,
		ProofVersion:    "v1.0",
		GeneratedAt:     records[0].Timestamp,
		ExecutionTimeMS: 45000,
	}
	records[1].Proof = &types.ProofRecord{
		FilePath:        filepath.Join(dir, "6.json"),
		ProofVersion:    "v1.0",
		GeneratedAt:     records[1].Timestamp,
		ExecutionTimeMS: 45000,
	}

	snap, err := snapshot.New(records)
	require.NoError(t, err)

	return proofs.NewLocator(snap, dir), contents
}

func TestFetch(t *testing.T) {
	locator, contents := newLocator(t)
	ctx := context.Background()

	data, err := locator.Fetch(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, contents, data)
}

func TestFetchUnknownBlock(t *testing.T) {
	locator, _ := newLocator(t)

	_, err := locator.Fetch(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorAs(t, err, &store.NotFoundErr{})
}

func TestFetchBlockWithoutProof(t *testing.T) {
	locator, _ := newLocator(t)

	_, err := locator.Fetch(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorAs(t, err, &store.ProofNotFoundErr{})
}

func TestFetchIndexedButMissingBlob(t *testing.T) {
	locator, _ := newLocator(t)

	_, err := locator.Fetch(context.Background(), 6)
	require.Error(t, err)
	assert.ErrorAs(t, err, &store.ProofNotFoundErr{})
}

func TestExistsConsultsIndexOnly(t *testing.T) {
	locator, _ := newLocator(t)
	ctx := context.Background()

	ok, err := locator.Exists(ctx, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	// Indexed with a missing blob still counts as existing.
	ok, err = locator.Exists(ctx, 6)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = locator.Exists(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	locator := proofs.NewLocator(nil, dir)
	assert.Equal(t, filepath.Join(dir, "869120.json"), locator.Path(869120))
}
