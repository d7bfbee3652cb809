// Package testhelpers builds deterministic block fixtures for tests.
package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/setavenger/raito-oracle/internal/types"
)

// HashForHeight returns a deterministic 64-char hex block hash.
func HashForHeight(height uint32) string {
	return fmt.Sprintf("%064x", uint64(height)+0xb10c0000)
}

// TxidAt returns a deterministic 64-char hex txid for a position within a block.
func TxidAt(height uint32, position int) string {
	return fmt.Sprintf("%064x", uint64(height)*1000+uint64(position)+0xacc40000)
}

// Block builds one fixture record with two transactions.
func Block(height uint32) types.BlockRecord {
	prev := ""
	if height > 0 {
		prev = HashForHeight(height - 1)
	} else {
		prev = fmt.Sprintf("%064x", 0)
	}
	return types.BlockRecord{
		Height:     height,
		Hash:       HashForHeight(height),
		PrevHash:   prev,
		MerkleRoot: fmt.Sprintf("%064x", uint64(height)+0x3e71e0000),
		Bits:       0x17034219,
		Nonce:      height * 7,
		TxCount:    2,
		TotalFees:  0.125,
		Timestamp:  1700000000 + int64(height)*600,
		Verified:   height%2 == 0,
		Txids: []string{
			TxidAt(height, 0),
			TxidAt(height, 1),
		},
	}
}

// Blocks builds fixture records for the given heights.
func Blocks(heights ...uint32) []types.BlockRecord {
	records := make([]types.BlockRecord, 0, len(heights))
	for _, h := range heights {
		records = append(records, Block(h))
	}
	return records
}

// WriteProofArtifact writes a fixture artifact at the conventional path and
// returns it.
func WriteProofArtifact(t *testing.T, dir string, height uint32, contents []byte) string {
	t.Helper()
	p := filepath.Join(dir, strconv.FormatUint(uint64(height), 10)+".json")
	if err := os.WriteFile(p, contents, 0640); err != nil {
		t.Fatalf("write proof artifact: %v", err)
	}
	return p
}
