package dbsqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/setavenger/raito-oracle/internal/store"
	"github.com/setavenger/raito-oracle/internal/types"
)

var _ store.Inserter = (*Store)(nil)

// InsertBlock upserts one block. Any existing record at the same height is
// replaced and its derived index rows are rebuilt inside a single transaction,
// so a concurrent reader never observes a half-updated height.
func (s *Store) InsertBlock(ctx context.Context, rec types.BlockRecord) error {
	started := time.Now()
	var err error
	defer func() { s.metrics.Observe("insert_block", err, started) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Clear derived rows first so a replaced block leaves no stale index entries.
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE block_height = ?`, rec.Height); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM block_headers WHERE block_height = ?`, rec.Height); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM proof_files WHERE block_height = ?`, rec.Height); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
INSERT OR REPLACE INTO blocks
  (height, hash, prev_hash, merkle_root, bits, nonce, tx_count, total_fees, timestamp, verified)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Height, rec.Hash, rec.PrevHash, rec.MerkleRoot, rec.Bits, rec.Nonce,
		rec.TxCount, rec.TotalFees, rec.Timestamp, rec.Verified,
	); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
INSERT OR REPLACE INTO block_headers (hash, block_height)
VALUES (?, ?)`, rec.Hash, rec.Height); err != nil {
		return err
	}

	insTx, err := tx.PrepareContext(ctx, `
INSERT OR REPLACE INTO transactions (txid, block_height, position_in_block)
VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insTx.Close()

	for position, txid := range rec.Txids {
		if _, err = insTx.ExecContext(ctx, txid, rec.Height, position); err != nil {
			return err
		}
	}

	if rec.Proof != nil {
		if _, err = tx.ExecContext(ctx, `
INSERT OR REPLACE INTO proof_files
  (block_height, file_path, proof_version, generated_at, execution_time_ms)
VALUES (?, ?, ?, ?, ?)`,
			rec.Height, rec.Proof.FilePath, rec.Proof.ProofVersion,
			rec.Proof.GeneratedAt, rec.Proof.ExecutionTimeMS,
		); err != nil {
			return err
		}
	}

	err = tx.Commit()
	return err
}

// Seed upserts every record of the dataset. Seeding the same dataset twice
// leaves the same final state. There is no rollback across records: a failure
// means seeding stopped at that record, earlier blocks stay.
func (s *Store) Seed(ctx context.Context, records []types.BlockRecord) error {
	for i := range records {
		if err := s.InsertBlock(ctx, records[i]); err != nil {
			return fmt.Errorf("seed block %d: %w", records[i].Height, err)
		}
	}
	return nil
}
