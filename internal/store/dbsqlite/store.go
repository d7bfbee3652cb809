package dbsqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/setavenger/raito-oracle/internal/store"
	"github.com/setavenger/raito-oracle/internal/types"
)

var _ store.Store = (*Store)(nil)

func (s *Store) ListBlocks(ctx context.Context, limit int, cursor *uint32) (types.BlocksPage, error) {
	started := time.Now()
	var err error
	defer func() { s.metrics.Observe("list_blocks", err, started) }()

	limit = store.ClampLimit(limit)

	query := `
SELECT height, hash, tx_count, total_fees, timestamp, verified
FROM blocks`
	args := make([]any, 0, 2)
	if cursor != nil {
		query += `
WHERE height < ?`
		args = append(args, *cursor)
	}
	query += `
ORDER BY height DESC
LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return types.BlocksPage{}, err
	}
	defer rows.Close()

	blocks := make([]types.BlockSummary, 0, limit)
	for rows.Next() {
		var b types.BlockSummary
		if err = rows.Scan(&b.Height, &b.Hash, &b.TxCount, &b.TotalFees, &b.Timestamp, &b.Verified); err != nil {
			return types.BlocksPage{}, err
		}
		blocks = append(blocks, b)
	}
	if err = rows.Err(); err != nil {
		return types.BlocksPage{}, err
	}

	var total uint32
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blocks`).Scan(&total); err != nil {
		return types.BlocksPage{}, err
	}

	page := types.BlocksPage{
		Blocks:  blocks,
		Total:   total,
		HasNext: len(blocks) == limit,
	}
	if page.HasNext {
		next := blocks[len(blocks)-1].Height
		page.NextCursor = &next
	}
	return page, nil
}

func (s *Store) BlockByHeight(ctx context.Context, height uint32) (types.BlockDetail, error) {
	started := time.Now()
	var err error
	defer func() { s.metrics.Observe("block_by_height", err, started) }()

	var d types.BlockDetail
	err = s.db.QueryRowContext(ctx, `
SELECT height, hash, prev_hash, merkle_root, bits, nonce, tx_count, total_fees, timestamp, verified
FROM blocks
WHERE height = ?`, height).Scan(
		&d.Height, &d.Hash, &d.PrevHash, &d.MerkleRoot, &d.Bits, &d.Nonce,
		&d.TxCount, &d.TotalFees, &d.Timestamp, &d.Verified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		err = store.NotFoundErr{Identifier: strconv.FormatUint(uint64(height), 10)}
		return types.BlockDetail{}, err
	}
	if err != nil {
		return types.BlockDetail{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT txid
FROM transactions
WHERE block_height = ?
ORDER BY position_in_block`, height)
	if err != nil {
		return types.BlockDetail{}, err
	}
	defer rows.Close()

	d.Txids = make([]string, 0, d.TxCount)
	for rows.Next() {
		var txid string
		if err = rows.Scan(&txid); err != nil {
			return types.BlockDetail{}, err
		}
		d.Txids = append(d.Txids, txid)
	}
	if err = rows.Err(); err != nil {
		return types.BlockDetail{}, err
	}

	d.ProofURL = types.ProofURL(height)
	return d, nil
}

func (s *Store) BlockByHash(ctx context.Context, hash string) (types.BlockDetail, error) {
	started := time.Now()
	var err error
	defer func() { s.metrics.Observe("block_by_hash", err, started) }()

	var height uint32
	err = s.db.QueryRowContext(ctx,
		`SELECT block_height FROM block_headers WHERE hash = ?`, hash).Scan(&height)
	if errors.Is(err, sql.ErrNoRows) {
		err = store.NotFoundErr{Identifier: hash}
		return types.BlockDetail{}, err
	}
	if err != nil {
		return types.BlockDetail{}, err
	}

	var d types.BlockDetail
	d, err = s.BlockByHeight(ctx, height)
	return d, err
}

func (s *Store) TransactionStatus(ctx context.Context, txid string) (types.TransactionStatus, error) {
	started := time.Now()
	var err error
	defer func() { s.metrics.Observe("transaction_status", err, started) }()

	var height uint32
	err = s.db.QueryRowContext(ctx,
		`SELECT block_height FROM transactions WHERE txid = ?`, txid).Scan(&height)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return types.TransactionStatus{Included: false}, nil
	}
	if err != nil {
		return types.TransactionStatus{}, err
	}
	return types.TransactionStatus{Included: true, BlockHeight: &height}, nil
}

func (s *Store) HeaderStatus(ctx context.Context, hash string) (types.HeaderStatus, error) {
	started := time.Now()
	var err error
	defer func() { s.metrics.Observe("header_status", err, started) }()

	var height uint32
	err = s.db.QueryRowContext(ctx,
		`SELECT block_height FROM block_headers WHERE hash = ?`, hash).Scan(&height)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return types.HeaderStatus{InChain: false}, nil
	}
	if err != nil {
		return types.HeaderStatus{}, err
	}
	return types.HeaderStatus{InChain: true, BlockHeight: &height}, nil
}

func (s *Store) BlockExists(ctx context.Context, identifier string) (bool, error) {
	started := time.Now()
	var err error
	defer func() { s.metrics.Observe("block_exists", err, started) }()

	var exists bool
	switch id := store.ClassifyIdentifier(identifier); id.Kind {
	case store.IdentifierHeight:
		err = s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM blocks WHERE height = ?)`, id.Height).Scan(&exists)
	case store.IdentifierHash:
		err = s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM block_headers WHERE hash = ?)`, id.Hash).Scan(&exists)
	default:
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) ProofExists(ctx context.Context, height uint32) (bool, error) {
	started := time.Now()
	var err error
	defer func() { s.metrics.Observe("proof_exists", err, started) }()

	var exists bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM proof_files WHERE block_height = ?)`, height).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) Ping(ctx context.Context) error {
	started := time.Now()
	var err error
	defer func() { s.metrics.Observe("ping", err, started) }()

	_, err = s.db.ExecContext(ctx, `SELECT 1`)
	return err
}
