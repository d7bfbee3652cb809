// Package types holds the domain records served by the block store.
package types

import "fmt"

// BlockSummary is the listing view of a block.
type BlockSummary struct {
	Height    uint32  `json:"height"`
	Hash      string  `json:"hash"`
	TxCount   uint32  `json:"tx_count"`
	TotalFees float64 `json:"total_fees"`
	Timestamp int64   `json:"timestamp"`
	Verified  bool    `json:"verified"`
}

// BlockDetail is the full view of a block. Txids are ordered by their position
// within the block.
type BlockDetail struct {
	BlockSummary
	PrevHash   string   `json:"prev_hash"`
	MerkleRoot string   `json:"merkle_root"`
	Bits       uint32   `json:"bits"`
	Nonce      uint32   `json:"nonce"`
	Txids      []string `json:"txids"`
	ProofURL   string   `json:"proof_url"`
}

type TransactionStatus struct {
	Included    bool    `json:"included"`
	BlockHeight *uint32 `json:"block_height"`
}

type HeaderStatus struct {
	InChain     bool    `json:"in_chain"`
	BlockHeight *uint32 `json:"block_height"`
}

// BlocksPage is one page of a height-descending block listing. NextCursor is the
// lowest height in the page when another page may exist.
type BlocksPage struct {
	Blocks     []BlockSummary `json:"blocks"`
	Total      uint32         `json:"total"`
	HasNext    bool           `json:"has_next"`
	NextCursor *uint32        `json:"next_cursor"`
}

// ProofRecord is the provenance of an externally stored proof artifact.
type ProofRecord struct {
	FilePath        string `json:"file_path"`
	ProofVersion    string `json:"proof_version"`
	GeneratedAt     int64  `json:"generated_at"`
	ExecutionTimeMS int64  `json:"execution_time_ms"`
}

// BlockRecord is one row of the bulk input dataset used for seeding and for
// snapshot construction. Txid order defines position_in_block.
type BlockRecord struct {
	Height     uint32       `json:"height"`
	Hash       string       `json:"hash"`
	PrevHash   string       `json:"prev_hash"`
	MerkleRoot string       `json:"merkle_root"`
	Bits       uint32       `json:"bits"`
	Nonce      uint32       `json:"nonce"`
	TxCount    uint32       `json:"tx_count"`
	TotalFees  float64      `json:"total_fees"`
	Timestamp  int64        `json:"timestamp"`
	Verified   bool         `json:"verified"`
	Txids      []string     `json:"txids"`
	Proof      *ProofRecord `json:"proof,omitempty"`
}

type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// ProofURL returns the path under which the proof artifact of a block is served.
func ProofURL(height uint32) string {
	return fmt.Sprintf("/v1/blocks/%d/proof", height)
}

func (r BlockRecord) Summary() BlockSummary {
	return BlockSummary{
		Height:    r.Height,
		Hash:      r.Hash,
		TxCount:   r.TxCount,
		TotalFees: r.TotalFees,
		Timestamp: r.Timestamp,
		Verified:  r.Verified,
	}
}

func (r BlockRecord) Detail() BlockDetail {
	txids := make([]string, len(r.Txids))
	copy(txids, r.Txids)
	return BlockDetail{
		BlockSummary: r.Summary(),
		PrevHash:     r.PrevHash,
		MerkleRoot:   r.MerkleRoot,
		Bits:         r.Bits,
		Nonce:        r.Nonce,
		Txids:        txids,
		ProofURL:     ProofURL(r.Height),
	}
}
