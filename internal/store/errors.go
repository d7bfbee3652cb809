package store

import "fmt"

// NotFoundErr signals that no block matches the requested identifier. Expected
// and frequent; carries the offending identifier for diagnostics.
type NotFoundErr struct {
	Identifier string
}

func (e NotFoundErr) Error() string {
	return "block not found: " + e.Identifier
}

// ProofNotFoundErr signals that a known block has no retrievable proof artifact.
type ProofNotFoundErr struct {
	Height uint32
}

func (e ProofNotFoundErr) Error() string {
	return fmt.Sprintf("proof not found for block: %d", e.Height)
}

// InvalidIdentifierErr signals malformed caller input, raised before any storage
// access.
type InvalidIdentifierErr struct {
	Identifier string
}

func (e InvalidIdentifierErr) Error() string {
	return "invalid block identifier: " + e.Identifier
}
