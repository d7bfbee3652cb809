package store

import "strconv"

type IdentifierKind int

const (
	IdentifierInvalid IdentifierKind = iota
	IdentifierHeight
	IdentifierHash
)

// Identifier is a classified block identifier. The unsigned-integer parse is
// tried first; anything that parses is a height and the hash path is never
// attempted for it.
type Identifier struct {
	Kind   IdentifierKind
	Height uint32
	Hash   string
	Raw    string
}

func ClassifyIdentifier(raw string) Identifier {
	if height, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return Identifier{Kind: IdentifierHeight, Height: uint32(height), Raw: raw}
	}
	if IsHex64(raw) {
		return Identifier{Kind: IdentifierHash, Hash: raw, Raw: raw}
	}
	return Identifier{Kind: IdentifierInvalid, Raw: raw}
}

// IsHex64 reports whether s is exactly 64 ASCII hex digits, case-insensitive.
// Block identifiers, header hashes and transaction ids all share this one rule.
func IsHex64(s string) bool {
	if len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
