package state

import (
	"bytes"

	"github.com/ardanlabs/ledger/foundation/blockchain/canonical"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Export returns the chain in its exchange format: the canonical JSON array
// of blocks, encoded once more as a JSON string literal.
func (s *State) Export() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Export(s.blocks)
}

// Export encodes the blocks in the exchange format.
func Export(blocks []database.Block) (string, error) {
	if blocks == nil {
		blocks = []database.Block{}
	}

	inner, err := canonical.Marshal(blocks)
	if err != nil {
		return "", err
	}

	outer, err := canonical.Marshal(string(inner))
	if err != nil {
		return "", err
	}

	return string(outer), nil
}

// Import reverses Export. Malformed input is reported as a serialization
// error.
func Import(exported string) ([]database.Block, error) {
	var inner string
	if err := canonical.Unmarshal([]byte(exported), &inner); err != nil {
		return nil, err
	}

	return DecodeBlocks([]byte(inner))
}

// DecodeBlocks decodes a plain JSON array of blocks.
func DecodeBlocks(data []byte) ([]database.Block, error) {
	var blocks []database.Block
	if err := canonical.Unmarshal(data, &blocks); err != nil {
		return nil, err
	}

	return blocks, nil
}

// Decode accepts either the exchange format or a plain JSON array of blocks.
func Decode(data []byte) ([]database.Block, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return DecodeBlocks(data)
	}

	return Import(string(data))
}
