// Package canonical provides the deterministic serialization and hashing
// used to stamp blocks on the ledger.
package canonical

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrSerialization is wrapped by every failure to encode or decode a value
// in canonical form.
var ErrSerialization = errors.New("serialization error")

// =============================================================================

// Marshal returns the canonical JSON encoding of the value. Object keys are
// sorted lexicographically at every nesting level and no insignificant
// whitespace is produced, so structurally equal values always encode to the
// same bytes.
func Marshal(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	// Struct fields are emitted in declaration order. Decoding into generic
	// values turns every object into a map, which the encoder writes with
	// sorted keys. UseNumber keeps integers exactly as they were written.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	out, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	return out, nil
}

// Unmarshal decodes canonical JSON into the value. Any decoding failure is
// reported as a serialization error.
func Unmarshal(data []byte, value any) error {
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	return nil
}

// Hash returns the lowercase hex encoded sha256 digest of the value. A string
// is hashed as is, anything else is hashed over its canonical encoding.
func Hash(value any) (string, error) {
	var data []byte

	switch v := value.(type) {
	case string:
		data = []byte(v)
	default:
		var err error
		if data, err = Marshal(v); err != nil {
			return "", err
		}
	}

	hash := sha256.Sum256(data)
	return common.Bytes2Hex(hash[:]), nil
}
