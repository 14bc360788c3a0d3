package database

import (
	"fmt"
	"slices"

	"github.com/ardanlabs/ledger/foundation/blockchain/canonical"
)

// BlockContents represents the information in a block covered by its hash.
type BlockContents struct {
	Number     uint64  `json:"blockNumber"`
	ParentHash *string `json:"parentHash"` // Nil only for the genesis block.
	TransCount int     `json:"transactionsCount"`
	Trans      []Tx    `json:"transactions"`
}

// Block represents a group of transactions batched together and linked to
// the block before it by the parent hash.
type Block struct {
	Hash     string        `json:"hash"`
	Contents BlockContents `json:"blockContents"`
}

// NewGenesisBlock constructs the first block of a chain. The initial balances
// are recorded as the only transaction of the block.
func NewGenesisBlock(balances map[AccountID]int64) (Block, error) {
	genesisTx := make(Tx, len(balances))
	for accountID, balance := range balances {
		genesisTx[accountID] = balance
	}

	return newBlock(0, nil, []Tx{genesisTx})
}

// NewBlock constructs the block that follows the parent block. The
// transactions are not validated, the caller is responsible for that.
func NewBlock(parent Block, trans []Tx) (Block, error) {
	parentHash := parent.Hash
	return newBlock(parent.Contents.Number+1, &parentHash, trans)
}

func newBlock(number uint64, parentHash *string, trans []Tx) (Block, error) {
	trans = slices.Clone(trans)
	if trans == nil {
		trans = []Tx{}
	}

	contents := BlockContents{
		Number:     number,
		ParentHash: parentHash,
		TransCount: len(trans),
		Trans:      trans,
	}

	hash, err := canonical.Hash(contents)
	if err != nil {
		return Block{}, fmt.Errorf("hashing block contents: %w", err)
	}

	nb := Block{
		Hash:     hash,
		Contents: contents,
	}

	return nb, nil
}

// IsGenesis reports whether the block has the shape of a genesis block.
func (b Block) IsGenesis() bool {
	return b.Contents.Number == 0 && b.Contents.ParentHash == nil
}

// ValidateHash checks the stored hash matches the hash of the contents.
func (b Block) ValidateHash() error {
	hash, err := canonical.Hash(b.Contents)
	if err != nil {
		return fmt.Errorf("hashing block contents: %w", err)
	}

	if b.Hash != hash {
		return NewValidityError(ErrHashMismatch, b.Contents.Number, "got %s, exp %s", b.Hash, hash)
	}

	return nil
}

// ValidateBlock takes a block and validates it to follow the parent block.
// The transactions of the block are validated and applied to the database
// one at a time, so each transaction is checked against the balances left
// by the ones before it. Validation stops at the first failure. Any
// transactions already applied stay applied, rolling them back is the
// responsibility of the caller.
func (b Block) ValidateBlock(parent Block, db *Database, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: validate: blk[%d]: check: block hash matches contents", b.Contents.Number)

	if err := b.ValidateHash(); err != nil {
		return err
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block number is the next number", b.Contents.Number)

	nextNumber := parent.Contents.Number + 1
	if b.Contents.Number != nextNumber {
		return NewValidityError(ErrNumberMismatch, b.Contents.Number, "got %d, exp %d", b.Contents.Number, nextNumber)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: parent hash does match parent block", b.Contents.Number)

	if b.Contents.ParentHash == nil {
		return NewValidityError(ErrParentHashMismatch, b.Contents.Number, "got nil, exp %s", parent.Hash)
	}
	if *b.Contents.ParentHash != parent.Hash {
		return NewValidityError(ErrParentHashMismatch, b.Contents.Number, "got %s, exp %s", *b.Contents.ParentHash, parent.Hash)
	}

	if b.Contents.TransCount != len(b.Contents.Trans) {
		evHandler("database: ValidateBlock: validate: blk[%d]: WARNING: transactionsCount %d, transactions %d", b.Contents.Number, b.Contents.TransCount, len(b.Contents.Trans))
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: transactions are valid", b.Contents.Number)

	for i, tx := range b.Contents.Trans {
		if err := db.ValidateTransaction(tx); err != nil {
			return NewValidityError(ErrInvalidTransaction, b.Contents.Number, "tx[%d] %s: %w", i, tx, err)
		}
		db.ApplyTransaction(tx)
	}

	return nil
}
