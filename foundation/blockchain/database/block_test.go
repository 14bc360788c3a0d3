package database_test

import (
	"errors"
	"maps"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/canonical"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

func noopEv(v string, args ...any) {}

func genesisBlock(t *testing.T, balances map[database.AccountID]int64) database.Block {
	genesis, err := database.NewGenesisBlock(balances)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a genesis block: %v", failed, err)
	}
	return genesis
}

func Test_NewBlock(t *testing.T) {
	balances := map[database.AccountID]int64{"Alice": 50, "Bob": 50}

	t.Log("Given the need to construct blocks.")
	{
		genesis := genesisBlock(t, balances)

		if !genesis.IsGenesis() || genesis.Contents.TransCount != 1 {
			t.Fatalf("\t%s\tShould construct a genesis block: %+v", failed, genesis.Contents)
		}
		t.Logf("\t%s\tShould construct a genesis block.", success)

		if err := genesis.ValidateHash(); err != nil {
			t.Fatalf("\t%s\tShould stamp the genesis block with its hash: %v", failed, err)
		}
		t.Logf("\t%s\tShould stamp the genesis block with its hash.", success)

		balances["Alice"] = 0
		if genesis.Contents.Trans[0]["Alice"] != 50 {
			t.Fatalf("\t%s\tShould keep a private copy of the initial balances.", failed)
		}
		t.Logf("\t%s\tShould keep a private copy of the initial balances.", success)

		trans := []database.Tx{{"Bob": 1, "Alice": -1}, {"Bob": -2, "Alice": 2}}
		block, err := database.NewBlock(genesis, trans)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct a block.", success)

		if block.Contents.Number != 1 || *block.Contents.ParentHash != genesis.Hash || block.Contents.TransCount != 2 {
			t.Fatalf("\t%s\tShould link the block to its parent: %+v", failed, block.Contents)
		}
		t.Logf("\t%s\tShould link the block to its parent.", success)

		empty, err := database.NewBlock(block, nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct an empty block: %v", failed, err)
		}
		if empty.Contents.Trans == nil || empty.Contents.TransCount != 0 {
			t.Fatalf("\t%s\tShould normalise an empty block: %+v", failed, empty.Contents)
		}
		t.Logf("\t%s\tShould normalise an empty block.", success)

		if empty.Hash == block.Hash || block.Hash == genesis.Hash {
			t.Fatalf("\t%s\tShould produce distinct hashes for distinct blocks.", failed)
		}
		t.Logf("\t%s\tShould produce distinct hashes for distinct blocks.", success)
	}
}

func Test_ValidateBlock(t *testing.T) {
	type table struct {
		name   string
		tamper func(t *testing.T, b database.Block) database.Block
		trans  []database.Tx
		err    error
		final  map[database.AccountID]int64
	}

	initial := map[database.AccountID]int64{"Alice": 50, "Bob": 50}

	tt := []table{
		{
			name:  "valid",
			trans: []database.Tx{{"Bob": 1, "Alice": -1}},
			final: map[database.AccountID]int64{"Alice": 49, "Bob": 51},
		},
		{
			name:  "hash",
			trans: []database.Tx{{"Bob": 1, "Alice": -1}},
			tamper: func(t *testing.T, b database.Block) database.Block {
				b.Hash = "dafasdf"
				return b
			},
			err:   database.ErrHashMismatch,
			final: initial,
		},
		{
			name:  "number",
			trans: []database.Tx{{"Bob": 1, "Alice": -1}},
			tamper: func(t *testing.T, b database.Block) database.Block {
				b.Contents.Number = 1234
				return rehash(t, b)
			},
			err:   database.ErrNumberMismatch,
			final: initial,
		},
		{
			name:  "parent hash",
			trans: []database.Tx{{"Bob": 1, "Alice": -1}},
			tamper: func(t *testing.T, b database.Block) database.Block {
				parent := "hash"
				b.Contents.ParentHash = &parent
				return rehash(t, b)
			},
			err:   database.ErrParentHashMismatch,
			final: initial,
		},
		{
			name:  "invalid transaction",
			trans: []database.Tx{{"Bob": 11, "Alice": -1}},
			err:   database.ErrInvalidTransaction,
			final: initial,
		},
		{
			name:  "later transaction sees earlier ones",
			trans: []database.Tx{{"Bob": -60, "Alice": 60}, {"Bob": 1, "Alice": -1}},
			err:   database.ErrInvalidTransaction,
			final: map[database.AccountID]int64{"Alice": 110, "Bob": -10},
		},
	}

	t.Log("Given the need to validate a block against its parent.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a block with a %s check.", testID, tst.name)
			{
				f := func(t *testing.T) {
					genesis := genesisBlock(t, initial)
					db := database.New(initial)

					block, err := database.NewBlock(genesis, tst.trans)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to construct a block: %v", failed, testID, err)
					}
					if tst.tamper != nil {
						block = tst.tamper(t, block)
					}

					err = block.ValidateBlock(genesis, db, noopEv)
					switch {
					case tst.err == nil && err != nil:
						t.Fatalf("\t%s\tTest %d:\tShould accept the block: %v", failed, testID, err)
					case tst.err != nil && !errors.Is(err, tst.err):
						t.Fatalf("\t%s\tTest %d:\tShould reject the block with %v: %v", failed, testID, tst.err, err)
					case tst.err != nil && !database.IsValidityError(err):
						t.Fatalf("\t%s\tTest %d:\tShould get a validity error: %T", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected validation result.", success, testID)

					if got := db.Balances(); !maps.Equal(got, tst.final) {
						t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %v", failed, testID, tst.final)
						t.Fatalf("\t%s\tTest %d:\tShould leave the expected balances.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould leave the expected balances.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

// rehash stamps tampered contents with a matching hash so a check other than
// the hash check is exercised.
func rehash(t *testing.T, b database.Block) database.Block {
	hash, err := canonical.Hash(b.Contents)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to hash the contents: %v", failed, err)
	}

	b.Hash = hash
	return b
}
