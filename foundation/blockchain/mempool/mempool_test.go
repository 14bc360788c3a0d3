package mempool_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestDrainOrder(t *testing.T) {
	type table struct {
		name     string
		strategy string
		order    []int64
	}

	tt := []table{
		{name: "lifo", strategy: mempool.StrategyLIFO, order: []int64{3, 2, 1}},
		{name: "fifo", strategy: "fifo", order: []int64{1, 2, 3}},
	}

	t.Log("Given the need to drain the mempool in a consistent order.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling the %s strategy.", testID, tst.name)
			{
				f := func(t *testing.T) {
					mp, err := mempool.NewWithStrategy(tst.strategy)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to construct the mempool: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to construct the mempool.", success, testID)

					for i := int64(1); i <= 3; i++ {
						mp.Push(database.Tx{"Alice": -i, "Bob": i})
					}

					for _, exp := range tst.order {
						tx, ok := mp.Pop()
						if !ok || tx["Bob"] != exp {
							t.Fatalf("\t%s\tTest %d:\tShould pop %d, got %v.", failed, testID, exp, tx)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould pop in %s order.", success, testID, tst.name)

					if _, ok := mp.Pop(); ok || mp.Count() != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould be empty.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be empty.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestUnknownStrategy(t *testing.T) {
	t.Log("Given the need to reject unknown strategies.")
	{
		if _, err := mempool.NewWithStrategy("random"); err == nil {
			t.Fatalf("\t%s\tShould reject the strategy.", failed)
		}
		t.Logf("\t%s\tShould reject the strategy.", success)
	}
}

func TestCopyAndTruncate(t *testing.T) {
	t.Log("Given the need to inspect and clear the mempool.")
	{
		mp := mempool.FromTransactions([]database.Tx{{"a": 1, "b": -1}, {"a": -1, "b": 1}})
		cp := mp.Copy()
		if len(cp) != 2 || cp[0]["a"] != 1 {
			t.Fatalf("\t%s\tShould copy in insertion order: %v", failed, cp)
		}
		t.Logf("\t%s\tShould copy in insertion order.", success)

		mp.Truncate()
		if mp.Count() != 0 || len(cp) != 2 {
			t.Fatalf("\t%s\tShould truncate without touching the copy.", failed)
		}
		t.Logf("\t%s\tShould truncate without touching the copy.", success)
	}
}
