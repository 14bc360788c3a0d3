package txgen_test

import (
	"maps"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/txgen"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestRandomTx(t *testing.T) {
	t.Log("Given the need to generate balanced transfers.")
	{
		gen := txgen.New(0, "Alice", "Bob")

		for i := range 1000 {
			tx := gen.RandomTx(5)

			if !tx.Balanced() {
				t.Fatalf("\t%s\tTest %d:\tShould be balanced: %s", failed, i, tx)
			}

			amount := tx["Alice"]
			if amount < 0 {
				amount = -amount
			}
			if amount < 1 || amount > 5 {
				t.Fatalf("\t%s\tTest %d:\tShould be within [1, 5]: %s", failed, i, tx)
			}
		}
		t.Logf("\t%s\tShould be balanced.", success)
		t.Logf("\t%s\tShould be within [1, 5].", success)
	}
}

func TestSeeded(t *testing.T) {
	t.Log("Given the need for reproducible buffers.")
	{
		b1 := txgen.New(7, "Alice", "Bob").Buffer(20, 3)
		b2 := txgen.New(7, "Alice", "Bob").Buffer(20, 3)

		for i := range b1 {
			if !maps.Equal(b1[i], b2[i]) {
				t.Fatalf("\t%s\tShould produce the same buffer for the same seed: %s %s", failed, b1[i], b2[i])
			}
		}
		t.Logf("\t%s\tShould produce the same buffer for the same seed.", success)

		if n := len(txgen.New(1, "a", "b").Buffer(0, 3)); n != txgen.DefaultBufferSize {
			t.Fatalf("\t%s\tShould default the buffer size, got %d.", failed, n)
		}
		t.Logf("\t%s\tShould default the buffer size.", success)

		if n := len(txgen.New(1, "a", "b").Buffer(5, 3)); n != 5 {
			t.Fatalf("\t%s\tShould produce 5 transactions, got %d.", failed, n)
		}
		t.Logf("\t%s\tShould produce the requested number of transactions.", success)
	}
}
