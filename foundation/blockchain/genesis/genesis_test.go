package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestDefault(t *testing.T) {
	t.Log("Given the need for fresh default genesis values.")
	{
		g1 := genesis.Default()
		g1.Balances["Alice"] = 0

		g2 := genesis.Default()
		if g2.Balances["Alice"] != 50 || g2.Balances["Bob"] != 50 {
			t.Fatalf("\t%s\tShould not share balances between calls: %v", failed, g2.Balances)
		}
		t.Logf("\t%s\tShould not share balances between calls.", success)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Log("Given the need to load a genesis file.")
	{
		path := filepath.Join(dir, "genesis.json")
		content := `{"date":"2026-10-14T00:00:00Z","balances":{"Alice":10,"Carol":-3}}`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("\t%s\tShould be able to write the file: %v", failed, err)
		}

		gen, err := genesis.Load(path)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the file: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the file.", success)

		if gen.TransPerBlock != genesis.DefaultTransPerBlock {
			t.Fatalf("\t%s\tShould default the block size, got %d.", failed, gen.TransPerBlock)
		}
		t.Logf("\t%s\tShould default the block size.", success)

		balances, err := gen.AccountBalances()
		if err != nil || balances["Alice"] != 10 || balances["Carol"] != -3 {
			t.Fatalf("\t%s\tShould get the balances: %v %v", failed, balances, err)
		}
		t.Logf("\t%s\tShould get the balances.", success)
	}

	t.Log("Given the need to reject a bad genesis file.")
	{
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte(`{"balances":{" ":10}}`), 0600); err != nil {
			t.Fatalf("\t%s\tShould be able to write the file: %v", failed, err)
		}

		if _, err := genesis.Load(path); err == nil {
			t.Fatalf("\t%s\tShould reject a blank account name.", failed)
		}
		t.Logf("\t%s\tShould reject a blank account name.", success)

		if _, err := genesis.Load(filepath.Join(dir, "missing.json")); err == nil {
			t.Fatalf("\t%s\tShould fail on a missing file.", failed)
		}
		t.Logf("\t%s\tShould fail on a missing file.", success)
	}
}
