package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_RunDemo(t *testing.T) {
	t.Log("Given the need to build a chain from generated transactions.")
	{
		cfg := demoConfig{Seed: 0, MaxValue: 3, BufferSize: 30, BlockSize: 5}

		result, err := runDemo(cfg)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to run the demo: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to run the demo.", success)

		if got := result.Accepted + result.Rejected; got != 30 {
			t.Fatalf("\t%s\tShould examine every transaction: got %d exp 30", failed, got)
		}
		t.Logf("\t%s\tShould examine every transaction.", success)

		if !result.RoundTrip {
			t.Fatalf("\t%s\tShould import the export back to the same blocks.", failed)
		}
		t.Logf("\t%s\tShould import the export back to the same blocks.", success)

		var total int64
		for _, bal := range result.State.Balances() {
			total += bal
		}
		if total != 100 {
			t.Fatalf("\t%s\tShould conserve the genesis total: got %d", failed, total)
		}
		t.Logf("\t%s\tShould conserve the genesis total.", success)

		again, err := runDemo(cfg)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to run the demo twice: %v", failed, err)
		}
		if again.Exported != result.Exported {
			t.Fatalf("\t%s\tShould produce the same chain for the same seed.", failed)
		}
		t.Logf("\t%s\tShould produce the same chain for the same seed.", success)

		replay, err := state.New(state.Config{})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a ledger: %v", failed, err)
		}
		if err := replay.ImportAndReplace(result.Exported); err != nil {
			t.Fatalf("\t%s\tShould validate the exported chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould validate the exported chain.", success)
	}
}

func Test_ExportVerify(t *testing.T) {
	t.Log("Given the need to save and verify a chain on disk.")
	{
		path := filepath.Join(t.TempDir(), "chain.json")

		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"export", "--file", path})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("\t%s\tShould be able to export: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to export.", success)

		out.Reset()
		rootCmd.SetArgs([]string{"verify", "--file", path})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("\t%s\tShould be able to verify: %v", failed, err)
		}
		if !strings.HasPrefix(out.String(), "Valid chain of") {
			t.Fatalf("\t%s\tShould report a valid chain: %q", failed, out.String())
		}
		t.Logf("\t%s\tShould report a valid chain.", success)

		out.Reset()
		rootCmd.SetArgs([]string{"balances", "--file", path, "Alice"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("\t%s\tShould be able to print balances: %v", failed, err)
		}
		if !strings.Contains(out.String(), "Account: Alice") {
			t.Fatalf("\t%s\tShould print the Alice balance: %q", failed, out.String())
		}
		t.Logf("\t%s\tShould print the Alice balance.", success)

		rootCmd.SetArgs([]string{"verify", "--file", filepath.Join(t.TempDir(), "missing.json")})
		if err := rootCmd.Execute(); err == nil {
			t.Fatalf("\t%s\tShould fail to verify a missing file.", failed)
		}
		t.Logf("\t%s\tShould fail to verify a missing file.", success)
	}
}
