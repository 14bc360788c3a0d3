package storage_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/storage"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestSaveLoad(t *testing.T) {
	t.Log("Given the need to keep an exported chain on disk.")
	{
		f, err := storage.NewFile(filepath.Join(t.TempDir(), "zblock", "chain.json"))
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the file: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the file.", success)

		if _, err := f.Load(); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("\t%s\tShould report a missing export: %v", failed, err)
		}
		t.Logf("\t%s\tShould report a missing export.", success)

		st, err := state.New(state.Config{})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}

		exported, err := st.Export()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to export the ledger: %v", failed, err)
		}

		if err := f.Save(exported); err != nil {
			t.Fatalf("\t%s\tShould be able to save the export: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to save the export.", success)

		got, err := f.Load()
		if err != nil || got != exported {
			t.Fatalf("\t%s\tShould load back the same export: %v", failed, err)
		}
		t.Logf("\t%s\tShould load back the same export.", success)

		blocks, err := state.Import(got)
		if err != nil || len(blocks) != 1 {
			t.Fatalf("\t%s\tShould import the saved export: %v", failed, err)
		}
		t.Logf("\t%s\tShould import the saved export.", success)
	}
}
