package cmd

import (
	"fmt"
	"reflect"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/txgen"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build a chain from generated transactions and check it survives an export.",
	RunE:  demoRun,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	addGeneratorFlags(demoCmd)
}

func demoRun(cmd *cobra.Command, args []string) error {
	result, err := runDemo(demoConfig{
		Seed:       seed,
		MaxValue:   maxValue,
		BufferSize: bufferSize,
		BlockSize:  blockSize,
		EvHandler:  evHandler(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Accepted: %d  Rejected: %d\n", result.Accepted, result.Rejected)
	fmt.Fprintf(out, "Extended: %d\n", result.Extended)
	fmt.Fprintf(out, "Blocks: %d  Tip: %s\n", len(result.State.Blocks()), result.State.LatestBlock().Hash)
	fmt.Fprintf(out, "Round trip: %t\n", result.RoundTrip)

	return nil
}

// =============================================================================

type demoConfig struct {
	Seed       uint64
	MaxValue   int64
	BufferSize int
	BlockSize  int
	EvHandler  state.EventHandler
}

type demoResult struct {
	State     *state.State
	Accepted  int
	Rejected  int
	Extended  int
	Exported  string
	RoundTrip bool
}

// runDemo processes a generated buffer into blocks, extends the chain with
// one more generated block and checks the exported chain imports back to the
// same blocks.
func runDemo(cfg demoConfig) (demoResult, error) {
	st, err := state.New(state.Config{EvHandler: cfg.EvHandler})
	if err != nil {
		return demoResult{}, err
	}

	gen := txgen.New(cfg.Seed, "Alice", "Bob")

	buf := mempool.FromTransactions(gen.Buffer(cfg.BufferSize, cfg.MaxValue))
	accepted, rejected := st.ProcessBuffer(buf, cfg.BlockSize)

	incoming, err := database.NewBlock(st.LatestBlock(), gen.Buffer(5, cfg.MaxValue))
	if err != nil {
		return demoResult{}, err
	}

	extended, err := st.ExtendChain([]database.Block{incoming})
	if err != nil && cfg.EvHandler != nil {
		cfg.EvHandler("admin: demo: extension skipped: %s", err)
	}

	exported, err := st.Export()
	if err != nil {
		return demoResult{}, err
	}

	chainCopy, err := state.Import(exported)
	if err != nil {
		return demoResult{}, err
	}

	result := demoResult{
		State:     st,
		Accepted:  accepted,
		Rejected:  rejected,
		Extended:  extended,
		Exported:  exported,
		RoundTrip: reflect.DeepEqual(chainCopy, st.Blocks()),
	}

	return result, nil
}
