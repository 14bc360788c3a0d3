package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/app/services/ledger/handlers"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/storage"
	"github.com/ardanlabs/ledger/foundation/blockchain/txgen"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
		}
		State struct {
			GenesisPath   string `conf:"help:genesis file to load instead of the default balances"`
			ImportPath    string `conf:"help:exported chain replayed at startup"`
			ExportPath    string `conf:"default:zblock/chain.json"`
			DrainStrategy string `conf:"default:LIFO"`
		}
		Demo struct {
			Seed     uint64 `conf:"default:0"`
			Txs      int    `conf:"default:0"`
			MaxValue int64  `conf:"default:3"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Ledger Support

	gen := genesis.Default()
	if cfg.State.GenesisPath != "" {
		if gen, err = genesis.Load(cfg.State.GenesisPath); err != nil {
			return fmt.Errorf("loading genesis: %w", err)
		}
	}

	// The ledger packages accept a function of this signature to allow the
	// application to log. These raw messages are also sent to any websocket
	// client that is connected into the system through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Send(s)
	}

	st, err := state.New(state.Config{
		Genesis:       gen,
		DrainStrategy: cfg.State.DrainStrategy,
		EvHandler:     ev,
	})
	if err != nil {
		return fmt.Errorf("constructing ledger: %w", err)
	}

	if cfg.State.ImportPath != "" {
		if err := importChain(log, st, cfg.State.ImportPath); err != nil {
			return err
		}
	}

	if cfg.Demo.Txs > 0 {
		accounts := st.Accounts("")
		if len(accounts) >= 2 {
			g := txgen.New(cfg.Demo.Seed, accounts[0].AccountID, accounts[1].AccountID)
			for _, tx := range g.Buffer(cfg.Demo.Txs, cfg.Demo.MaxValue) {
				if _, err := st.SubmitTx(tx); err != nil {
					return fmt.Errorf("submitting demo transaction: %w", err)
				}
			}
			log.Infow("startup", "status", "demo transactions submitted", "count", cfg.Demo.Txs)
		}
	}

	exportFile, err := storage.NewFile(cfg.State.ExportPath)
	if err != nil {
		return fmt.Errorf("opening export file: %w", err)
	}

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	debugMux := handlers.DebugMux(build, log)

	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing V1 public API support")

	publicMux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		State:    st,
		Evts:     evts,
	})

	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      publicMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		log.Infow("shutdown", "status", "shutdown public API started")
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop public service gracefully: %w", err)
		}

		// Keep the chain so it can be replayed on the next start.
		exported, err := st.Export()
		if err != nil {
			return fmt.Errorf("exporting chain: %w", err)
		}
		if err := exportFile.Save(exported); err != nil {
			return fmt.Errorf("saving chain: %w", err)
		}
		log.Infow("shutdown", "status", "chain exported", "path", exportFile.Path(), "blocks", len(st.Blocks()))
	}

	return nil
}

// importChain replays an exported chain into the ledger. A missing file is
// not an error, the ledger simply starts from genesis.
func importChain(log *zap.SugaredLogger, st *state.State, path string) error {
	f, err := storage.NewFile(path)
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}

	exported, err := f.Load()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Infow("startup", "status", "no chain to import", "path", path)
			return nil
		}
		return fmt.Errorf("reading import file: %w", err)
	}

	if err := st.ImportAndReplace(exported); err != nil {
		if database.IsValidityError(err) {
			log.Errorw("startup", "status", "imported chain rejected, starting from genesis", "path", path, "ERROR", err)
			return nil
		}
		return fmt.Errorf("importing chain: %w", err)
	}

	log.Infow("startup", "status", "chain imported", "path", path, "tip", st.LatestBlock().Hash)

	return nil
}
