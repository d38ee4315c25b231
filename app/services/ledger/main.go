// This program mines a small ledger, validates it, and prints it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/business/core/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger. Logs go to stderr so stdout only
	// carries the console output.
	log, err := logger.New("LEDGER", "stderr")
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
		Genesis struct {
			File       string `conf:"help:path to a genesis json file that overrides these settings"`
			Payload    string `conf:"default:Genesis Block"`
			Difficulty uint   `conf:"default:4"`
			Strategy   string `conf:"default:fnv"`
		}
		Mining struct {
			MaxAttempts uint64        `conf:"default:0"`
			Timeout     time.Duration `conf:"default:0s"`
		}
		Payloads []string `conf:"help:payloads to mine in order"`
		Table    bool     `conf:"default:false"`
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "Mines payloads into a proof of work ledger, validates it and prints it.",
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
	// Genesis Support

	gen := genesis.Genesis{
		Payload:    cfg.Genesis.Payload,
		Difficulty: cfg.Genesis.Difficulty,
		Strategy:   cfg.Genesis.Strategy,
	}

	if cfg.Genesis.File != "" {
		gen, err = genesis.Load(cfg.Genesis.File)
		if err != nil {
			return fmt.Errorf("loading genesis: %w", err)
		}
	}

	payloads := cfg.Payloads
	if len(payloads) == 0 {
		payloads = chain.DefaultPayloads
	}

	// =========================================================================
	// Mining Support

	// The blockchain packages accept a function of this signature to allow the
	// application to log. Every run gets its own trace id.
	traceID := uuid.NewString()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", traceID)
	}

	// Mining is cancelled if the process is asked to stop.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Mining.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Mining.Timeout)
		defer cancel()
	}

	ldg, err := chain.Run(ctx, chain.Config{
		Genesis:     gen,
		Payloads:    payloads,
		MaxAttempts: cfg.Mining.MaxAttempts,
		Table:       cfg.Table,
		Out:         os.Stdout,
		EvHandler:   ev,
	})
	if err != nil {
		return fmt.Errorf("mining ledger: %w", err)
	}

	log.Infow("shutdown", "status", "ledger complete", "blocks", ldg.Len(), "valid", ldg.IsValid(), "traceid", traceID)

	return nil
}
