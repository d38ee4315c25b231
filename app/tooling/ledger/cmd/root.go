// Package cmd contains the ledger admin commands.
package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	log         *zap.SugaredLogger
	genesisPath string
	difficulty  uint
	strategy    string
	maxAttempts uint64
	timeout     time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&genesisPath, "genesis", "g", "", "Path to a genesis json file. Overrides the difficulty and strategy flags.")
	rootCmd.PersistentFlags().UintVarP(&difficulty, "difficulty", "d", 4, "Number of leading zeros a digest needs.")
	rootCmd.PersistentFlags().StringVarP(&strategy, "strategy", "s", digest.StrategyFNV, "Digest strategy to mine with.")
	rootCmd.PersistentFlags().Uint64VarP(&maxAttempts, "max-attempts", "m", 0, "Maximum nonces to try per block, 0 is unbounded.")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 0, "Maximum time to spend mining, 0 is unbounded.")
}

var rootCmd = &cobra.Command{
	Use:           "ledger",
	Short:         "Mine, validate and inspect a proof of work ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command specified on the command line.
func Execute(build string, logger *zap.SugaredLogger) error {
	log = logger
	rootCmd.Version = build

	return rootCmd.Execute()
}

// =============================================================================

// loadGenesis returns the genesis settings from the file if one is provided
// or from the flags.
func loadGenesis() (genesis.Genesis, error) {
	if genesisPath != "" {
		return genesis.Load(genesisPath)
	}

	gen := genesis.Default()
	gen.Difficulty = difficulty
	gen.Strategy = strategy

	return gen, gen.Validate()
}

// miningContext returns a context that is cancelled on interrupt or once the
// configured timeout expires.
func miningContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// evHandler returns an event handler that logs each event with a trace id
// for this run.
func evHandler() func(v string, args ...any) {
	traceID := uuid.NewString()

	return func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", traceID)
	}
}
