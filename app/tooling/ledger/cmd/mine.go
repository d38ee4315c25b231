package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/business/core/chain"
	"github.com/spf13/cobra"
)

var table bool

var mineCmd = &cobra.Command{
	Use:   "mine payload [payload...]",
	Short: "Mine a block for each payload in order and print the ledger.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().BoolVar(&table, "table", false, "Render the ledger as a table.")
}

func mineRun(cmd *cobra.Command, args []string) error {
	gen, err := loadGenesis()
	if err != nil {
		return err
	}

	ctx, cancel := miningContext()
	defer cancel()

	ldg, err := chain.Run(ctx, chain.Config{
		Genesis:     gen,
		Payloads:    args,
		MaxAttempts: maxAttempts,
		Table:       table,
		Out:         cmd.OutOrStdout(),
		EvHandler:   evHandler(),
	})
	if err != nil {
		return fmt.Errorf("mining: %w", err)
	}

	log.Infow("mine", "status", "complete", "blocks", ldg.Len(), "latest", ldg.LatestBlock().Digest())

	return nil
}
