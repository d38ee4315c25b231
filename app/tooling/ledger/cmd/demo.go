package cmd

import (
	"github.com/ardanlabs/ledger/business/core/chain"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Mine the two reference transactions and print the ledger.",
	RunE:  demoRun,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func demoRun(cmd *cobra.Command, args []string) error {
	gen, err := loadGenesis()
	if err != nil {
		return err
	}

	ctx, cancel := miningContext()
	defer cancel()

	_, err = chain.Run(ctx, chain.Config{
		Genesis:     gen,
		Payloads:    chain.DefaultPayloads,
		MaxAttempts: maxAttempts,
		Out:         cmd.OutOrStdout(),
		EvHandler:   evHandler(),
	})

	return err
}
