package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/spf13/cobra"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the digest strategies and their widths.",
	RunE:  strategiesRun,
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}

func strategiesRun(cmd *cobra.Command, args []string) error {
	for _, name := range digest.Strategies() {
		fn, err := digest.Retrieve(name)
		if err != nil {
			return err
		}

		note := "cryptographic"
		if name == digest.StrategyFNV {
			note = "illustrative, not secure"
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %2d hex  %s\n", name, digest.Width(fn), note)
	}

	return nil
}
