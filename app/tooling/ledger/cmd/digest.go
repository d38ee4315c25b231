package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/spf13/cobra"
)

var (
	index      uint64
	timestamp  string
	payload    string
	prevDigest string
	nonce      uint64
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Compute the digest for a set of block fields.",
	RunE:  digestRun,
}

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.Flags().Uint64Var(&index, "index", 0, "Block index.")
	digestCmd.Flags().StringVar(&timestamp, "timestamp", "", "Block timestamp as printed by the ledger.")
	digestCmd.Flags().StringVar(&payload, "payload", "", "Block payload.")
	digestCmd.Flags().StringVar(&prevDigest, "prev", "0", "Digest of the previous block.")
	digestCmd.Flags().Uint64Var(&nonce, "nonce", 0, "Nonce that solved the block.")
}

func digestRun(cmd *cobra.Command, args []string) error {
	fn, err := digest.Retrieve(strategy)
	if err != nil {
		return err
	}

	hash := database.Hash(fn, index, timestamp, payload, prevDigest, nonce)
	fmt.Fprintln(cmd.OutOrStdout(), hash)

	return nil
}
