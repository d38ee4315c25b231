// Package console renders ledger values for display in a terminal.
package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
)

// RenderChain writes the blocks as a boxed table, one row per block.
func RenderChain(w io.Writer, blocks []database.Block) error {
	data := pterm.TableData{
		{"Block", "Data", "Nonce", "Hash", "Previous Hash"},
	}

	for _, block := range blocks {
		data = append(data, []string{
			strconv.FormatUint(block.Index(), 10),
			block.Payload(),
			strconv.FormatUint(block.Nonce(), 10),
			block.Digest(),
			block.PrevDigest(),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	if _, err := fmt.Fprintln(w, table); err != nil {
		return err
	}

	return nil
}

// Verdict returns the colored validity verdict.
func Verdict(valid bool) string {
	if valid {
		return pterm.LightGreen("VALID")
	}
	return pterm.LightRed("INVALID")
}
