// Package chain provides the business flow of mining a set of payloads into
// a new ledger and reporting the result on a console.
package chain

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/console"
	"github.com/ardanlabs/ledger/foundation/validate"
)

// DefaultPayloads are the payloads mined when none are provided.
var DefaultPayloads = []string{
	"Transaction: Alice -> Bob: 50 coins",
	"Transaction: Bob -> Charlie: 30 coins",
}

// Config represents the set of values needed to run the flow.
type Config struct {
	Genesis     genesis.Genesis
	Payloads    []string `json:"payloads" validate:"required,min=1"`
	MaxAttempts uint64
	Table       bool
	Out         io.Writer
	EvHandler   database.EventHandler
}

// Run constructs a ledger, mines a block for each payload in order, and
// writes the validity verdict and the chain to the output. Viewer events
// raised while mining are written to the output as well. Console output is
// discarded when no output is provided. The ledger is returned so the caller
// can inspect it.
func Run(ctx context.Context, cfg Config) (*database.Ledger, error) {
	if err := validate.Check(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	out := cfg.Out
	if out == nil {
		out = io.Discard
	}

	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		if strings.HasPrefix(s, database.ViewerPrefix) {
			fmt.Fprintln(out, strings.TrimPrefix(s, database.ViewerPrefix))
		}
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	ldg, err := database.New(ctx, database.Config{
		Genesis:     cfg.Genesis,
		MaxAttempts: cfg.MaxAttempts,
		EvHandler:   ev,
	})
	if err != nil {
		return nil, err
	}

	for i, payload := range cfg.Payloads {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Mining block %d...\n", ldg.Len())

		if _, err := ldg.Append(ctx, payload); err != nil {
			return nil, err
		}
	}

	if cfg.Table {
		fmt.Fprintf(out, "\nBlockchain validity: %s\n\n", console.Verdict(ldg.IsValid()))
		if err := console.RenderChain(out, ldg.Blocks()); err != nil {
			return nil, err
		}
		return ldg, nil
	}

	verdict := "INVALID"
	if ldg.IsValid() {
		verdict = "VALID"
	}

	fmt.Fprintf(out, "\nBlockchain validity: %s\n", verdict)
	fmt.Fprintf(out, "\nBlockchain:\n")

	if err := ldg.Print(out); err != nil {
		return nil, err
	}

	return ldg, nil
}
