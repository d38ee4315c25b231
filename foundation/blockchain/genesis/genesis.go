// Package genesis maintains access to the genesis settings.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/ardanlabs/ledger/foundation/validate"
)

// PrevDigest is the sentinel stored as the previous digest of the genesis
// block. It is not a real digest.
const PrevDigest = "0"

// Genesis represents the genesis settings.
type Genesis struct {
	Payload    string `json:"payload" validate:"required"`                             // Data stored in the genesis block.
	Difficulty uint   `json:"difficulty" validate:"lte=64"`                            // Number of leading 0's needed to solve the work problem.
	Strategy   string `json:"strategy" validate:"required,oneof=fnv sha256 keccak256"` // Name of the digest function blocks are mined with.
}

// Default returns the fixed genesis settings.
func Default() Genesis {
	return Genesis{
		Payload:    "Genesis Block",
		Difficulty: 4,
		Strategy:   digest.StrategyFNV,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the genesis settings can be used to mine blocks.
func (g Genesis) Validate() error {
	if err := validate.Check(g); err != nil {
		return fmt.Errorf("validating genesis: %w", err)
	}

	return nil
}
