// Package digest provides the different digest functions a block can be
// mined and validated with.
//
// The default strategy is FNV-1a 64, a fast non-cryptographic hash. It is
// illustrative and NOT secure: it offers no collision or preimage
// resistance. The sha256 and keccak256 strategies exist for callers that
// want those properties.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/ethereum/go-ethereum/crypto"
)

// List of different digest strategies.
const (
	StrategyFNV       = "fnv"
	StrategySHA256    = "sha256"
	StrategyKeccak256 = "keccak256"
)

// Map of different digest strategies with functions.
var strategies = map[string]Func{
	StrategyFNV:       FNV,
	StrategySHA256:    SHA256,
	StrategyKeccak256: Keccak256,
}

// Func defines a function that takes the committed bytes of a block and
// returns a fixed width lowercase hex string. A Func MUST be pure and
// MUST always return the same width for a given strategy.
type Func func(data []byte) string

// Retrieve returns the specified digest strategy function.
func Retrieve(strategy string) (Func, error) {
	fn, exists := strategies[strategy]
	if !exists {
		return nil, fmt.Errorf("strategy %q does not exist", strategy)
	}
	return fn, nil
}

// Strategies returns the sorted list of registered strategy names.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Width returns the number of hex characters the function produces.
func Width(fn Func) int {
	return len(fn(nil))
}

// =============================================================================

// FNV returns the 64 bit FNV-1a hash of the data as 16 hex characters.
func FNV(data []byte) string {
	h := fnv.New64a()
	h.Write(data)

	return fmt.Sprintf("%016x", h.Sum64())
}

// SHA256 returns the sha256 hash of the data as 64 hex characters.
func SHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Keccak256 returns the keccak256 hash of the data as 64 hex characters.
func Keccak256(data []byte) string {
	return hex.EncodeToString(crypto.Keccak256(data))
}
