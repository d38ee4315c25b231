// Package database maintains the ordered, append-only sequence of mined
// blocks and validates the linkage between them.
package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

// Set of errors returned by the ledger.
var (
	ErrDigestMismatch = errors.New("stored digest does not match committed fields")
	ErrBrokenLink     = errors.New("previous digest does not match previous block")
	ErrNotFound       = errors.New("block does not exist")
)

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis     genesis.Genesis
	MaxAttempts uint64
	EvHandler   EventHandler
}

// Ledger manages the sequence of mined blocks. There is no way to update
// or remove a block once it has been appended. A Ledger must be constructed
// with New so it starts with a genesis block.
type Ledger struct {
	appendMu sync.Mutex
	mu       sync.RWMutex

	difficulty  uint
	digestFn    digest.Func
	maxAttempts uint64
	evHandler   EventHandler

	blocks []Block
}

// New constructs a ledger and mines the genesis block.
func New(ctx context.Context, cfg Config) (*Ledger, error) {
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	fn, err := digest.Retrieve(cfg.Genesis.Strategy)
	if err != nil {
		return nil, err
	}

	ldg := Ledger{
		difficulty:  cfg.Genesis.Difficulty,
		digestFn:    fn,
		maxAttempts: cfg.MaxAttempts,
		evHandler:   ev,
	}

	ev("database: New: mining genesis: strategy[%s]: difficulty[%d]", cfg.Genesis.Strategy, cfg.Genesis.Difficulty)

	block, err := POW(ctx, POWArgs{
		Index:       0,
		Payload:     cfg.Genesis.Payload,
		PrevDigest:  genesis.PrevDigest,
		Difficulty:  ldg.difficulty,
		MaxAttempts: ldg.maxAttempts,
		DigestFn:    ldg.digestFn,
		EvHandler:   ev,
	})
	if err != nil {
		return nil, fmt.Errorf("mining genesis: %w", err)
	}

	ldg.blocks = []Block{block}

	return &ldg, nil
}

// Append mines a new block for the payload that references the digest of
// the latest block and adds it to the end of the ledger. The caller is
// blocked until the block is mined.
func (ldg *Ledger) Append(ctx context.Context, payload string) (Block, error) {
	ldg.appendMu.Lock()
	defer ldg.appendMu.Unlock()

	ldg.mu.RLock()
	if len(ldg.blocks) == 0 {
		ldg.mu.RUnlock()
		return Block{}, fmt.Errorf("genesis: %w", ErrNotFound)
	}
	index := uint64(len(ldg.blocks))
	prevDigest := ldg.blocks[len(ldg.blocks)-1].digest
	ldg.mu.RUnlock()

	block, err := POW(ctx, POWArgs{
		Index:       index,
		Payload:     payload,
		PrevDigest:  prevDigest,
		Difficulty:  ldg.difficulty,
		MaxAttempts: ldg.maxAttempts,
		DigestFn:    ldg.digestFn,
		EvHandler:   ldg.evHandler,
	})
	if err != nil {
		return Block{}, fmt.Errorf("mining block: %w", err)
	}

	ldg.mu.Lock()
	defer ldg.mu.Unlock()

	ldg.blocks = append(ldg.blocks, block)

	return block, nil
}

// Validate walks the ledger from the first block after genesis and checks
// each block's digest and its link to the block before it. The genesis
// block is not re-verified.
func (ldg *Ledger) Validate() error {
	ldg.mu.RLock()
	defer ldg.mu.RUnlock()

	for i := 1; i < len(ldg.blocks); i++ {
		if err := ldg.blocks[i].ValidateBlock(ldg.blocks[i-1], ldg.evHandler); err != nil {
			return err
		}
	}

	return nil
}

// IsValid reports whether every block in the ledger passes validation.
func (ldg *Ledger) IsValid() bool {
	return ldg.Validate() == nil
}

// Print writes each block in order in a human readable form.
func (ldg *Ledger) Print(w io.Writer) error {
	for _, block := range ldg.Blocks() {
		if _, err := fmt.Fprintf(w, "\nBlock #%d\nData: %s\nHash: %s\nPrevious Hash: %s\n-----------------\n", block.index, block.payload, block.digest, block.prevDigest); err != nil {
			return err
		}
	}

	return nil
}

// Blocks returns a copy of the blocks in the ledger.
func (ldg *Ledger) Blocks() []Block {
	ldg.mu.RLock()
	defer ldg.mu.RUnlock()

	blocks := make([]Block, len(ldg.blocks))
	copy(blocks, ldg.blocks)

	return blocks
}

// LatestBlock returns the latest block. A zero value Block is returned if
// the ledger was not constructed with New.
func (ldg *Ledger) LatestBlock() Block {
	ldg.mu.RLock()
	defer ldg.mu.RUnlock()

	if len(ldg.blocks) == 0 {
		return Block{}
	}

	return ldg.blocks[len(ldg.blocks)-1]
}

// GetBlock returns the block at the specified index.
func (ldg *Ledger) GetBlock(index uint64) (Block, error) {
	ldg.mu.RLock()
	defer ldg.mu.RUnlock()

	if index >= uint64(len(ldg.blocks)) {
		return Block{}, fmt.Errorf("index[%d]: %w", index, ErrNotFound)
	}

	return ldg.blocks[index], nil
}

// Len returns the number of blocks in the ledger including genesis.
func (ldg *Ledger) Len() int {
	ldg.mu.RLock()
	defer ldg.mu.RUnlock()

	return len(ldg.blocks)
}
