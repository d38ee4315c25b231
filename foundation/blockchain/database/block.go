package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
)

// Set of errors returned while mining a block.
var (
	ErrMaxAttempts = errors.New("mining attempts exhausted")
	ErrDifficulty  = errors.New("difficulty exceeds digest width")
)

// ViewerPrefix marks the events meant for a human watching the console.
// Applications are expected to strip the prefix and display the rest.
const ViewerPrefix = "viewer: "

// TimeLayout is the layout used for block timestamps.
const TimeLayout = time.ANSIC

// EventHandler defines a function that is called when events occur
// while mining or validating blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// POWArgs represents the set of arguments required to run POW.
type POWArgs struct {
	Index       uint64
	Payload     string
	PrevDigest  string
	Difficulty  uint
	MaxAttempts uint64 // Zero means the search is unbounded.
	DigestFn    digest.Func
	EvHandler   EventHandler
}

// Block represents a single record in the ledger. The fields are only
// mutated by POW while the nonce is being discovered. A Block value is
// never handed out before the puzzle is solved.
type Block struct {
	index      uint64
	timestamp  string
	payload    string
	prevDigest string
	digest     string
	nonce      uint64
	difficulty uint
	digestFn   digest.Func
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the POW puzzle.
func POW(ctx context.Context, args POWArgs) (Block, error) {
	fn := args.DigestFn
	if fn == nil {
		fn = digest.FNV
	}

	ev := args.EvHandler
	if ev == nil {
		ev = func(string, ...any) {}
	}

	if width := digest.Width(fn); int(args.Difficulty) > width {
		return Block{}, fmt.Errorf("%w: difficulty[%d] width[%d]", ErrDifficulty, args.Difficulty, width)
	}

	// Construct the block to be mined.
	nb := Block{
		index:      args.Index,
		timestamp:  time.Now().Format(TimeLayout),
		payload:    args.Payload,
		prevDigest: args.PrevDigest,
		nonce:      0, // Will be identified by the POW algorithm.
		difficulty: args.Difficulty,
		digestFn:   fn,
	}

	// Peform the proof of work mining operation.
	if err := nb.performPOW(ctx, args.MaxAttempts, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid digest for the block.
// Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, maxAttempts uint64, ev EventHandler) error {
	ev("database: PerformPOW: MINING: started: blk[%d]", b.index)
	defer ev("database: PerformPOW: MINING: completed: blk[%d]", b.index)

	var attempts uint64
	for {
		if ctx.Err() != nil {
			ev("database: PerformPOW: MINING: CANCELLED: blk[%d]: attempts[%d]", b.index, attempts)
			return ctx.Err()
		}

		if maxAttempts > 0 && attempts >= maxAttempts {
			ev("database: PerformPOW: MINING: EXHAUSTED: blk[%d]: attempts[%d]", b.index, attempts)
			return fmt.Errorf("blk[%d]: %w: attempts[%d]", b.index, ErrMaxAttempts, attempts)
		}

		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: PerformPOW: MINING: blk[%d]: attempts[%d]", b.index, attempts)
		}

		b.nonce++
		b.digest = b.RecomputeDigest()
		if !isHashSolved(b.difficulty, b.digest) {
			continue
		}

		ev("%sBlock mined! Hash: %s", ViewerPrefix, b.digest)
		ev("database: PerformPOW: MINING: SOLVED: blk[%d]: prev[%s]: digest[%s]: attempts[%d]", b.index, b.prevDigest, b.digest, attempts)

		return nil
	}
}

// RecomputeDigest calculates the digest from the committed fields of the
// block. It does not use or change the stored digest.
func (b Block) RecomputeDigest() string {
	fn := b.digestFn
	if fn == nil {
		fn = digest.FNV
	}

	return Hash(fn, b.index, b.timestamp, b.payload, b.prevDigest, b.nonce)
}

// IsSolved reports whether the stored digest satisfies the difficulty the
// block was mined at.
func (b Block) IsSolved() bool {
	return isHashSolved(b.difficulty, b.digest)
}

// ValidateBlock checks the block's stored digest against its committed
// fields and checks the block links to the specified previous block.
func (b Block) ValidateBlock(previousBlock Block, evHandler EventHandler) error {
	evHandler("database: ValidateBlock: validate: blk[%d]: check: digest matches committed fields", b.index)

	if hash := b.RecomputeDigest(); b.digest != hash {
		return fmt.Errorf("blk[%d]: %w: got %s, exp %s", b.index, ErrDigestMismatch, b.digest, hash)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: previous digest does match previous block", b.index)

	if b.prevDigest != previousBlock.digest {
		return fmt.Errorf("blk[%d]: %w: got %s, exp %s", b.index, ErrBrokenLink, b.prevDigest, previousBlock.digest)
	}

	return nil
}

// Index returns the position of the block in the ledger.
func (b Block) Index() uint64 {
	return b.index
}

// Timestamp returns the time the block was constructed.
func (b Block) Timestamp() string {
	return b.timestamp
}

// Payload returns the data stored in the block.
func (b Block) Payload() string {
	return b.payload
}

// PrevDigest returns the digest of the previous block.
func (b Block) PrevDigest() string {
	return b.prevDigest
}

// Digest returns the stored digest of the block.
func (b Block) Digest() string {
	return b.digest
}

// Nonce returns the value that solved the POW puzzle.
func (b Block) Nonce() uint64 {
	return b.nonce
}

// Difficulty returns the number of leading 0's the block was mined at.
func (b Block) Difficulty() uint {
	return b.difficulty
}

// =============================================================================

// Hash calculates the digest for the set of committed block fields. The
// fields are concatenated in order with no delimiters, so adjacent fields
// can trade characters and produce the same input. For example payload "ab"
// with previous digest "c" hashes the same bytes as payload "a" with
// previous digest "bc". Index 1 with payload "2x" and index 12 with payload
// "x" do not collide since the timestamp sits between those fields.
func Hash(fn digest.Func, index uint64, timestamp string, payload string, prevDigest string, nonce uint64) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(index, 10))
	sb.WriteString(timestamp)
	sb.WriteString(payload)
	sb.WriteString(prevDigest)
	sb.WriteString(strconv.FormatUint(nonce, 10))

	return fn([]byte(sb.String()))
}

// isHashSolved checks the digest to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	if int(difficulty) > len(hash) {
		return false
	}

	return hash[:difficulty] == strings.Repeat("0", int(difficulty))
}
