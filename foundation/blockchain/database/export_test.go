package database

// TamperBlock gives tests direct write access to a stored block so
// tampering can be simulated.
func (ldg *Ledger) TamperBlock(index int, fn func(b *Block)) {
	ldg.mu.Lock()
	defer ldg.mu.Unlock()

	fn(&ldg.blocks[index])
}

// SetIndex overwrites the committed index.
func SetIndex(b *Block, index uint64) { b.index = index }

// SetTimestamp overwrites the committed timestamp.
func SetTimestamp(b *Block, timestamp string) { b.timestamp = timestamp }

// SetPayload overwrites the committed payload.
func SetPayload(b *Block, payload string) { b.payload = payload }

// SetPrevDigest overwrites the committed previous digest.
func SetPrevDigest(b *Block, prevDigest string) { b.prevDigest = prevDigest }

// SetNonce overwrites the committed nonce.
func SetNonce(b *Block, nonce uint64) { b.nonce = nonce }
