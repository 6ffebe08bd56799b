// Package pow implements the proof of work rules shared between job issuance,
// share validation and the command line miner.
package pow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// PrefixLen is the number of leading hex characters of a hash that are
// interpreted as the share value.
const PrefixLen = 8

// MaxPrefixValue is the largest value the inspected prefix can hold.
const MaxPrefixValue uint64 = 1<<(PrefixLen*4) - 1

// Hash returns the hex encoded SHA-256 digest of the seed followed by the
// decimal rendering of the nonce.
func Hash(seed string, nonce uint64) string {
	hash := sha256.Sum256([]byte(seed + strconv.FormatUint(nonce, 10)))
	return hex.EncodeToString(hash[:])
}

// PrefixValue interprets the leading PrefixLen hex characters of the hash as
// an unsigned integer. Hashes that are too short or not hex produce
// MaxPrefixValue + 1 so they can never satisfy a threshold.
func PrefixValue(hash string) uint64 {
	if len(hash) < PrefixLen {
		return MaxPrefixValue + 1
	}

	v, err := strconv.ParseUint(hash[:PrefixLen], 16, 64)
	if err != nil {
		return MaxPrefixValue + 1
	}

	return v
}

// Solved reports if the hash value is strictly below the threshold.
func Solved(hash string, threshold uint64) bool {
	return PrefixValue(hash) < threshold
}

// Valid recomputes the hash for the seed and nonce and checks it against
// the threshold.
func Valid(seed string, nonce uint64, threshold uint64) bool {
	return Solved(Hash(seed, nonce), threshold)
}

// =============================================================================

// Solution is a nonce found by Search along with the hash it produces.
type Solution struct {
	Nonce    uint64
	Hash     string
	Attempts uint64
}

// Search looks for a nonce that satisfies the threshold for the seed,
// starting at the specified nonce and incrementing by one. The search can
// be cancelled through the context.
func Search(ctx context.Context, seed string, threshold uint64, start uint64, ev func(v string, args ...any)) (Solution, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("pow: Search: MINING: started: seed[%s]: threshold[%d]", seed, threshold)
	defer ev("pow: Search: MINING: completed")

	nonce := start

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("pow: Search: MINING: attempts[%d]", attempts)
		}

		// Did we timeout trying to solve the problem.
		if ctx.Err() != nil {
			ev("pow: Search: MINING: CANCELLED")
			return Solution{}, ctx.Err()
		}

		hash := Hash(seed, nonce)
		if !Solved(hash, threshold) {
			nonce++
			continue
		}

		ev("pow: Search: MINING: SOLVED: nonce[%d]: hash[%s]: attempts[%d]", nonce, hash, attempts)

		return Solution{Nonce: nonce, Hash: hash, Attempts: attempts}, nil
	}
}
