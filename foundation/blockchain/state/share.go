package state

import (
	"fmt"
	"time"

	"github.com/cadocurrency/ledger/foundation/blockchain/balance"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/pow"
)

// Share is the outcome of an accepted share.
type Share struct {
	Block      database.Block
	Hash       string
	Height     uint64
	Reward     float64
	Balance    float64
	Difficulty int
	ShareTime  time.Duration
}

// SubmitShare validates a share and, if it solves the miner's current
// threshold against the chain tip, mints the next block. The whole operation
// runs under the ledger mutex: the tip can't move between the stale check
// and the append.
func (s *State) SubmitShare(account database.AccountID, seed string, nonce uint64) (Share, error) {
	if !account.IsAccountID() || seed == "" {
		return Share{}, ErrMissingFields
	}

	// A coinbase paid to a ledger account could never be spent.
	if account.IsReserved() {
		return Share{}, ErrReservedAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: SubmitShare: started: miner[%s]: seed[%s]: nonce[%d]", account, seed, nonce)

	// A job computed against an older tip is never honored.
	latest := s.db.LatestBlock()
	if seed != latest.Hash {
		s.evHandler("state: SubmitShare: REJECTED: stale job: miner[%s]: tip[%s]", account, latest.Hash)
		return Share{}, ErrStaleJob
	}

	diff := s.difficulty.Difficulty(account)
	threshold := s.difficulty.Threshold(diff)
	if !pow.Valid(seed, nonce, threshold) {
		s.evHandler("state: SubmitShare: REJECTED: invalid share: miner[%s]: difficulty[%d]", account, diff)
		return Share{}, ErrInvalidShare
	}

	height := latest.Index + 1
	reward := s.genesis.Reward(height)

	chain := s.db.Copy()
	trans, remaining := s.assemble(chain, account, reward)

	now := s.now()

	block := database.NewBlock(database.BlockArgs{
		Miner:     account,
		PrevBlock: latest,
		Nonce:     nonce,
		Trans:     trans,
		Now:       now,
	})

	s.evHandler("state: SubmitShare: write to storage: blk[%d]: hash[%s]: numTrans[%d]", block.Index, block.Hash, len(block.Trans))

	// Nothing in memory changes unless the chain is durably stored.
	if err := s.db.Append(block); err != nil {
		s.evHandler("state: SubmitShare: ERROR: %s", err)
		return Share{}, fmt.Errorf("append block %d: %w", block.Index, err)
	}

	s.mempool.Replace(remaining)

	adj := s.difficulty.Retarget(account, now)

	share := Share{
		Block:      block,
		Hash:       block.Hash,
		Height:     block.Index,
		Reward:     reward,
		Balance:    balance.Of(append(chain, block), account),
		Difficulty: adj.Difficulty,
		ShareTime:  adj.Elapsed,
	}

	s.evHandler("state: SubmitShare: ACCEPTED: blk[%d]: miner[%s]: hash[%s]: reward[%v]: difficulty[%d->%d]", share.Height, account, share.Hash, reward, adj.Previous, adj.Difficulty)

	return share, nil
}
