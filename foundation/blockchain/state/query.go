package state

import (
	"github.com/cadocurrency/ledger/foundation/blockchain/balance"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
)

// QueryLatest represents to query the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// =============================================================================

// QueryBalance returns the confirmed balance of the account derived by
// replaying the chain.
func (s *State) QueryBalance(account database.AccountID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return balance.Of(s.db.Copy(), account)
}

// QueryBalances returns the confirmed balances of every account that has
// transacted on the chain.
func (s *State) QueryBalances() map[database.AccountID]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return balance.Replay(s.db.Copy())
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Count()
}

// QueryBlocksByNumber returns the set of blocks based on block numbers.
// QueryLatest can be used for either bound.
func (s *State) QueryBlocksByNumber(from uint64, to uint64) []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	height := s.db.Height()
	if from == QueryLatest {
		from = height
	}
	if to == QueryLatest || to > height {
		to = height
	}

	var out []database.Block
	for i := from; i <= to; i++ {
		block, err := s.db.GetBlock(i)
		if err != nil {
			s.evHandler("state: QueryBlocksByNumber: ERROR: %s", err)
			return nil
		}
		out = append(out, block)
	}

	return out
}

// QueryBlocksByAccount returns the set of blocks where the account mined the
// block, sent or received value. If the account is empty, all blocks are
// returned.
func (s *State) QueryBlocksByAccount(account database.AccountID) []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []database.Block

	for _, block := range s.db.Copy() {
		if account == "" || block.Miner == account {
			out = append(out, block)
			continue
		}

		for _, tx := range block.Trans {
			if tx.From == account || tx.To == account {
				out = append(out, block)
				break
			}
		}
	}

	return out
}
