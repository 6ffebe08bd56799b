package state

import (
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/pow"
)

// Job is the work handed to a miner. A share is only honored while Seed is
// still the hash of the chain tip.
type Job struct {
	Seed       string
	Difficulty int
	Threshold  uint64
	Height     uint64
	Reward     float64
	PrefixLen  int
}

// RequestJob returns the work for the next block for the specified account.
// A participant seen for the first time starts at the default difficulty.
func (s *State) RequestJob(account database.AccountID) (Job, error) {
	if !account.IsAccountID() {
		return Job{}, ErrMissingFields
	}

	if account.IsReserved() {
		return Job{}, ErrReservedAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	latest := s.db.LatestBlock()
	diff := s.difficulty.Difficulty(account)
	height := latest.Index + 1

	job := Job{
		Seed:       latest.Hash,
		Difficulty: diff,
		Threshold:  s.difficulty.Threshold(diff),
		Height:     height,
		Reward:     s.genesis.Reward(height),
		PrefixLen:  pow.PrefixLen,
	}

	s.evHandler("state: RequestJob: miner[%s]: height[%d]: difficulty[%d]: threshold[%d]", account, job.Height, job.Difficulty, job.Threshold)

	return job, nil
}
