package state

import (
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/difficulty"
	"github.com/cadocurrency/ledger/foundation/blockchain/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.LatestBlock()
}

// RetrieveChain returns a copy of the full chain starting with genesis.
func (s *State) RetrieveChain() []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Copy()
}

// RetrieveMempool returns a copy of the mempool in submission order.
func (s *State) RetrieveMempool() []database.Tx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Copy()
}

// RetrieveParticipants returns a copy of the participant difficulty table.
func (s *State) RetrieveParticipants() map[database.AccountID]difficulty.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.difficulty.Copy()
}
