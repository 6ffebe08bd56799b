package state

import (
	"github.com/cadocurrency/ledger/foundation/blockchain/balance"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
)

// assemble builds the transaction list of the next block. The coinbase is
// always first and counts toward the miner's running balance, then pending
// transfers are taken in submission order while their sender can afford them.
// The transfers that were not selected are returned in their original order.
// The caller must hold the lock.
func (s *State) assemble(chain []database.Block, miner database.AccountID, reward float64) ([]database.Tx, []database.Tx) {
	sheet := balance.NewSheet(balance.Replay(chain))

	coinbase := database.NewCoinbaseTx(miner, reward)
	sheet.ApplyTransaction(coinbase)

	selected, remaining := s.mempool.Select(sheet, s.genesis.TransPerBlock)

	trans := make([]database.Tx, 0, len(selected)+1)
	trans = append(trans, coinbase)
	trans = append(trans, selected...)

	return trans, remaining
}
