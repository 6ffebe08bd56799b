package state

import (
	"fmt"
	"math"

	"github.com/cadocurrency/ledger/foundation/blockchain/balance"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
)

// SubmitTransfer accepts a transfer for inclusion in a future block. The
// sender must be able to cover the amount with the confirmed balance; pending
// transfers are not considered. Balances are never changed here.
func (s *State) SubmitTransfer(from database.AccountID, to database.AccountID, amount float64) (database.Tx, error) {
	if !from.IsAccountID() || !to.IsAccountID() {
		return database.Tx{}, ErrMissingFields
	}

	if !(amount > 0) || math.IsInf(amount, 1) {
		return database.Tx{}, ErrInvalidAmount
	}

	// Ledger accounts never send or receive transfers.
	if from.IsReserved() || to.IsReserved() || from == to {
		return database.Tx{}, ErrInvalidTransfer
	}

	tx, err := database.NewTx(from, to, amount)
	if err != nil {
		return database.Tx{}, fmt.Errorf("%w: %s", ErrInvalidTransfer, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bal := balance.Of(s.db.Copy(), from)
	if bal < amount {
		s.evHandler("state: SubmitTransfer: REJECTED: tx[%s]: balance[%v]", tx, bal)
		return database.Tx{}, fmt.Errorf("%w: %s has %v, needs %v", ErrInsufficientBalance, from, bal, amount)
	}

	n := s.mempool.Add(tx)

	s.evHandler("state: SubmitTransfer: QUEUED: tx[%s]: pending[%d]", tx, n)

	return tx, nil
}
