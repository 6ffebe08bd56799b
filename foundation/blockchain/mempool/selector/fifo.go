package selector

import (
	"github.com/cadocurrency/ledger/foundation/blockchain/balance"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
)

// fifoSelect walks the pending transactions earliest first and selects every
// transaction the sender can afford with the running balance at that point.
// Transactions that can't be afforded, or that don't fit in the block, stay
// pending untouched.
var fifoSelect = func(sheet *balance.Sheet, pending []database.Tx, howMany int) ([]database.Tx, []database.Tx) {

	/*
		balances: alice 10, bob 0
		pending:  bob->carl 5, alice->bob 6, bob->carl 5, alice->dave 6

		bob->carl 5    bob has 0          stays pending
		alice->bob 6   alice has 10       selected, alice 4, bob 6
		bob->carl 5    bob has 6          selected, bob 1
		alice->dave 6  alice has 4        stays pending
	*/

	selected := []database.Tx{}
	remaining := []database.Tx{}

	for _, tx := range pending {
		if howMany != -1 && len(selected) >= howMany {
			remaining = append(remaining, tx)
			continue
		}

		if err := sheet.ApplyTransaction(tx); err != nil {
			remaining = append(remaining, tx)
			continue
		}

		selected = append(selected, tx)
	}

	return selected, remaining
}
