package commands

import (
	"fmt"
	"io"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
)

// Transactions writes the transactions recorded on the chain in chain order.
// A non-empty account limits the output to transactions it sent or received.
func Transactions(w io.Writer, blocks []database.Block, account database.AccountID) error {
	if len(blocks) == 0 {
		return database.ErrChainCorrupted
	}

	fmt.Fprintf(w, "Height: %d\n\n", database.Height(blocks))

	for _, block := range blocks {
		for _, tx := range block.Trans {
			if account != "" && tx.From != account && tx.To != account {
				continue
			}

			fmt.Fprintf(w, "Block: %d  From: %s  To: %s  Amount: %v\n", block.Index, tx.From, tx.To, tx.Amount)
		}
	}

	return nil
}
