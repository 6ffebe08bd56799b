package database

import "fmt"

// Tx is the transfer of value between two parties. A transaction sent from
// the network account is a coinbase emission.
type Tx struct {
	From   AccountID `json:"from"`
	To     AccountID `json:"to"`
	Amount float64   `json:"amount"`
}

// NewTx constructs a new transfer after checking the parties and amount.
func NewTx(from AccountID, to AccountID, amount float64) (Tx, error) {
	if !from.IsAccountID() {
		return Tx{}, fmt.Errorf("from account is not properly formatted")
	}

	if !to.IsAccountID() {
		return Tx{}, fmt.Errorf("to account is not properly formatted")
	}

	if !(amount > 0) {
		return Tx{}, fmt.Errorf("amount must be positive, got %v", amount)
	}

	tx := Tx{
		From:   from,
		To:     to,
		Amount: amount,
	}

	return tx, nil
}

// NewCoinbaseTx constructs the reward transaction paid by the network to
// the specified miner.
func NewCoinbaseTx(miner AccountID, reward float64) Tx {
	return Tx{
		From:   NetworkID,
		To:     miner,
		Amount: reward,
	}
}

// IsCoinbase reports if the transaction is a network emission.
func (tx Tx) IsCoinbase() bool {
	return tx.From.IsNetwork()
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%v", tx.From, tx.To, tx.Amount)
}
