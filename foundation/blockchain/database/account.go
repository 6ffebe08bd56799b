package database

import (
	"crypto/ecdsa"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Set of reserved account ids.
const (
	// NetworkID is the sender of every coinbase transaction. It is never
	// debited when balances are derived.
	NetworkID AccountID = "network"

	// GenesisID is the miner recorded on the synthetic genesis block.
	GenesisID AccountID = "genesis"
)

// maxAccountIDLen bounds the size of an account id accepted from a client.
const maxAccountIDLen = 128

// AccountID identifies a participant on the ledger. Account ids are opaque
// strings chosen by the participant.
type AccountID string

// ToAccountID converts a string to an account id and validates the string
// is usable as an account id.
func ToAccountID(s string) (AccountID, error) {
	a := AccountID(strings.TrimSpace(s))
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a, nil
}

// IsAccountID verifies the account id is not empty and not unreasonably large.
func (a AccountID) IsAccountID() bool {
	return a != "" && len(a) <= maxAccountIDLen
}

// IsNetwork reports if the account is the reserved coinbase sender.
func (a AccountID) IsNetwork() bool {
	return a == NetworkID
}

// IsReserved reports if the account is owned by the ledger itself and can't
// mine or receive transfers.
func (a AccountID) IsReserved() bool {
	return a == NetworkID || a == GenesisID
}

// PublicKeyToAccountID converts the public key of a generated wallet key into
// the account id the wallet mines and transfers with.
func PublicKeyToAccountID(pk ecdsa.PublicKey) AccountID {
	return AccountID(crypto.PubkeyToAddress(pk).Hex())
}
