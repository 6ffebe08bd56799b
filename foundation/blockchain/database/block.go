package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/cadocurrency/ledger/foundation/blockchain/pow"
)

// GenesisHash is the hash and parent hash recorded on the genesis block.
const GenesisHash = "0"

// ErrChainCorrupted is returned when a persisted chain does not link together.
var ErrChainCorrupted = errors.New("blockchain corrupted")

// =============================================================================

// Block represents a group of transactions batched together and the proof of
// work that allowed the miner to append it.
type Block struct {
	Index     uint64    `json:"index"`        // Number of blocks in the chain before this one.
	TimeStamp float64   `json:"timestamp"`    // Unix seconds the block was accepted.
	Trans     []Tx      `json:"transactions"` // Coinbase first, then transfers in pool order.
	PrevHash  string    `json:"prev_hash"`    // Hash of the previous block in the chain.
	Nonce     uint64    `json:"nonce"`        // Value identified to solve the hash solution.
	Hash      string    `json:"hash"`         // Hash of the prev hash and nonce.
	Miner     AccountID `json:"miner"`        // The account who solved the block.
}

// GenesisBlock constructs the synthetic first block of every chain.
func GenesisBlock() Block {
	return Block{
		Index:    0,
		Trans:    []Tx{},
		PrevHash: GenesisHash,
		Nonce:    0,
		Hash:     GenesisHash,
		Miner:    GenesisID,
	}
}

// BlockArgs represents the set of arguments required to construct a block.
type BlockArgs struct {
	Miner     AccountID
	PrevBlock Block
	Nonce     uint64
	Trans     []Tx
	Now       time.Time
}

// NewBlock constructs the block that follows the previous block for a
// solved nonce.
func NewBlock(args BlockArgs) Block {
	trans := make([]Tx, len(args.Trans))
	copy(trans, args.Trans)

	return Block{
		Index:     args.PrevBlock.Index + 1,
		TimeStamp: ToTimeStamp(args.Now),
		Trans:     trans,
		PrevHash:  args.PrevBlock.Hash,
		Nonce:     args.Nonce,
		Hash:      pow.Hash(args.PrevBlock.Hash, args.Nonce),
		Miner:     args.Miner,
	}
}

// IsGenesis reports if this block has the shape of the genesis block.
func (b Block) IsGenesis() bool {
	return b.Index == 0 && b.Hash == GenesisHash && b.PrevHash == GenesisHash && len(b.Trans) == 0
}

// ValidateBlock takes a block and validates it to be the next block of the
// chain that ends with the previous block.
func (b Block) ValidateBlock(previousBlock Block) error {
	nextNumber := previousBlock.Index + 1
	if b.Index != nextNumber {
		return fmt.Errorf("this block is not the next number, got %d, exp %d", b.Index, nextNumber)
	}

	if b.PrevHash != previousBlock.Hash {
		return fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.PrevHash, previousBlock.Hash)
	}

	if hash := pow.Hash(b.PrevHash, b.Nonce); b.Hash != hash {
		return fmt.Errorf("block hash doesn't match its nonce, got %s, exp %s", b.Hash, hash)
	}

	if len(b.Trans) == 0 || !b.Trans[0].IsCoinbase() || b.Trans[0].To != b.Miner {
		return fmt.Errorf("block %d does not start with a coinbase for miner %s", b.Index, b.Miner)
	}

	for i, tx := range b.Trans[1:] {
		if tx.IsCoinbase() {
			return fmt.Errorf("block %d has a second coinbase at position %d", b.Index, i+1)
		}
	}

	return nil
}

// ToTimeStamp converts a time into fractional unix seconds.
func ToTimeStamp(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixNano()) / float64(time.Second)
}
