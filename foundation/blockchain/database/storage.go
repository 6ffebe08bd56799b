package database

// Storage interface represents the behavior required to be implemented by any
// package providing support for persisting the blockchain. The chain is always
// persisted as a whole so a reader never observes a partially written chain.
type Storage interface {

	// Load returns the persisted chain. An empty chain with no error means
	// nothing has been persisted yet.
	Load() ([]Block, error)

	// Replace atomically overwrites the persisted chain with the blocks.
	Replace(blocks []Block) error

	// Close releases any resources held by the storage.
	Close() error
}
