// Package commands contains the functionality for the set of commands
// currently supported by the admin tool.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/storage/disk"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

// Load reads and validates the chain file at the specified path. The file is
// never created or written, so a missing file is an error.
func Load(path string) ([]database.Block, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("chain file: %w", err)
	}

	strg, err := disk.New(path)
	if err != nil {
		return nil, err
	}
	defer strg.Close()

	blocks, err := strg.Load()
	if err != nil {
		return nil, err
	}

	if err := database.ValidateChain(blocks); err != nil {
		return nil, fmt.Errorf("chain file %s: %w", path, err)
	}

	return blocks, nil
}
