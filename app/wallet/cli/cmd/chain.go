package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the chain held by the node",
	RunE:  chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func chainRun(cmd *cobra.Command, args []string) error {
	blocks, err := newClient().Chain(cmd.Context())
	if err != nil {
		return err
	}

	for _, block := range blocks {
		fmt.Printf("Block: %d  Miner: %s  Hash: %s  PrevHash: %s  Trans: %d\n",
			block.Index, block.Miner, block.Hash, block.PrevHash, len(block.Trans))
		for _, tx := range block.Trans {
			fmt.Printf("    %s\n", tx)
		}
	}

	return nil
}
