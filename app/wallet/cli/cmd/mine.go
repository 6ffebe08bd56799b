package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	blocks  int
	verbose bool
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine blocks for your account",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().IntVarP(&blocks, "blocks", "b", 1, "Number of blocks to mine, 0 to mine until interrupted.")
	mineCmd.Flags().BoolVar(&verbose, "verbose", false, "Print mining progress.")
}

func mineRun(cmd *cobra.Command, args []string) error {
	id, err := getAccountID()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ev func(v string, args ...any)
	if verbose {
		ev = func(v string, args ...any) {
			fmt.Printf(v+"\n", args...)
		}
	}

	clt := newClient()

	for mined := 0; blocks == 0 || mined < blocks; mined++ {
		share, err := clt.Mine(ctx, id, ev)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		fmt.Printf("Block: %d  Hash: %s  Reward: %v  Balance: %v  Difficulty: %d  ShareTime: %.2fs\n",
			share.Height, share.Hash, share.Reward, share.Balance, share.Difficulty, share.ShareTime)
	}

	return nil
}
