package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your confirmed balance",
	RunE:  balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) error {
	id, err := getAccountID()
	if err != nil {
		return err
	}

	bal, err := newClient().Balance(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Println("For Account:", id)
	fmt.Println(bal.Balance)
	return nil
}
