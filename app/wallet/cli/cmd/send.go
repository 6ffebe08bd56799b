package cmd

import (
	"fmt"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var (
	to     string
	amount float64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Queue a transfer from your account",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account to send to.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Amount to send.")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")
}

func sendRun(cmd *cobra.Command, args []string) error {
	from, err := getAccountID()
	if err != nil {
		return err
	}

	status, err := newClient().Send(cmd.Context(), from, database.AccountID(to), amount)
	if err != nil {
		return err
	}

	fmt.Println(status)
	return nil
}
