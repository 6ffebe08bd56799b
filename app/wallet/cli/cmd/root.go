// Package cmd contains the wallet commands.
package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/cadocurrency/ledger/app/wallet/cli/client"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var (
	url         string
	token       string
	accountName string
	accountPath string
	accountID   string
)

const (
	keyExtension = ".ecdsa"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "API token of the node.")
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "private.ecdsa", "Name of the private key file.")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zblock/accounts/", "Path to the directory with private keys.")
	rootCmd.PersistentFlags().StringVar(&accountID, "id", "", "Account id to use instead of the one derived from the key.")
}

var rootCmd = &cobra.Command{
	Use:          "wallet",
	Short:        "Wallet and miner for a cadocurrency node",
	SilenceUsage: true,
}

// Execute runs the command specified on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getPrivateKeyPath() string {
	name := accountName
	if !strings.HasSuffix(name, keyExtension) {
		name += keyExtension
	}

	return filepath.Join(accountPath, name)
}

// getAccountID returns the account the command acts for. An explicit id
// wins over the key file.
func getAccountID() (database.AccountID, error) {
	if accountID != "" {
		return database.ToAccountID(accountID)
	}

	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		return "", errors.New("no account: generate a key or pass --id")
	}

	return database.PublicKeyToAccountID(privateKey.PublicKey), nil
}

func newClient() *client.Client {
	return client.New(url, token)
}
