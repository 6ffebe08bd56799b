// This program is the wallet and miner for a cadocurrency node.
package main

import "github.com/cadocurrency/ledger/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
