// This program performs administrative tasks against the chain file of a
// stopped or running node.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cadocurrency/ledger/app/tooling/admin/commands"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/logger"
	"github.com/ardanlabs/conf/v3"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Errorw("admin", "ERROR", err)
		}
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := struct {
		conf.Version
		Args conf.Args
		DB   struct {
			Path string `conf:"default:zblock/blocks.json"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "cadocurrency ledger admin",
		},
	}

	const prefix = "ADMIN"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	log.Infow("startup", "status", "loading chain", "path", cfg.DB.Path)

	blocks, err := commands.Load(cfg.DB.Path)
	if err != nil {
		return err
	}

	return processCommands(cfg.Args, blocks)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args conf.Args, blocks []database.Block) error {
	account := database.AccountID(args.Num(1))

	switch args.Num(0) {
	case "bals":
		if err := commands.Balances(os.Stdout, blocks, account); err != nil {
			return fmt.Errorf("getting balances: %w", err)
		}

	case "trans":
		if err := commands.Transactions(os.Stdout, blocks, account); err != nil {
			return fmt.Errorf("getting transactions: %w", err)
		}

	default:
		fmt.Println("bals [account]: show the balances derived from the chain")
		fmt.Println("trans [account]: show the transactions recorded on the chain")
		return commands.ErrHelp
	}

	return nil
}
