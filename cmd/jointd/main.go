package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tendermint/tendermint/libs/log"
)

var (
	varHome     *string
	varLogLevel *string
	varDebug    *bool
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".jointd")
	varHome = flag.String("home", defaultHome, "directory to store files under")
	varLogLevel = flag.String("log-level", "info", "log level: debug, info, error or none")
	varDebug = flag.Bool("debug", false, "include internal error details in results")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("jointd")
	fmt.Println("        Joint account ledger")
	fmt.Println("")
	fmt.Println("help    Print this message")
	fmt.Println("init    Load genesis file into a new state: init [genesis.json]")
	fmt.Println("apply   Deliver a list of calls and commit: apply calls.json")
	fmt.Println("query   Read the committed state: query <name> args...")
	fmt.Println("")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger, err := newLogger(os.Stderr, *varLogLevel)
	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		os.Exit(1)
	}
	logger = logger.With("module", "jointd")

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = InitCmd(logger, *varHome, rest)
	case "apply":
		err = ApplyCmd(os.Stdout, logger, *varHome, *varDebug, rest)
	case "query":
		err = QueryCmd(os.Stdout, logger, *varHome, rest)
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), allowed), nil
}
