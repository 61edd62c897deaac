package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/trezcool/hagwon/core"
	"github.com/trezcool/hagwon/core/promotion"
)

var errHelp = errors.New("help provided")

type (
	promoter interface {
		MaybePromote(ctx context.Context, currentYear int) (promotion.Outcome, error)
	}

	importer interface {
		ImportBulk(ctx context.Context, setID int64, text string) (int, error)
	}

	commandLine struct {
		db       *sql.DB
		conf     *core.Config
		promoter promoter
		importer importer
		stdin    io.Reader
		stdout   io.Writer
	}
)

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.stdout, "Usage:")
	fmt.Fprintln(cli.stdout, "  migrate COMMAND [ARGS] - run a goose command (up, down, status, ...)")
	fmt.Fprintln(cli.stdout, "  promote - run the yearly grade promotion check for the current year")
	fmt.Fprintln(cli.stdout, "  importvocab -set ID [-file PATH] - import vocabulary items (reads stdin without -file)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("importvocab", flag.ContinueOnError)
	importCmd.SetOutput(cli.stdout)
	importSet := importCmd.Int64("set", 0, "The ID of the vocabulary set.")
	importFile := importCmd.String("file", "", "The file to import. Reads stdin when empty.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "promote":
		if len(args) > 2 {
			cli.printUsage()
			return errHelp
		}
		return cli.promote()
	case "importvocab":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *importSet <= 0 {
			importCmd.Usage()
			return errHelp
		}
		return cli.importVocab(*importSet, *importFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
