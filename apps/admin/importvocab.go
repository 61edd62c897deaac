package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

var isTerminalFunc = term.IsTerminal // mockable

// importVocab adds the items read from path (or stdin) to the set.
func (cli *commandLine) importVocab(setID int64, path string) error {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = ioutil.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "reading "+path)
		}
	} else {
		if f, ok := cli.stdin.(*os.File); ok && isTerminalFunc(int(f.Fd())) {
			fmt.Fprintln(cli.stdout, "Paste items (word<TAB>meaning or word / meaning), then press Ctrl-D:")
		}
		data, err = ioutil.ReadAll(cli.stdin)
		if err != nil {
			return errors.Wrap(err, "reading stdin")
		}
	}

	n, err := cli.importer.ImportBulk(context.Background(), setID, string(data))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.stdout, "imported %d item(s) into set %d\n", n, setID)
	return nil
}
