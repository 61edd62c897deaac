package main

import (
	"context"
	"fmt"
)

// promote runs the promotion check for the current year in the configured timezone.
func (cli *commandLine) promote() error {
	out, err := cli.promoter.MaybePromote(context.Background(), cli.conf.Now().Year())
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.stdout, out)
	return nil
}
