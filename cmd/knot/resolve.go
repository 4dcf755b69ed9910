package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/saravenpi/knot/internal/commands"
)

type resolveCmd struct{}

func (resolveCmd) Name() string      { return "resolve" }
func (resolveCmd) Args() string      { return "<app>" }
func (resolveCmd) ShortHelp() string { return "Resolve an app's dependency set without writing anything" }
func (resolveCmd) LongHelp() string {
	return "Resolve runs the solver for the named app and prints the resolved package set, without touching the lock file or the link directory."
}
func (resolveCmd) Register(*flag.FlagSet) {}

func (resolveCmd) Run(rt *commands.Runtime, args []string) error {
	appName, err := requireAppArg(args)
	if err != nil {
		return err
	}
	result, resErr := rt.Resolve(context.Background(), appName)
	if resErr != nil {
		return resErr
	}
	for id, pv := range result.Resolved {
		fmt.Printf("%s@%s\n", id.String(), pv.Version.String())
	}
	return nil
}
