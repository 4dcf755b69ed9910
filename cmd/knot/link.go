package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/saravenpi/knot/internal/commands"
)

type linkCmd struct{}

func (linkCmd) Name() string      { return "link" }
func (linkCmd) Args() string      { return "<app>" }
func (linkCmd) ShortHelp() string { return "Resolve and link an app's packages, no lock file" }
func (linkCmd) LongHelp() string {
	return "Link resolves the named app's dependency set and materializes it into knot_packages plus tsconfig.json, without writing a lock file."
}
func (linkCmd) Register(*flag.FlagSet) {}

func (linkCmd) Run(rt *commands.Runtime, args []string) error {
	appName, err := requireAppArg(args)
	if err != nil {
		return err
	}
	result, linkErr := rt.Link(context.Background(), appName)
	if linkErr != nil {
		return linkErr
	}
	fmt.Printf("linked %d packages\n", len(result.Resolved))
	return nil
}
