package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/saravenpi/knot/internal/commands"
)

type installCmd struct{}

func (installCmd) Name() string      { return "install" }
func (installCmd) Args() string      { return "<app>" }
func (installCmd) ShortHelp() string { return "Resolve, lock, and link an app's dependencies" }
func (installCmd) LongHelp() string {
	return "Install resolves the named app's dependency set, writes knot.lock, and materializes the resolved packages into its knot_packages directory."
}
func (installCmd) Register(*flag.FlagSet) {}

func (installCmd) Run(rt *commands.Runtime, args []string) error {
	appName, err := requireAppArg(args)
	if err != nil {
		return err
	}
	result, instErr := rt.Install(context.Background(), appName)
	if instErr != nil {
		return instErr
	}
	fmt.Printf("installed %d packages (lockfile %s)\n", len(result.Resolution.Resolved), result.Resolution.LockfileHash)
	return nil
}
