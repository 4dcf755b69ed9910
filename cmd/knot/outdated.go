package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/saravenpi/knot/internal/commands"
)

type outdatedCmd struct {
	allowPrerelease bool
}

func (outdatedCmd) Name() string      { return "outdated" }
func (outdatedCmd) Args() string      { return "<app>" }
func (outdatedCmd) ShortHelp() string { return "List resolved packages with a newer version available" }
func (outdatedCmd) LongHelp() string {
	return "Outdated resolves the named app and reports every resolved package whose registry offers a newer version than the one currently picked."
}
func (c *outdatedCmd) Register(fs *flag.FlagSet) {
	fs.BoolVar(&c.allowPrerelease, "allow-prerelease", false, "consider prerelease versions when looking for a newer pick")
}

func (c *outdatedCmd) Run(rt *commands.Runtime, args []string) error {
	appName, err := requireAppArg(args)
	if err != nil {
		return err
	}
	rt.Options.AllowPrerelease = c.allowPrerelease
	entries, outErr := rt.Outdated(context.Background(), appName)
	if outErr != nil {
		return outErr
	}
	if len(entries) == 0 {
		fmt.Println("all packages are up to date")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s: %s -> %s\n", e.ID.String(), e.Current.String(), e.Latest.String())
	}
	return nil
}
