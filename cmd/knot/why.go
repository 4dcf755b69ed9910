package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/saravenpi/knot/internal/commands"
)

type whyCmd struct{}

func (whyCmd) Name() string      { return "why" }
func (whyCmd) Args() string      { return "<app> <package>" }
func (whyCmd) ShortHelp() string { return "Show every dependency path from an app to a package" }
func (whyCmd) LongHelp() string {
	return "Why resolves the named app and prints every path from one of its direct dependencies down to the named package."
}
func (whyCmd) Register(*flag.FlagSet) {}

func (whyCmd) Run(rt *commands.Runtime, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("expected an app name and a package name")
	}
	paths, err := rt.Why(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Printf("%s is not a dependency of %s\n", args[1], args[0])
		return nil
	}
	for _, path := range paths {
		names := make([]string, len(path))
		for i, id := range path {
			names[i] = id.String()
		}
		fmt.Println(strings.Join(names, " -> "))
	}
	return nil
}
