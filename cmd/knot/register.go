package main

import (
	"flag"
	"fmt"

	"github.com/saravenpi/knot/internal/commands"
	"github.com/saravenpi/knot/internal/registryconfig"
)

// registerCmd persists a remote registry's URL and token to knot.reg.
// The login exchange that produces the token happens out of band; this
// command only writes the opaque result, matching spec.md's Non-goal
// around a full authentication flow.
type registerCmd struct {
	url   string
	token string
}

func (registerCmd) Name() string { return "register" }
func (registerCmd) Args() string { return "" }
func (registerCmd) ShortHelp() string {
	return "Save a remote registry's URL and token to knot.reg"
}
func (registerCmd) LongHelp() string {
	return "Register writes the given registry URL and token to knot.reg at the project root, so later commands talk to that registry without the flags being repeated."
}
func (c *registerCmd) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.url, "url", "", "remote registry base URL")
	fs.StringVar(&c.token, "token", "", "bearer token for the remote registry")
}

func (c *registerCmd) Run(rt *commands.Runtime, args []string) error {
	if c.url == "" {
		return fmt.Errorf("-url is required")
	}
	if err := registryconfig.Write(registryConfigPath(rt), registryconfig.Config{URL: c.url, Token: c.token}); err != nil {
		return err
	}
	fmt.Printf("registered %s\n", c.url)
	return nil
}
