package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/saravenpi/knot/internal/commands"
)

type treeCmd struct{}

func (treeCmd) Name() string      { return "tree" }
func (treeCmd) Args() string      { return "<app>" }
func (treeCmd) ShortHelp() string { return "Print an app's dependency tree" }
func (treeCmd) LongHelp() string {
	return "Tree resolves the named app and prints its dependency tree, one line per resolved package indented by depth."
}
func (treeCmd) Register(*flag.FlagSet) {}

func (treeCmd) Run(rt *commands.Runtime, args []string) error {
	appName, err := requireAppArg(args)
	if err != nil {
		return err
	}
	nodes, treeErr := rt.Tree(context.Background(), appName)
	if treeErr != nil {
		return treeErr
	}
	for _, n := range nodes {
		printTreeNode(n, 0)
	}
	return nil
}

func printTreeNode(n *commands.TreeNode, depth int) {
	fmt.Printf("%s%s@%s\n", strings.Repeat("  ", depth), n.ID.String(), n.Version.String())
	for _, child := range n.Children {
		printTreeNode(child, depth+1)
	}
}
