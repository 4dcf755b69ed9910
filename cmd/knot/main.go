package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/saravenpi/knot/internal/commands"
	"github.com/saravenpi/knot/internal/knotlog"
	"github.com/saravenpi/knot/internal/model"
	"github.com/saravenpi/knot/internal/registryconfig"
	"github.com/saravenpi/knot/internal/workspace"
)

var verbose = flag.Bool("v", false, "enable verbose logging")

type command interface {
	Name() string
	Args() string
	ShortHelp() string
	LongHelp() string
	Register(*flag.FlagSet)
	Run(rt *commands.Runtime, args []string) error
}

func main() {
	cmds := []command{
		&resolveCmd{},
		&installCmd{},
		&linkCmd{},
		&treeCmd{},
		&whyCmd{},
		&outdatedCmd{},
		&registerCmd{},
	}

	usage := func() {
		fmt.Fprintln(os.Stderr, "Usage: knot <command>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr)
		w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
		for _, c := range cmds {
			fmt.Fprintf(w, "\t%s\t%s\n", c.Name(), c.ShortHelp())
		}
		w.Flush()
		fmt.Fprintln(os.Stderr)
	}

	if len(os.Args) <= 1 || strings.ToLower(os.Args[1]) == "-h" || strings.ToLower(os.Args[1]) == "help" {
		usage()
		os.Exit(1)
	}

	for _, c := range cmds {
		if c.Name() != os.Args[1] {
			continue
		}

		fs := flag.NewFlagSet(c.Name(), flag.ExitOnError)
		fs.BoolVar(verbose, "v", false, "enable verbose logging")
		c.Register(fs)
		resetUsage(fs, c.Name(), c.Args(), c.LongHelp())
		if err := fs.Parse(os.Args[2:]); err != nil {
			fs.Usage()
			os.Exit(1)
		}

		rt, rtErr := newRuntime()
		if rtErr != nil {
			fmt.Fprintf(os.Stderr, "knot: %v\n", rtErr)
			os.Exit(exitCode(rtErr))
		}

		if err := c.Run(rt, fs.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "knot: %v\n", err)
			if modelErr, ok := err.(*model.Error); ok {
				os.Exit(exitCode(modelErr))
			}
			os.Exit(1)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "knot: no such command %q\n", os.Args[1])
	usage()
	os.Exit(1)
}

// exitCode maps a core failure to the process exit status §6.4 names:
// 0 success, 1 configuration/user error, 2 resolution failure, 3 I/O
// failure, 4 network failure.
func exitCode(err *model.Error) int {
	switch err.Kind {
	case model.ErrConfiguration:
		return 1
	case model.ErrResolutionNotFound, model.ErrVersionConflict, model.ErrCircularDependency:
		return 2
	case model.ErrIO, model.ErrCache:
		return 3
	case model.ErrNetwork:
		return 4
	default:
		return 1
	}
}

func newRuntime() (*commands.Runtime, *model.Error) {
	wd, werr := os.Getwd()
	if werr != nil {
		return nil, model.IOError("getwd", "", werr)
	}
	root, err := workspace.FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	project, err := workspace.LoadAt(root)
	if err != nil {
		return nil, err
	}

	log := knotlog.New(os.Stderr)
	log.Verbose = *verbose

	return commands.New(project, commands.Options{}, log)
}

func resetUsage(fs *flag.FlagSet, name, args, longHelp string) {
	var (
		hasFlags   bool
		flagBlock  bytes.Buffer
		flagWriter = tabwriter.NewWriter(&flagBlock, 0, 4, 2, ' ', 0)
	)
	fs.VisitAll(func(f *flag.Flag) {
		hasFlags = true
		defValue := f.DefValue
		if defValue == "" {
			defValue = "<none>"
		}
		fmt.Fprintf(flagWriter, "\t-%s\t%s (default: %s)\n", f.Name, f.Usage, defValue)
	})
	flagWriter.Flush()
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: knot %s %s\n", name, args)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, strings.TrimSpace(longHelp))
		fmt.Fprintln(os.Stderr)
		if hasFlags {
			fmt.Fprintln(os.Stderr, "Flags:")
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, flagBlock.String())
		}
	}
}

func requireAppArg(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("expected an app name")
	}
	return args[0], nil
}

func registryConfigPath(rt *commands.Runtime) string {
	return filepath.Join(rt.Project.Root, registryconfig.FileName)
}
