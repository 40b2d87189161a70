// Command vied is a modal terminal text editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hsaturn/vied/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := application.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (app.Options, error) {
	fs := flag.NewFlagSet("vied", flag.ContinueOnError)

	var opts app.Options
	fs.StringVar(&opts.ConfigPath, "config", "", "path to a TOML config file")
	fs.StringVar(&opts.ConfigPath, "c", "", "shorthand for -config")
	fs.StringVar(&opts.WorkspacePath, "workspace", "", "workspace directory (defaults to the first file's directory)")
	fs.StringVar(&opts.WorkspacePath, "w", "", "shorthand for -workspace")
	fs.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	fs.BoolVar(&opts.Debug, "d", false, "shorthand for -debug")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: vied [options] [+N] file...")
		fmt.Fprintln(fs.Output(), "")
		fmt.Fprintln(fs.Output(), "  +N        open the next file with the cursor on line N")
		fmt.Fprintln(fs.Output(), "")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Debug && opts.LogLevel == "info" {
		opts.LogLevel = "debug"
	}

	opts.Args = fs.Args()
	if opts.WorkspacePath == "" {
		opts.WorkspacePath = workspaceFromArgs(opts.Args)
	}
	return opts, nil
}

// workspaceFromArgs defaults the workspace to the directory of the
// first file argument (skipping "+N" row markers), or "." if none.
func workspaceFromArgs(args []string) string {
	for _, a := range args {
		if len(a) > 0 && a[0] == '+' {
			continue
		}
		return filepath.Dir(a)
	}
	return "."
}
