// Command sparseset replays sparse set scenarios and reports set layouts.
//
// Usage:
//
//	sparseset run scenario.yaml [--dirty] [--mmap] [-v]
//	sparseset sizes 70000
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global carries shared state into subcommands.
type Global struct {
	Out    io.Writer
	Logger *slog.Logger
}

// CLI is the command line grammar.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Run   RunCmd   `cmd:"" help:"Replay a scenario file and print the resulting sets"`
	Sizes SizesCmd `cmd:"" help:"Print the memory layout of a set over BOUND keys"`
}

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("sparseset failed", "error", err)
		os.Exit(1)
	}
}

// execute parses args and runs the selected command.
func execute(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("sparseset"),
		kong.Description("Replay sparse set scenarios and inspect set layouts."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return kctx.Run(&Global{Out: stdout, Logger: logger})
}
