package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ZebulonRouseFrantzich/undetected/internal/config"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := defaultDeps()
	if err := run(ctx, d, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", config.FormatError(err, false))
		stop()
		os.Exit(1)
	}
}

// run dispatches a subcommand.
func run(ctx context.Context, d deps, args []string) error {
	if len(args) == 0 {
		printHelp(d.stdout)
		return nil
	}

	switch args[0] {
	case "--version":
		fmt.Fprintf(d.stdout, "undetected %s\n", Version)
		return nil
	case "patch":
		return runPatch(ctx, d, args[1:])
	case "detect":
		return runDetect(ctx, d, args[1:])
	case "init":
		return runInit(d, args[1:])
	case "--help", "-h", "help":
		printHelp(d.stdout)
		return nil
	default:
		printHelp(d.stderr)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "undetected - patched chromedriver manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  undetected --version                 Show version information")
	fmt.Fprintln(w, "  undetected patch [options]           Download (if needed) and patch chromedriver")
	fmt.Fprintln(w, "  undetected patch --driver PATH       Patch a local chromedriver")
	fmt.Fprintln(w, "  undetected detect [--config PATH]    Show platform and browser version")
	fmt.Fprintln(w, "  undetected init [--force]            Write a configuration template")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'undetected <command> --help' for command options.")
}
