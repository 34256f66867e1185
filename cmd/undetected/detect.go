package main

import (
	"context"
	"fmt"
	"io"
)

// runDetect handles the `undetected detect` subcommand. It reports what
// `patch` would use without downloading or writing anything.
func runDetect(ctx context.Context, d deps, args []string) error {
	configPath := ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			printDetectHelp(d.stdout)
			return nil
		case "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a value")
			}
			i++
			configPath = args[i]
		default:
			return fmt.Errorf("unknown argument: %s", args[i])
		}
	}

	env, err := loadEnvironment(ctx, d, configPath)
	if err != nil {
		return err
	}

	host, err := env.host(ctx, d.runner)
	if err != nil {
		return err
	}

	mgr, err := env.manager(host, d.httpClient)
	if err != nil {
		return fmt.Errorf("create binary manager: %w", err)
	}

	installed, err := mgr.IsInstalled()
	if err != nil {
		return err
	}

	rows := []struct{ label, value string }{
		{"platform:", host.Profile.Kind.String()},
		{"arch:", host.Profile.Arch},
		{"config:", env.cfgPath},
		{"browser:", host.Browser.String()},
		{"cache:", host.Profile.CacheDir},
		{"driver:", mgr.BinaryPath()},
		{"installed:", fmt.Sprint(installed)},
	}
	for _, row := range rows {
		fmt.Fprintf(d.stdout, "  %-11s %s\n", row.label, row.value)
	}
	return nil
}

func printDetectHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: undetected detect [--config PATH]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the detected platform, browser version and driver location.")
}
