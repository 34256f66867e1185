package main

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// patchOptions are the parsed flags of `undetected patch`.
type patchOptions struct {
	driver     string
	configPath string
	help       bool
}

// parsePatchArgs parses `patch` flags. Both "--flag value" and
// "--flag=value" forms are accepted.
func parsePatchArgs(args []string) (patchOptions, error) {
	var opts patchOptions

	for i := 0; i < len(args); i++ {
		arg := args[i]

		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "--help", "-h":
			opts.help = true
			continue
		case "--driver", "--config":
		default:
			return opts, fmt.Errorf("unknown argument: %s", arg)
		}

		if !hasValue {
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value", name)
			}
			i++
			value = args[i]
		}

		if name == "--driver" {
			opts.driver = value
		} else {
			opts.configPath = value
		}
	}

	return opts, nil
}

// runPatch handles the `undetected patch` subcommand
func runPatch(ctx context.Context, d deps, args []string) error {
	opts, err := parsePatchArgs(args)
	if err != nil {
		return err
	}

	if opts.help {
		printPatchHelp(d.stdout)
		return nil
	}

	env, err := loadEnvironment(ctx, d, opts.configPath)
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

	driver := opts.driver
	if driver == "" {
		driver = env.cfg.Driver
	}

	var path string
	if driver != "" {
		env.log.Info().Str("driver", driver).Msg("patching local driver")
		path, err = mgr.PatchFile(ctx, driver)
	} else {
		path, err = mgr.Ensure(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(d.stdout, path)
	return nil
}

func printPatchHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: undetected patch [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ensure a patched chromedriver matching the installed browser exists")
	fmt.Fprintln(w, "and print its path.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --driver PATH   Patch this chromedriver instead of downloading one")
	fmt.Fprintln(w, "  --config PATH   Read configuration from PATH")
	fmt.Fprintln(w, "  --help, -h      Show this help")
}
