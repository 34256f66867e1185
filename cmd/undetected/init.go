package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/undetected/internal/config"
)

// runInit handles the `undetected init` subcommand: it writes a commented
// config template to the default (or given) config path.
func runInit(d deps, args []string) error {
	path := ""
	force := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			printInitHelp(d.stdout)
			return nil
		case "--force", "-f":
			force = true
		case "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a value")
			}
			i++
			path = args[i]
		default:
			return fmt.Errorf("unknown argument: %s", args[i])
		}
	}

	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	content, err := config.NewGenerator().Generate(&config.Config{})
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(d.stdout, "Wrote %s\n", path)
	return nil
}

func printInitHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: undetected init [--config PATH] [--force]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a commented configuration template.")
}
