// Package chrome detects the version of the locally installed browser.
package chrome

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/ZebulonRouseFrantzich/undetected/internal/types"
	"github.com/ZebulonRouseFrantzich/undetected/internal/version"
)

// Markers identifying the line of command output that carries the version.
const (
	productMarker = "Google Chrome"
	versionMarker = "version"
)

// versionRegex requires a major component of at least three digits followed
// by one or more dot-separated numeric groups.
var versionRegex = regexp.MustCompile(`[1-9][0-9]{2,}(?:\.[0-9]+)+`)

// Runner runs argv and returns its standard output.
// It must return an error only when the process could not be run at all;
// a non-zero exit status with usable output is not an error.
type Runner interface {
	Run(ctx context.Context, argv []string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run starts argv and collects its standard output.
func (ExecRunner) Run(ctx context.Context, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, nil
		}
		return nil, err
	}
	return out, nil
}

// DetectInstalled runs the version-query command and parses the browser
// version from its output.
func DetectInstalled(ctx context.Context, runner Runner, argv []string) (version.Version, error) {
	if runner == nil {
		runner = ExecRunner{}
	}

	out, err := runner.Run(ctx, argv)
	if err != nil {
		return version.Version{}, types.VersionDetection("run browser",
			fmt.Errorf("have you installed Google Chrome? %w", err))
	}

	raw, err := ExtractVersion(out)
	if err != nil {
		return version.Version{}, types.VersionDetection("parse browser output", err)
	}

	return version.Parse(raw), nil
}

// ExtractVersion selects the last output line containing a product or
// version marker and returns the version string found on it.
func ExtractVersion(output []byte) (string, error) {
	var line string
	found := false

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		text := scanner.Text()
		if strings.Contains(text, productMarker) || strings.Contains(text, versionMarker) {
			line = text
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read output: %w", err)
	}

	if !found {
		return "", errors.New("couldn't find version line in output")
	}

	match := versionRegex.FindString(line)
	if match == "" {
		return "", fmt.Errorf("couldn't determine Chrome version from %q", strings.TrimSpace(line))
	}
	return match, nil
}
