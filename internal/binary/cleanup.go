package binary

import (
	"os"
	"path/filepath"
	"strings"
)

// Removal functions, replaced in tests.
var (
	removeFile = os.Remove
	removeTree = os.RemoveAll
)

// Cleanup removes every directory directly under cacheDir and every file
// whose name is not keep (compared case-insensitively). Failures are logged
// and skipped; the number of removed entries is returned.
func Cleanup(cacheDir, keep string, logger Logger) int {
	logger = orNoop(logger)

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		logger.Warn("cache cleanup skipped", "dir", cacheDir, "error", err)
		return 0
	}

	removed := 0
	for _, entry := range entries {
		path := filepath.Join(cacheDir, entry.Name())

		var err error
		switch {
		case entry.IsDir():
			err = removeTree(path)
		case !strings.EqualFold(entry.Name(), keep):
			err = removeFile(path)
		default:
			continue
		}

		if err != nil {
			logger.Warn("failed to remove cache entry", "path", path, "error", err)
			continue
		}
		logger.Debug("removed cache entry", "path", path)
		removed++
	}

	return removed
}
