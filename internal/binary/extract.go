package binary

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/undetected/internal/types"
)

// Extractor handles archive extraction
type Extractor struct {
	logger Logger
}

// NewExtractor creates a new extractor
func NewExtractor(logger Logger) *Extractor {
	return &Extractor{logger: orNoop(logger)}
}

// ExtractZip extracts a .zip archive to a destination directory.
// Entries that would resolve outside destDir are skipped without error, as
// are symlink entries.
func (e *Extractor) ExtractZip(archivePath, destDir string) error {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return types.ArchiveExtraction("open archive", err)
	}
	defer archive.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return types.ArchiveExtraction("create dest dir", err)
	}

	root := filepath.Clean(destDir)

	for _, entry := range archive.File {
		target := filepath.Join(root, entry.Name)

		// Security check: prevent path traversal
		if !isWithin(root, target) {
			e.logger.Debug("skipping archive entry outside destination", "entry", entry.Name)
			continue
		}

		mode := entry.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0755); err != nil {
				return types.ArchiveExtraction("create directory", err)
			}

		case mode&fs.ModeSymlink != 0:
			e.logger.Debug("skipping symlink archive entry", "entry", entry.Name)

		default:
			if err := writeEntry(entry, target); err != nil {
				return types.ArchiveExtraction("extract "+entry.Name, err)
			}
		}
	}

	return nil
}

// writeEntry streams a zip entry into a newly created file at target.
func writeEntry(entry *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open entry: %w", err)
	}
	defer src.Close()

	perm := entry.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(outFile, src); err != nil {
		outFile.Close()
		return fmt.Errorf("write file: %w", err)
	}

	return outFile.Close()
}

// isWithin reports whether target is root or lies below it. Both paths must
// already be clean.
func isWithin(root, target string) bool {
	if target == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	return strings.HasPrefix(target, prefix)
}

// FindDriver searches root for a regular file named name, ignoring case.
// The walk is depth-first in lexical order and the first match wins, so the
// result does not depend on directory iteration order.
func (e *Extractor) FindDriver(root, name string) (string, bool, error) {
	var found string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && strings.EqualFold(d.Name(), name) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", false, types.ArchiveExtraction("search extracted files", err)
	}

	return found, found != "", nil
}

// ExtractDriver extracts archivePath into destDir and returns the path of
// the driver named name inside it.
func (e *Extractor) ExtractDriver(archivePath, destDir, name string) (string, error) {
	if err := e.ExtractZip(archivePath, destDir); err != nil {
		return "", err
	}

	path, ok, err := e.FindDriver(destDir, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", types.ArchiveExtraction("locate driver",
			errors.New(name+" not found in archive"))
	}

	e.logger.Debug("located driver in archive", "path", path)
	return path, nil
}
