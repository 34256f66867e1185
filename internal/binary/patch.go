package binary

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/undetected/internal/types"
)

// Replacement is the statement written over the detection marker before
// padding.
const Replacement = `{console.log("undetected chromedriver 1337!")}`

var (
	markerPrefix = []byte("{window.cdc")
	markerSuffix = []byte(";}")
)

// findMarker locates the injected detection marker: "{window.cdc", then the
// shortest run of bytes up to ";}" that stays on one line. The driver is
// treated as ISO-8859-1 text, so '\n', '\r' and NEL (0x85) end a line. The
// earliest prefix that completes wins.
func findMarker(content []byte) (start, end int, ok bool) {
	for from := 0; ; {
		i := bytes.Index(content[from:], markerPrefix)
		if i < 0 {
			return 0, 0, false
		}
		start = from + i

		for j := start + len(markerPrefix); j < len(content); j++ {
			if isLineBreak(content[j]) {
				break
			}
			if bytes.HasPrefix(content[j:], markerSuffix) {
				return start, j + len(markerSuffix), true
			}
		}
		from = start + 1
	}
}

func isLineBreak(b byte) bool {
	return b == '\n' || b == '\r' || b == 0x85
}

// Patcher rewrites the detection marker inside a driver binary.
type Patcher struct {
	replacement []byte
	logger      Logger
}

// NewPatcher creates a patcher using Replacement.
func NewPatcher(logger Logger) *Patcher {
	return &Patcher{
		replacement: []byte(Replacement),
		logger:      orNoop(logger),
	}
}

// PatchBytes replaces the first detection marker in content with
// replacement padded by ASCII spaces to the marker's length. The returned
// slice always has the same length as content; content is not modified.
// Without a marker, the result is an unmodified copy.
func PatchBytes(content, replacement []byte) ([]byte, PatchResult, error) {
	out := make([]byte, len(content))
	copy(out, content)

	start, end, ok := findMarker(content)
	if !ok {
		return out, PatchResult{Size: int64(len(out))}, nil
	}

	length := end - start
	if len(replacement) > length {
		return nil, PatchResult{}, types.Patch("build replacement",
			fmt.Errorf("replacement is %d bytes but marker is only %d", len(replacement), length))
	}

	n := copy(out[start:end], replacement)
	for i := start + n; i < end; i++ {
		out[i] = ' '
	}

	return out, PatchResult{
		Patched: true,
		Offset:  start,
		Length:  length,
		Size:    int64(len(out)),
	}, nil
}

// Patch reads the driver at inputPath and writes the patched copy to
// outputPath, truncating anything already there, then marks it executable.
// inputPath and outputPath may be the same file.
func (p *Patcher) Patch(inputPath, outputPath string) (PatchResult, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return PatchResult{}, types.Patch("read driver", err)
	}

	patched, result, err := PatchBytes(content, p.replacement)
	if err != nil {
		return PatchResult{}, err
	}

	if result.Patched {
		p.logger.Debug("replaced detection marker", "offset", result.Offset, "length", result.Length)
	} else {
		p.logger.Warn("detection marker not found, copying driver unchanged", "path", inputPath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return PatchResult{}, types.Patch("create output dir", err)
	}

	if err := writeTruncate(outputPath, patched); err != nil {
		return PatchResult{}, types.Patch("write driver", err)
	}

	if err := SetExecutable(outputPath); err != nil {
		return PatchResult{}, types.Patch("mark driver executable", err)
	}

	return result, nil
}

// writeTruncate writes data to path, truncating any prior content.
func writeTruncate(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SetExecutable sets executable permissions on a file
func SetExecutable(path string) error {
	// Set permissions to 0755 (rwxr-xr-x)
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
