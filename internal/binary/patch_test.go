package binary

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/undetected/internal/types"
)

const sampleMarker = `{window.cdc_adoQpoasnfa76pfcZLmcfl_Array = window.Array; window.cdc_adoQpoasnfa76pfcZLmcfl_Promise = window.Promise;}`

func TestPatchBytes(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        string
		wantPatched bool
	}{
		{
			name:        "marker_replaced_and_padded",
			content:     "prefix" + sampleMarker + "suffix",
			want:        "prefix" + Replacement + strings.Repeat(" ", len(sampleMarker)-len(Replacement)) + "suffix",
			wantPatched: true,
		},
		{
			name:        "exact_length_marker",
			content:     "a{window.cdc_01234567890123456789012345678901;}b",
			want:        "a" + Replacement + "b",
			wantPatched: true,
		},
		{
			name:    "no_marker",
			content: "plain driver bytes {window.other;}",
			want:    "plain driver bytes {window.other;}",
		},
		{
			name:    "marker_split_across_lines",
			content: "{window.cdc_abc\n = 1;}",
			want:    "{window.cdc_abc\n = 1;}",
		},
		{
			name:    "marker_split_by_carriage_return",
			content: "{window.cdc_" + strings.Repeat("a", 40) + "\r;}",
			want:    "{window.cdc_" + strings.Repeat("a", 40) + "\r;}",
		},
		{
			name:    "marker_split_by_next_line_byte",
			content: "{window.cdc_a\x85" + strings.Repeat("b", 40) + ";}",
			want:    "{window.cdc_a\x85" + strings.Repeat("b", 40) + ";}",
		},
		{
			name:        "later_marker_after_broken_one",
			content:     "{window.cdc_a\x85" + sampleMarker,
			want:        "{window.cdc_a\x85" + Replacement + strings.Repeat(" ", len(sampleMarker)-len(Replacement)),
			wantPatched: true,
		},
		{
			name:        "high_bytes_inside_marker",
			content:     "{window.cdc_\xe9\xff\x80" + strings.Repeat("a", 40) + ";}",
			want:        Replacement + strings.Repeat(" ", 57-len(Replacement)),
			wantPatched: true,
		},
		{
			name:        "only_first_occurrence",
			content:     sampleMarker + "|" + sampleMarker,
			want:        Replacement + strings.Repeat(" ", len(sampleMarker)-len(Replacement)) + "|" + sampleMarker,
			wantPatched: true,
		},
		{
			name:        "shortest_match",
			content:     "{window.cdc_" + strings.Repeat("a", 48) + ";}x;}",
			want:        Replacement + strings.Repeat(" ", 62-len(Replacement)) + "x;}",
			wantPatched: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []byte(tt.content)
			original := bytes.Clone(input)

			got, result, err := PatchBytes(input, []byte(Replacement))
			if err != nil {
				t.Fatalf("PatchBytes() error = %v", err)
			}

			if string(got) != tt.want {
				t.Errorf("PatchBytes() =\n%q\nwant\n%q", got, tt.want)
			}
			if len(got) != len(input) {
				t.Errorf("length changed: got %d, want %d", len(got), len(input))
			}
			if result.Patched != tt.wantPatched {
				t.Errorf("Patched = %v, want %v", result.Patched, tt.wantPatched)
			}
			if result.Size != int64(len(input)) {
				t.Errorf("Size = %d, want %d", result.Size, len(input))
			}
			if !bytes.Equal(input, original) {
				t.Error("input slice was modified")
			}
		})
	}
}

func TestPatchBytesPreservesArbitraryBytes(t *testing.T) {
	var content []byte
	for i := 0; i < 256; i++ {
		content = append(content, byte(i))
	}
	head := bytes.Clone(content)
	content = append(content, []byte(sampleMarker)...)
	content = append(content, head...)

	got, result, err := PatchBytes(content, []byte(Replacement))
	if err != nil {
		t.Fatalf("PatchBytes() error = %v", err)
	}

	if !result.Patched || result.Offset != 256 || result.Length != len(sampleMarker) {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !bytes.Equal(got[:256], head) || !bytes.Equal(got[256+len(sampleMarker):], head) {
		t.Error("bytes outside the marker were altered")
	}

	t.Run("no_marker_is_identical", func(t *testing.T) {
		got, result, err := PatchBytes(head, []byte(Replacement))
		if err != nil {
			t.Fatalf("PatchBytes() error = %v", err)
		}
		if result.Patched {
			t.Error("expected no patch")
		}
		if !bytes.Equal(got, head) {
			t.Error("output differs from input")
		}
	})
}

func TestPatchBytesReplacementTooLong(t *testing.T) {
	content := []byte("xx{window.cdc_a;}yy")

	_, _, err := PatchBytes(content, []byte(Replacement))
	if !errors.Is(err, types.ErrPatch) {
		t.Errorf("error = %v, want ErrPatch", err)
	}
}

func TestPatcherPatch(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "src", "chromedriver")
	output := filepath.Join(dir, "out", "undetected_120.0.1_chromedriver")

	if err := os.MkdirAll(filepath.Dir(input), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := []byte("\x7fELF" + sampleMarker + "\x00\x01")
	if err := os.WriteFile(input, content, 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	result, err := NewPatcher(nil).Patch(input, output)
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if !result.Patched {
		t.Error("expected marker to be patched")
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(got) != len(content) {
		t.Errorf("output length = %d, want %d", len(got), len(content))
	}
	if bytes.Contains(got, []byte("window.cdc")) {
		t.Error("output still contains the marker")
	}

	untouched, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	if !bytes.Equal(untouched, content) {
		t.Error("input file was modified")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(output)
		if err != nil {
			t.Fatalf("stat output: %v", err)
		}
		if info.Mode().Perm()&0111 == 0 {
			t.Errorf("output is not executable: %v", info.Mode())
		}
	}
}

func TestPatcherPatchTruncatesExisting(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "chromedriver")
	output := filepath.Join(dir, "patched")

	if err := os.WriteFile(input, []byte("short"), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if err := os.WriteFile(output, bytes.Repeat([]byte("x"), 4096), 0644); err != nil {
		t.Fatalf("write output: %v", err)
	}

	if _, err := NewPatcher(nil).Patch(input, output); err != nil {
		t.Fatalf("Patch() error = %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "short" {
		t.Errorf("output = %q, want %q", got, "short")
	}
}

func TestPatcherPatchInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chromedriver")
	content := []byte("head" + sampleMarker + "tail")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewPatcher(nil).Patch(path, path); err != nil {
		t.Fatalf("Patch() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "head" + Replacement + strings.Repeat(" ", len(sampleMarker)-len(Replacement)) + "tail"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPatcherPatchMissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := NewPatcher(nil).Patch(filepath.Join(dir, "missing"), filepath.Join(dir, "out"))
	if !errors.Is(err, types.ErrPatch) {
		t.Errorf("error = %v, want ErrPatch", err)
	}
}

func TestSetExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := SetExecutable(path); err != nil {
		t.Fatalf("SetExecutable() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}
