// Package binary acquires a chromedriver matching the installed browser,
// removes its automation-detection marker, and keeps the patched copy in a
// per-user cache directory.
//
// # Cache Layout
//
// Everything lives directly under the platform profile's cache directory:
//   - <version>.zip: the downloaded driver archive
//   - <version>/: the transient extraction directory
//   - undetected_<version>_chromedriver[.exe]: the patched driver
//
// Only the patched driver survives a successful run. Cleanup removes every
// directory and every other file, so switching browser versions replaces the
// previous driver. The cache directory is not locked; concurrent processes
// sharing it can race on download, extraction and cleanup.
//
// # Patching
//
// The driver embeds a script fragment of the form {window.cdc...;} that sites
// probe for. The patcher overwrites the first occurrence with a no-op
// statement padded with spaces to the exact same length, so offsets inside
// the executable do not move. A driver without the marker is copied as-is.
//
// # Usage
//
//	host, err := binary.DetectHost(ctx, profile, chrome.ExecRunner{})
//	if err != nil {
//	    return err
//	}
//
//	mgr, err := binary.NewManager(binary.Config{
//	    Host:     host,
//	    Resolver: release.New(release.Config{}),
//	})
//	if err != nil {
//	    return err
//	}
//
//	path, err := mgr.Ensure(ctx)
//
// # Architecture
//
// The package is organized into several components:
//   - Manager: orchestrates the auto and explicit-file flows
//   - Downloader: idempotent HTTP download into the cache directory
//   - Extractor: zip extraction with path-traversal defense
//   - Patcher: length-preserving marker replacement
//   - Cleanup: best-effort removal of everything but the current driver
package binary
