// Package release realizes an expected file set on disk and proves the
// realized tree matches it.
package release

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	coreerrors "github.com/packforge/packforge/core/errors"
	"github.com/packforge/packforge/core/placement"
)

// MissingArtifact records one expected binary that was absent from the
// source pool. Collected, not fatal, so one run surfaces every gap.
type MissingArtifact struct {
	RelativePath string `json:"relative_path"`
	RecordID     string `json:"record_id"`
	SourceName   string `json:"source_name"`
}

type ExecuteResult struct {
	Copied  int               `json:"copied"`
	Missing []MissingArtifact `json:"missing,omitempty"`
}

// Err returns the aggregate failure when any expected artifact was missing
// after the executor finished placing everything it could find.
func (r ExecuteResult) Err() error {
	if len(r.Missing) == 0 {
		return nil
	}
	return coreerrors.Wrap(
		fmt.Errorf("%d expected artifacts missing from source pool", len(r.Missing)),
		coreerrors.CategoryArtifactMissing, "source_artifact_missing",
		"re-run the downloader to populate the cache", true)
}

// Execute copies every expected entry from a flat source pool (keyed by
// filename, no path segments) into its resolved destination, creating
// directories as needed. Bytes are preserved exactly. Missing sources are
// collected per entry; real I/O failures abort the run.
func Execute(expected []placement.ExpectedFileEntry, sourceDir, destRoot string) (ExecuteResult, error) {
	result := ExecuteResult{}
	for _, entry := range expected {
		sourceName := path.Base(entry.RelativePath)
		sourcePath := filepath.Join(sourceDir, sourceName)
		if _, err := os.Stat(sourcePath); err != nil {
			if os.IsNotExist(err) {
				result.Missing = append(result.Missing, MissingArtifact{
					RelativePath: entry.RelativePath,
					RecordID:     entry.RecordID,
					SourceName:   sourceName,
				})
				continue
			}
			return result, coreerrors.Wrap(fmt.Errorf("stat %s: %w", sourcePath, err),
				coreerrors.CategoryIOFailure, "stat_failed", "", true)
		}
		destPath := filepath.Join(destRoot, filepath.FromSlash(entry.RelativePath))
		if err := os.MkdirAll(filepath.Dir(destPath), 0o750); err != nil {
			return result, coreerrors.Wrap(fmt.Errorf("create destination directory: %w", err),
				coreerrors.CategoryIOFailure, "mkdir_failed", "", true)
		}
		if err := copyFile(sourcePath, destPath); err != nil {
			return result, coreerrors.Wrap(fmt.Errorf("copy %s: %w", entry.RelativePath, err),
				coreerrors.CategoryIOFailure, "copy_failed", "", true)
		}
		result.Copied++
	}
	return result, nil
}

func copyFile(sourcePath, destPath string) error {
	// #nosec G304 -- source path is the configured artifact pool plus a bare filename.
	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() {
		_ = source.Close()
	}()

	// #nosec G304 -- destination path is derived from the resolved expected set.
	dest, err := os.OpenFile(destPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("open destination: %w", err)
	}
	if _, err := io.Copy(dest, source); err != nil {
		_ = dest.Close()
		return fmt.Errorf("copy bytes: %w", err)
	}
	if err := dest.Sync(); err != nil {
		_ = dest.Close()
		return fmt.Errorf("sync destination: %w", err)
	}
	return dest.Close()
}
