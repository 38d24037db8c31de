// Package archive compresses a realized release tree into a distributable
// zip. Entries are written in sorted order with a fixed timestamp so the
// same tree always produces the same archive bytes.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/packforge/packforge/core/fsx"
	"github.com/packforge/packforge/core/release"
)

var deterministicTimestamp = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

const maxEntryBytes = int64(512 * 1024 * 1024)

// Options controls one assembly run. Exclude decides which tree paths must
// never appear in the archive (verification diagnostics, reconcile scratch);
// a nil Exclude falls back to release.IsInternalArtifact. Metadata entries
// (manifest, README) are written at the archive root after the tree.
type Options struct {
	TreeRoot   string
	OutputPath string
	Exclude    func(relativePath string) bool
	Metadata   map[string][]byte
}

type Result struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}

// Assemble writes the archive atomically: the zip is built in memory and
// renamed into place, so a failed run never leaves a partial package.
func Assemble(options Options) (Result, error) {
	exclude := options.Exclude
	if exclude == nil {
		exclude = release.IsInternalArtifact
	}

	treePaths, err := release.ListTree(options.TreeRoot)
	if err != nil {
		return Result{}, fmt.Errorf("enumerate tree: %w", err)
	}

	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)
	entries := 0

	for _, relativePath := range treePaths {
		if exclude(relativePath) {
			continue
		}
		if err := addFileEntry(writer, options.TreeRoot, relativePath); err != nil {
			return Result{}, err
		}
		entries++
	}

	metadataNames := make([]string, 0, len(options.Metadata))
	for name := range options.Metadata {
		metadataNames = append(metadataNames, name)
	}
	sort.Strings(metadataNames)
	for _, name := range metadataNames {
		if err := addByteEntry(writer, name, options.Metadata[name]); err != nil {
			return Result{}, err
		}
		entries++
	}

	if err := writer.Close(); err != nil {
		return Result{}, fmt.Errorf("close archive writer: %w", err)
	}
	if err := fsx.WriteFileAtomic(options.OutputPath, buffer.Bytes(), 0o644); err != nil {
		return Result{}, fmt.Errorf("write archive: %w", err)
	}
	return Result{Path: options.OutputPath, Entries: entries}, nil
}

func addFileEntry(writer *zip.Writer, treeRoot, relativePath string) error {
	fullPath := filepath.Join(treeRoot, filepath.FromSlash(relativePath))
	info, err := os.Stat(fullPath)
	if err != nil {
		return fmt.Errorf("stat entry %s: %w", relativePath, err)
	}
	if info.Size() > maxEntryBytes {
		return fmt.Errorf("entry too large: %s (%d bytes)", relativePath, info.Size())
	}

	entry, err := writer.CreateHeader(&zip.FileHeader{
		Name:     relativePath,
		Method:   zip.Deflate,
		Modified: deterministicTimestamp,
	})
	if err != nil {
		return fmt.Errorf("create entry %s: %w", relativePath, err)
	}
	// #nosec G304 -- entry path comes from walking the build's own tree.
	source, err := os.Open(fullPath)
	if err != nil {
		return fmt.Errorf("open entry %s: %w", relativePath, err)
	}
	defer func() {
		_ = source.Close()
	}()
	if _, err := io.Copy(entry, io.LimitReader(source, maxEntryBytes)); err != nil {
		return fmt.Errorf("write entry %s: %w", relativePath, err)
	}
	return nil
}

func addByteEntry(writer *zip.Writer, name string, content []byte) error {
	entry, err := writer.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: deterministicTimestamp,
	})
	if err != nil {
		return fmt.Errorf("create entry %s: %w", name, err)
	}
	if _, err := entry.Write(content); err != nil {
		return fmt.Errorf("write entry %s: %w", name, err)
	}
	return nil
}
