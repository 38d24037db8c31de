package release

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const maxListedEntryBytes = int64(64 * 1024 * 1024)

// ListTree enumerates every regular file under root as a sorted list of
// slash-separated relative paths.
func ListTree(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(currentPath string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		relative, relErr := filepath.Rel(root, currentPath)
		if relErr != nil {
			return relErr
		}
		paths = append(paths, filepath.ToSlash(relative))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("walk release tree: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// ReadZipEntry returns the content of one named archive entry, with a
// found flag so callers can treat absence as a normal condition.
func ReadZipEntry(archivePath, name string) ([]byte, bool, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, false, fmt.Errorf("open archive: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, entry := range reader.File {
		if filepath.ToSlash(entry.Name) != name {
			continue
		}
		source, err := entry.Open()
		if err != nil {
			return nil, false, fmt.Errorf("open entry %s: %w", name, err)
		}
		content, err := io.ReadAll(io.LimitReader(source, maxListedEntryBytes))
		_ = source.Close()
		if err != nil {
			return nil, false, fmt.Errorf("read entry %s: %w", name, err)
		}
		return content, true, nil
	}
	return nil, false, nil
}

// ListZip enumerates the file entries of an assembled archive as sorted
// slash-separated paths, directories excluded.
func ListZip(archivePath string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	var paths []string
	for _, entry := range reader.File {
		name := filepath.ToSlash(entry.Name)
		if strings.HasSuffix(name, "/") || entry.FileInfo().IsDir() {
			continue
		}
		paths = append(paths, name)
	}
	sort.Strings(paths)
	return paths, nil
}
