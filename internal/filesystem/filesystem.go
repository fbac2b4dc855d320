// Package filesystem archives ingestion exports as content-addressed files.
package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cardcol/cardcol/internal/config"
)

const hashPrefixLen = 12

var ensureOnce sync.Once

// ensureExportsDir initialises the exports directory the first time it is needed.
func ensureExportsDir() error {
	var setupErr error
	ensureOnce.Do(func() {
		setupErr = os.MkdirAll(config.GetExportsDir(), 0o750)
	})
	return setupErr
}

// GetSeriesDir returns the directory that stores exports for one series.
func GetSeriesDir(series string) string {
	return filepath.Join(config.GetExportsDir(), config.EncodeSeriesName(series))
}

// SaveExport writes content under the series directory, named by its hash, and
// returns the file path and full hash. Saving identical content twice is a no-op.
func SaveExport(series, ext, content string) (string, string, error) {
	if err := ensureExportsDir(); err != nil {
		return "", "", err
	}

	seriesDir := GetSeriesDir(series)
	if err := os.MkdirAll(seriesDir, 0o750); err != nil {
		return "", "", err
	}

	hash := calculateHash(content)
	filePath := getFilePath(series, hash, ext)
	if ok, err := VerifyFile(filePath, hash); err == nil && ok {
		return filePath, hash, nil
	}

	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		return "", "", err
	}

	return filePath, hash, nil
}

// ReadFile reads a file from disk and returns its contents as a string.
func ReadFile(path string) (string, error) {
	//nolint:gosec // G304: path is chosen by the operator or built from the exports dir
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// FileExists reports whether the given path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// VerifyFile ensures the file exists and its SHA-256 hash matches the expected hash.
func VerifyFile(path, expectedHash string) (bool, error) {
	if !FileExists(path) {
		return false, nil
	}

	content, err := ReadFile(path)
	if err != nil {
		return false, err
	}

	return calculateHash(content) == expectedHash, nil
}

// VerifyExport checks that an archived export still hashes to the prefix in its name.
func VerifyExport(path string) (bool, error) {
	content, err := ReadFile(path)
	if err != nil {
		return false, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return name != "" && strings.HasPrefix(calculateHash(content), name), nil
}

// DeleteSeriesExports removes every archived export of a series.
func DeleteSeriesExports(series string) error {
	dir := GetSeriesDir(series)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(dir)
}

// WalkFunc explores each entry under a series directory.
type WalkFunc func(path string, d fs.DirEntry) error

// WalkSeriesFiles iterates over all files in a series directory.
func WalkSeriesFiles(series string, fn WalkFunc) error {
	dir := GetSeriesDir(series)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := fn(filepath.Join(dir, entry.Name()), entry); err != nil {
			return err
		}
	}

	return nil
}

// ListSeriesExports returns the archived export paths of a series, sorted.
func ListSeriesExports(series string) ([]string, error) {
	var paths []string
	err := WalkSeriesFiles(series, func(path string, d fs.DirEntry) error {
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func getFilePath(series, hash, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "json"
	}
	return filepath.Join(GetSeriesDir(series), hash[:hashPrefixLen]+"."+ext)
}

func calculateHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
