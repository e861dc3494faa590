package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/plus3it/gorecurcopy"
)

// EnsureFolder creates path and its parents if they don't exist.
func EnsureFolder(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return errors.Wrapf(err, "failed to create folder %s", path)
	}
	return nil
}

// CopyFolder copies the contents of src into dst, creating dst first.
func CopyFolder(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", src)
	}
	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", src)
	}
	if err := EnsureFolder(dst); err != nil {
		return err
	}
	if err := gorecurcopy.CopyDirectory(src, dst); err != nil {
		return errors.Wrapf(err, "failed to copy %s to %s", src, dst)
	}
	return nil
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsRegularFile reports whether path is a regular file, following symlinks.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Stem returns the file name without its final extension.
// Dotfiles such as ".profile" keep their whole name.
func Stem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// Suffix returns the final extension of the file name, or "" for names
// like ".txt" where the only dot starts the name.
func Suffix(path string) string {
	base := filepath.Base(path)
	if Stem(base) == base {
		return ""
	}
	return filepath.Ext(base)
}

// PairName derives the name shared by an original and optimized log pair:
// the log's stem with the first "_log" removed.
func PairName(logPath string) string {
	return strings.Replace(Stem(logPath), LogSuffix, "", 1)
}
