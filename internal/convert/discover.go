package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// OutputPrefix starts the name of every converted file. Discovery skips
// such files so converting a directory twice does not feed output back in.
const OutputPrefix = "ConvertedPNLog-"

// IsLogFile reports whether path looks like a PokerNow export.
func IsLogFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, OutputPrefix) || strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".csv", ".txt":
		return true
	}
	return false
}

// Discover expands paths into log files. Files are taken as given;
// directories are walked recursively for files passing IsLogFile. The
// result is sorted and free of duplicates.
func Discover(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(p))
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsLogFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
