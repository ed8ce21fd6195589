package document

import (
	"os"
	"path/filepath"
	"strings"
)

// Scan walks dir and returns every proposal file it finds, skipping
// hidden files and directories. A missing dir yields no files.
func Scan(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, err := FormatOf(path); err != nil {
			return nil //nolint:nilerr // not a proposal file
		}
		files = append(files, path)
		return nil
	})
	return files, err
}
