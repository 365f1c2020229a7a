package utils

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// maxParentDirs bounds the upward search for configuration files
const maxParentDirs = 20

// FindConfigFile walks up from path (a file or directory) and returns the first
// existing file named one of names, or "" when none is found
func FindConfigFile(fs afero.Fs, path string, names []string) string {
	dir, err := filepath.Abs(path)
	if err != nil {
		dir = filepath.Clean(path)
	}
	if isDir, err := IsDirectory(fs, dir); err != nil || !isDir {
		dir = filepath.Dir(dir)
	}

	for i := 0; i < maxParentDirs; i++ {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if ok, _ := afero.Exists(fs, candidate); ok {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
