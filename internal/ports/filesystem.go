package ports

import (
	"os"
)

// FileSystem provides the file system operations removal steps rely on.
// Paths are always absolute; nothing in this tool works relative to the
// current directory.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	IsDir(path string) bool
	Remove(path string) error
	RemoveAll(path string) error
	Rename(oldPath, newPath string) error
	CopyFile(src, dest string) error
	Glob(pattern string) ([]string, error)
}
