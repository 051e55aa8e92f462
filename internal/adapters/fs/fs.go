package fs

import (
	"io"
	iofs "io/fs"
)

type FileSystem interface {
	Create(path string) (io.WriteCloser, error)
	MkdirAll(path string, perm iofs.FileMode) error
	Remove(path string) error
	ReadDir(path string) ([]iofs.DirEntry, error)
	WalkDir(root string, fn iofs.WalkDirFunc) error
}
