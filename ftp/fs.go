package ftp

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/sagarc03/softserve/filesystem"
)

// rootFs adapts the io/fs view of a Root to afero. FTP clients send rooted
// paths ("/a/b") while io/fs only accepts unrooted ones.
type rootFs struct {
	afero.FromIOFS
}

// NewFs returns a read-only afero.Fs over root.
func NewFs(root *filesystem.Root) afero.Fs {
	return afero.NewReadOnlyFs(rootFs{afero.FromIOFS{FS: root.FS()}})
}

func (r rootFs) Open(name string) (afero.File, error) {
	return r.FromIOFS.Open(fsPath(name))
}

func (r rootFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	return r.FromIOFS.OpenFile(fsPath(name), flag, perm)
}

func (r rootFs) Stat(name string) (os.FileInfo, error) {
	return r.FromIOFS.Stat(fsPath(name))
}

func (rootFs) Name() string {
	return "softserve"
}

func fsPath(name string) string {
	p := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(name)), "/")
	if p == "" {
		return "."
	}
	return p
}
