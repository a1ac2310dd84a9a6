// Package fs writes exported indexes to disk.
package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/javadex"
)

// Ensure File implements io.Writer at compile time.
var _ io.Writer = (*File)(nil)

// File is an output file with atomic update semantics. Writes go to a
// temporary file in the target directory, which Commit renames into place.
// An existing file at the target path is untouched until Commit.
type File struct {
	path string
	tmp  *os.File
	done bool
}

// Create opens a temporary file next to path.
func Create(path string) (*File, error) {
	if path == "" {
		return nil, javadex.Errorf(javadex.EINVALID, "output path required")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &File{path: path, tmp: tmp}, nil
}

// Path returns the final path of the file.
func (f *File) Path() string {
	return f.path
}

func (f *File) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Commit flushes the temporary file and renames it to the final path.
func (f *File) Commit() error {
	if f.done {
		return nil
	}
	f.done = true

	if err := f.tmp.Sync(); err != nil {
		_ = f.tmp.Close()
		_ = os.Remove(f.tmp.Name())
		return err
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(f.tmp.Name())
		return err
	}
	if err := os.Chmod(f.tmp.Name(), 0644); err != nil {
		_ = os.Remove(f.tmp.Name())
		return err
	}
	return os.Rename(f.tmp.Name(), f.path)
}

// Abort discards the temporary file. It is a no-op after Commit.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true

	_ = f.tmp.Close()
	return os.Remove(f.tmp.Name())
}
