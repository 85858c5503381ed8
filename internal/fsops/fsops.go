package fsops

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FS is the slice of filesystem behaviour the configuration loader and handoff sinks need.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error
}

// ---------- OS-backed implementation ----------

type OS struct{}

func NewOS() OS { return OS{} }

func (OS) ReadFile(name string) ([]byte, error) { return os.ReadFile(filepath.Clean(name)) }
func (OS) WriteFile(name string, b []byte, p os.FileMode) error {
	return os.WriteFile(filepath.Clean(name), b, p)
}
func (OS) Rename(a, b string) error                  { return os.Rename(a, b) }
func (OS) Remove(name string) error                  { return os.Remove(filepath.Clean(name)) }
func (OS) MkdirAll(path string, p os.FileMode) error { return os.MkdirAll(filepath.Clean(path), p) }

// ---------- In-memory implementation (for tests/integration) ----------

type Mem struct{ Fs afero.Fs }

func NewMem() Mem { return Mem{Fs: afero.NewMemMapFs()} }

func (m Mem) ReadFile(name string) ([]byte, error) { return afero.ReadFile(m.Fs, filepath.Clean(name)) }
func (m Mem) WriteFile(name string, b []byte, p os.FileMode) error {
	return afero.WriteFile(m.Fs, filepath.Clean(name), b, p)
}
func (m Mem) Rename(a, b string) error { return m.Fs.Rename(a, b) }
func (m Mem) Remove(name string) error { return m.Fs.Remove(filepath.Clean(name)) }
func (m Mem) MkdirAll(path string, p os.FileMode) error {
	return m.Fs.MkdirAll(filepath.Clean(path), p)
}

// ---------- High-level façade used by handoff sinks ----------

type Ops struct{ FS FS }

func NewOps(fs FS) Ops { return Ops{FS: fs} }

func (o Ops) EnsureDir(path string) error { return o.FS.MkdirAll(filepath.Dir(path), 0o755) }

// WriteFileAtomic writes data next to path and renames it into place so readers
// never observe a partially written file.
func (o Ops) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := o.EnsureDir(path); err != nil {
		return err
	}
	temporaryPath := path + ".tmp"
	if err := o.FS.WriteFile(temporaryPath, data, perm); err != nil {
		return err
	}
	if err := o.FS.Rename(temporaryPath, path); err != nil {
		_ = o.FS.Remove(temporaryPath)
		return err
	}
	return nil
}
