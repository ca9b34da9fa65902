// Package scratch is a small fallible filesystem collaborator. Every call
// returns a rop.Outcome whose failure is a *fault.Fault stamped with the
// operation and path.
package scratch

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/fault"
)

// Unit is the success payload of operations that produce nothing.
type Unit = struct{}

type FS struct {
	fs  afero.Fs
	dir string
}

// New works under dir on fsys. An empty dir means the fs root / working
// directory.
func New(fsys afero.Fs, dir string) *FS {
	return &FS{fs: fsys, dir: dir}
}

// OS works under dir on the real filesystem.
func OS(dir string) *FS {
	return New(afero.NewOsFs(), dir)
}

// Memory is an in-memory filesystem, handy for tests.
func Memory() *FS {
	return New(afero.NewMemMapFs(), "")
}

func (s *FS) Fs() afero.Fs {
	return s.fs
}

func (s *FS) path(name string) string {
	if s.dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

func ioFault(op, path string, err error) *fault.Fault {
	f := fault.Classify(err).WithStep(op + " " + path)
	if f.Kind == fault.Unknown {
		f.Kind = fault.IO
	}
	return f
}

// Write creates or truncates name with contents.
func (s *FS) Write(name, contents string) rop.Outcome[Unit, *fault.Fault] {
	p := s.path(name)
	if dir := filepath.Dir(p); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return rop.Failure[Unit](ioFault("write", p, err))
		}
	}
	if err := afero.WriteFile(s.fs, p, []byte(contents), 0o644); err != nil {
		return rop.Failure[Unit](ioFault("write", p, err))
	}
	return rop.Success[Unit, *fault.Fault](Unit{})
}

func (s *FS) Read(name string) rop.Outcome[string, *fault.Fault] {
	p := s.path(name)
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return rop.Failure[string](ioFault("read", p, err))
	}
	return rop.Success[string, *fault.Fault](string(data))
}

func (s *FS) Remove(name string) rop.Outcome[Unit, *fault.Fault] {
	p := s.path(name)
	if err := s.fs.Remove(p); err != nil {
		return rop.Failure[Unit](ioFault("remove", p, err))
	}
	return rop.Success[Unit, *fault.Fault](Unit{})
}

// Exists is Absent-free: a stat failure other than not-exist is a failure.
func (s *FS) Exists(name string) rop.Outcome[bool, *fault.Fault] {
	p := s.path(name)
	_, err := s.fs.Stat(p)
	switch {
	case err == nil:
		return rop.Success[bool, *fault.Fault](true)
	case errors.Is(err, fs.ErrNotExist):
		return rop.Success[bool, *fault.Fault](false)
	default:
		return rop.Failure[bool](ioFault("stat", p, err))
	}
}

// TempName returns a collision-free file name with the given prefix.
func (s *FS) TempName(prefix string) string {
	return prefix + "-" + uuid.NewString() + ".tmp"
}

// Cleanup removes every name, ignoring files that are already gone, and
// returns the names it could not remove.
func (s *FS) Cleanup(names ...string) []string {
	var left []string
	for _, n := range names {
		res := s.Remove(n)
		if res.IsFailure() && res.Reason().Kind != fault.NotFound {
			left = append(left, n)
		}
	}
	return left
}

// TempDir makes a fresh directory on the OS temp dir and returns an FS
// rooted there.
func TempDir(pattern string) rop.Outcome[*FS, *fault.Fault] {
	osFs := afero.NewOsFs()
	dir, err := afero.TempDir(osFs, "", pattern)
	if err != nil {
		return rop.Failure[*FS](ioFault("mkdtemp", pattern, err))
	}
	return rop.Success[*FS, *fault.Fault](New(osFs, dir))
}

// Dir returns the directory the FS works under.
func (s *FS) Dir() string {
	return s.dir
}
