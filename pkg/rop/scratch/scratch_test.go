package scratch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/outcome/pkg/rop/fault"
)

func TestFS_WriteRead(t *testing.T) {
	t.Parallel()

	s := Memory()
	require.True(t, s.Write("nested/dir/n.txt", "42").IsSuccess())

	got := s.Read("nested/dir/n.txt")
	assert.Equal(t, "42", got.Unwrap())

	exists, err := afero.Exists(s.Fs(), "nested/dir/n.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFS_ReadMissing(t *testing.T) {
	t.Parallel()

	res := Memory().Read("missing.txt")
	require.True(t, res.IsFailure())
	assert.Equal(t, fault.NotFound, res.Reason().Kind)
	assert.Equal(t, "read missing.txt", res.Reason().Step)
	assert.ErrorIs(t, res.Reason(), os.ErrNotExist)
}

func TestFS_PermissionDenied(t *testing.T) {
	t.Parallel()

	s := New(afero.NewReadOnlyFs(afero.NewMemMapFs()), "")
	res := s.Write("x.txt", "1")
	require.True(t, res.IsFailure())
	assert.Equal(t, fault.PermissionDenied, res.Reason().Kind)
	assert.True(t, strings.HasPrefix(res.Reason().Step, "write"))
}

func TestFS_RemoveAndExists(t *testing.T) {
	t.Parallel()

	s := Memory()
	require.True(t, s.Write("a.txt", "a").IsSuccess())
	assert.True(t, s.Exists("a.txt").Unwrap())

	require.True(t, s.Remove("a.txt").IsSuccess())
	assert.False(t, s.Exists("a.txt").Unwrap())

	again := s.Remove("a.txt")
	assert.Equal(t, fault.NotFound, again.Reason().Kind)
}

func TestFS_TempNameAndCleanup(t *testing.T) {
	t.Parallel()

	s := Memory()
	a, b := s.TempName("job"), s.TempName("job")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "job-"))
	assert.True(t, strings.HasSuffix(a, ".tmp"))

	require.True(t, s.Write(a, "x").IsSuccess())
	assert.Empty(t, s.Cleanup(a, b), "missing files are not left over")
	assert.False(t, s.Exists(a).Unwrap())

	ro := New(afero.NewReadOnlyFs(s.Fs()), "")
	require.True(t, s.Write("keep.txt", "k").IsSuccess())
	assert.Equal(t, []string{"keep.txt"}, ro.Cleanup("keep.txt"))
}

func TestFS_Dir(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	s := New(base, "work")
	require.True(t, s.Write("n.txt", "1").IsSuccess())
	assert.Equal(t, "work", s.Dir())

	data, err := afero.ReadFile(base, filepath.Join("work", "n.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))
}

func TestTempDir(t *testing.T) {
	t.Parallel()

	res := TempDir("scratch-test-")
	require.True(t, res.IsSuccess(), "mkdtemp: %v", res)
	s := res.Value()
	t.Cleanup(func() { _ = os.RemoveAll(s.Dir()) })
	assert.IsType(t, &afero.OsFs{}, s.Fs())
	assert.True(t, strings.HasPrefix(filepath.Base(s.Dir()), "scratch-test-"))

	require.True(t, s.Write("n.txt", "7").IsSuccess())
	assert.Equal(t, "7", s.Read("n.txt").Unwrap())
	_, err := os.Stat(filepath.Join(s.Dir(), "n.txt"))
	assert.NoError(t, err)
}
