package numfile

import (
	"errors"
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/fault"
	"github.com/ib-77/outcome/pkg/rop/scratch"
)

func fixture(t *testing.T, files map[string]string) *scratch.FS {
	t.Helper()
	fs := scratch.Memory()
	for name, contents := range files {
		require.True(t, fs.Write(name, contents).IsSuccess())
	}
	return fs
}

func TestReadAndParse(t *testing.T) {
	t.Parallel()

	fs := fixture(t, map[string]string{
		"ok.txt":    " 17\n",
		"bad.txt":   "seventeen",
		"empty.txt": "\n",
		"neg.txt":   "-1",
	})

	assert.Equal(t, rop.Success[int, *FileError](17), ReadAndParse(fs, "ok.txt"))

	tests := []struct {
		name string
		kind Kind
		step string
	}{
		{"bad.txt", Parse, "parse"},
		{"empty.txt", Validation, "trim"},
		{"neg.txt", Validation, "validate"},
		{"missing.txt", IO, "read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ReadAndParse(fs, tt.name)
			require.True(t, res.IsFailure())
			e := res.Reason()
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.step, e.Step)
			assert.Equal(t, tt.name, e.Path)
		})
	}
}

func TestReadAndParse_KeepsCause(t *testing.T) {
	t.Parallel()

	fs := fixture(t, map[string]string{"bad.txt": "x"})

	missing := ReadAndParse(fs, "missing.txt").Reason()
	assert.ErrorIs(t, missing, fault.ErrNotFound)

	bad := ReadAndParse(fs, "bad.txt").Reason()
	var pe *ParseError
	require.ErrorAs(t, bad, &pe)
	assert.Equal(t, "x", pe.Input)
	var numErr *strconv.NumError
	assert.ErrorAs(t, bad, &numErr)

	assert.Contains(t, bad.Error(), "parse bad.txt: parse")
}

func TestReadAndParse_ReadOnlyFs(t *testing.T) {
	t.Parallel()

	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "n.txt", []byte("1"), 0o644))
	fs := scratch.New(afero.NewReadOnlyFs(base), "")

	assert.Equal(t, 1, ReadAndParse(fs, "n.txt").Unwrap())
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	fs := fixture(t, map[string]string{"a": "1", "b": "2", "c": "oops"})

	assert.Equal(t, []int{1, 2}, ReadAll(fs, "a", "b").Unwrap())
	assert.Equal(t, []int{}, ReadAll(fs).Unwrap())

	res := ReadAll(fs, "a", "c", "missing")
	require.True(t, res.IsFailure())
	assert.Equal(t, "c", res.Reason().Path)
	assert.Equal(t, Parse, res.Reason().Kind)

	assert.Equal(t, 3, Sum(fs, "a", "b").Unwrap())
	assert.Equal(t, IO, Sum(fs, "missing").Reason().Kind)
}

func TestSteps(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, ParseNumber("5").Unwrap())
	assert.True(t, errors.Is(ParseNumber("five").Reason(), strconv.ErrSyntax))

	assert.Equal(t, MaxValue, CheckRange(MaxValue).Unwrap())
	r := CheckRange(MaxValue + 1).Reason()
	assert.Equal(t, "1000001 outside [0, 1000000]", r.Error())

	assert.Equal(t, "validation", Validation.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
