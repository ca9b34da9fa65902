package rop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckedAdd(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Absent[uint8](), CheckedAdd[uint8](255, 1))
	assert.Equal(t, Present[uint8](255), CheckedAdd[uint8](254, 1))
	assert.Equal(t, Present[int8](127), CheckedAdd[int8](100, 27))
	assert.Equal(t, Absent[int8](), CheckedAdd[int8](100, 28))
	assert.Equal(t, Absent[int8](), CheckedAdd[int8](-100, -29))
	assert.Equal(t, Present(-1), CheckedAdd(1, -2))
	assert.Equal(t, Absent[int64](), CheckedAdd[int64](math.MaxInt64, 1))
}

func TestCheckedSub(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Absent[uint](), CheckedSub[uint](0, 1))
	assert.Equal(t, Present[uint](0), CheckedSub[uint](1, 1))
	assert.Equal(t, Absent[int8](), CheckedSub[int8](-128, 1))
	assert.Equal(t, Absent[int8](), CheckedSub[int8](127, -1))
	assert.Equal(t, Present[int8](-128), CheckedSub[int8](-127, 1))
}

func TestCheckedMul(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b int8
		want Option[int8]
	}{
		{0, -128, Present[int8](0)},
		{-128, 0, Present[int8](0)},
		{-1, -128, Absent[int8]()},
		{-128, -1, Absent[int8]()},
		{-128, 1, Present[int8](-128)},
		{-64, 2, Present[int8](-128)},
		{64, 2, Absent[int8]()},
		{-16, 8, Present[int8](-128)},
		{16, -9, Absent[int8]()},
		{11, 11, Present[int8](121)},
		{12, 11, Absent[int8]()},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CheckedMul(tt.a, tt.b), "%d * %d", tt.a, tt.b)
	}

	assert.Equal(t, Absent[uint8](), CheckedMul[uint8](16, 16))
	assert.Equal(t, Present[uint8](255), CheckedMul[uint8](15, 17))
	assert.Equal(t, Absent[int64](), CheckedMul[int64](math.MaxInt64/2+1, 2))
}

func TestCheckedDiv(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Absent[int](), CheckedDiv(1, 0))
	assert.Equal(t, Present(-3), CheckedDiv(7, -2))
	assert.Equal(t, Absent[int8](), CheckedDiv[int8](-128, -1))
	assert.Equal(t, Present[int8](64), CheckedDiv[int8](-128, -2))
	assert.Equal(t, Present[uint8](127), CheckedDiv[uint8](255, 2))
}
