package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/testgen/pkg/util"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name  string
		from  int
		to    int
		want  []string
		moved bool
	}{
		{name: "forward", from: 0, to: 2, want: []string{"B", "C", "A"},
			moved: true},
		{name: "backward", from: 2, to: 0, want: []string{"C", "A", "B"},
			moved: true},
		{name: "adjacent", from: 1, to: 2, want: []string{"A", "C", "B"},
			moved: true},
		{name: "clamped_high", from: 0, to: 99, want: []string{"B", "C", "A"},
			moved: true},
		{name: "clamped_low", from: 2, to: -5, want: []string{"C", "A", "B"},
			moved: true},
		{name: "same_index", from: 1, to: 1, want: []string{"A", "B", "C"}},
		{name: "from_out_of_range", from: 3, to: 0,
			want: []string{"A", "B", "C"}},
		{name: "from_negative", from: -1, to: 0,
			want: []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := []string{"A", "B", "C"}
			res, moved := util.Move(orig, tt.from, tt.to)
			assert.Equal(t, tt.moved, moved)
			assert.Equal(t, tt.want, res)
			assert.Equal(t, []string{"A", "B", "C"}, orig)
		})
	}
}

func TestRemoveAt(t *testing.T) {
	orig := []int{1, 2, 3}

	res, v, ok := util.RemoveAt(orig, 1)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, []int{1, 3}, res)
	assert.Equal(t, []int{1, 2, 3}, orig)

	res, _, ok = util.RemoveAt(orig, 3)
	assert.False(t, ok)
	assert.Equal(t, orig, res)
}

func TestInsertAt(t *testing.T) {
	orig := []int{1, 2}
	assert.Equal(t, []int{0, 1, 2}, util.InsertAt(orig, 0, 0))
	assert.Equal(t, []int{1, 9, 2}, util.InsertAt(orig, 1, 9))
	assert.Equal(t, []int{1, 2, 3}, util.InsertAt(orig, 10, 3))
	assert.Equal(t, []int{0, 1, 2}, util.InsertAt(orig, -1, 0))
	assert.Equal(t, []int{1, 2}, orig)
}

func TestAppendAndReplace(t *testing.T) {
	orig := make([]int, 2, 10)
	orig[0], orig[1] = 1, 2

	res := util.Append(orig, 3)
	assert.Equal(t, []int{1, 2, 3}, res)
	res[0] = 100
	assert.Equal(t, 1, orig[0])

	rep := util.ReplaceAt(orig, 1, 7)
	assert.Equal(t, []int{1, 7}, rep)
	assert.Equal(t, []int{1, 2}, orig)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, util.Clamp(-3, 0, 5))
	assert.Equal(t, 5, util.Clamp(9, 0, 5))
	assert.Equal(t, 2, util.Clamp(2, 0, 5))
	assert.True(t, util.InRange(0, 1))
	assert.False(t, util.InRange(1, 1))
}
