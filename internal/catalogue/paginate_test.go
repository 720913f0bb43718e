package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginatePageCount(t *testing.T) {
	for _, size := range []int{1, 3, 8} {
		for _, n := range []int{0, 1, 7, 8, 9, 17} {
			p := Paginate(ints(n), 1, size)
			assert.Equal(t, (n+size-1)/size, p.PageCount, "n=%d size=%d", n, size)
			assert.LessOrEqual(t, len(p.Visible), size)
			assert.Equal(t, n, p.Total)
		}
	}
}

func TestPaginateSlices(t *testing.T) {
	subset := ints(20)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, Paginate(subset, 1, 8).Visible)
	assert.Equal(t, []int{17, 18, 19, 20}, Paginate(subset, 3, 8).Visible)
}

func TestPaginateOutOfRangeIsEmpty(t *testing.T) {
	subset := ints(5)
	for _, page := range []int{-1, 0, 3, 100} {
		p := Paginate(subset, page, 4)
		assert.Empty(t, p.Visible, "page %d", page)
		assert.NotNil(t, p.Visible)
		assert.Equal(t, 2, p.PageCount)
	}
}

func TestPaginateEmptyAndDegenerate(t *testing.T) {
	p := Paginate([]int{}, 1, 8)
	assert.Equal(t, 0, p.PageCount)
	assert.Empty(t, p.Visible)

	p = Paginate(ints(3), 1, 0)
	assert.Equal(t, 0, p.PageCount)
	assert.Empty(t, p.Visible)
}

func TestPaginateVisibleDoesNotAliasTail(t *testing.T) {
	subset := ints(6)
	p := Paginate(subset, 1, 3)
	p.Visible = append(p.Visible, 99)
	assert.Equal(t, 4, subset[3], "appending to a page must not overwrite the next page")
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 3, ClampPage(7, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 1, ClampPage(5, 0))
}

func TestShowingRange(t *testing.T) {
	assert.Equal(t, "Showing 1-8 of 20 tests", ShowingRange(Paginate(ints(20), 1, 8)))
	assert.Equal(t, "Showing 17-20 of 20 tests", ShowingRange(Paginate(ints(20), 3, 8)))
	assert.Equal(t, "Showing 1-1 of 1 test", ShowingRange(Paginate(ints(1), 1, 8)))
	assert.Equal(t, "", ShowingRange(Paginate(ints(0), 1, 8)))
}
