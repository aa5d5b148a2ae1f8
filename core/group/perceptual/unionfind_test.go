package perceptual

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFind_FindUnion(t *testing.T) {
	t.Parallel()

	uf := newUnionFind(5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, uf.find(i), "each element starts as its own root")
	}

	uf.union(0, 1)
	uf.union(1, 2)
	assert.Equal(t, uf.find(0), uf.find(2), "0-1-2 must be transitively connected")

	assert.NotEqual(t, uf.find(0), uf.find(3), "disjoint elements stay disjoint")

	uf.union(3, 4)
	uf.union(2, 3)
	assert.Equal(t, uf.find(0), uf.find(4), "unioning the two groups merges every member")
}

func TestUnionFind_UnionIsIdempotent(t *testing.T) {
	t.Parallel()

	uf := newUnionFind(2)
	uf.union(0, 1)
	root := uf.find(0)
	uf.union(0, 1)
	assert.Equal(t, root, uf.find(0))
}
