package activestandby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pushOp struct{ v int }

func (o pushOp) ApplyFirst(t *[]int) any {
	*t = append(*t, o.v)
	return len(*t)
}

func (o pushOp) ApplySecond(t *[]int) {
	*t = append(*t, o.v)
}

func cloneSlice(v []int) []int {
	cp := make([]int, len(v))
	copy(cp, v)
	return cp
}

func TestWriter_updateTablesReturnsApplyFirstValue(t *testing.T) {
	h := NewHandle([]int{}, cloneSlice)

	g, err := h.Write()
	require.NoError(t, err)
	v, err := g.UpdateTables(pushOp{v: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	g.Close()
}

func TestWriter_logNotReplayedUntilNextAcquire(t *testing.T) {
	h := NewHandle([]int{}, cloneSlice)

	g, err := h.Write()
	require.NoError(t, err)
	_, err = g.UpdateTables(pushOp{v: 1})
	require.NoError(t, err)

	// Standby (not yet swapped) has one element; the log holds the pending
	// ApplySecond for the other table.
	assert.Equal(t, []int{1}, *h.core.pair.standby())
	assert.Equal(t, 1, h.core.w.log.len())

	g.Close() // swap only; log still holds the pending op

	assert.Equal(t, 1, h.core.w.log.len())

	g2, err := h.Write() // replay happens here
	require.NoError(t, err)
	assert.Equal(t, 0, h.core.w.log.len())
	g2.Close()

	assert.Equal(t, []int{1}, *h.core.pair.at(0))
	assert.Equal(t, []int{1}, *h.core.pair.at(1))
}

func TestWriter_emptyCycleLeavesTablesUnchanged(t *testing.T) {
	h := NewHandle([]int{1, 2, 3}, cloneSlice)

	before0 := cloneSlice(*h.core.pair.at(0))
	before1 := cloneSlice(*h.core.pair.at(1))

	g, err := h.Write()
	require.NoError(t, err)
	g.Close()

	assert.Equal(t, before0, *h.core.pair.at(1))
	assert.Equal(t, before1, *h.core.pair.at(0))
}
