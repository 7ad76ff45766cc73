package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	l := NewList[int]()

	t.Run("Append", func(t *testing.T) {
		n := l.Append(1)
		assert.Equal(t, 1, n)
		n = l.Append(2)
		assert.Equal(t, 2, n)

		assert.Equal(t, 0, l.Len(), "reader shouldn't see appends before a refresh")
	})
	t.Run("Refresh", func(t *testing.T) {
		l.Refresh()
		assert.Equal(t, 2, l.Len())

		v, ok := l.At(0)
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		v, ok = l.At(1)
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})
	t.Run("RemoveAt", func(t *testing.T) {
		removed := l.RemoveAt(0)
		assert.True(t, removed)
		assert.Equal(t, 2, l.Len(), "reader shouldn't see the removal yet")

		l.Refresh()
		assert.Equal(t, 1, l.Len())
		v, ok := l.At(0)
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})
	t.Run("RemoveAt out of range", func(t *testing.T) {
		assert.False(t, l.RemoveAt(99))
	})
	t.Run("Clear", func(t *testing.T) {
		l.Clear()
		l.Refresh()
		assert.Equal(t, 0, l.Len())

		_, ok := l.At(0)
		assert.False(t, ok)
	})
}
