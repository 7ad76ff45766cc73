package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	m := NewMap[string, int]()

	t.Run("Insert", func(t *testing.T) {
		m.Insert("foo", 1)
		m.Insert("bar", 2)

		// Readers haven't seen these yet: no refresh has happened.
		assert.False(t, m.Has("foo"))
		assert.False(t, m.Has("bar"))
	})
	t.Run("Refresh", func(t *testing.T) {
		m.Refresh()

		v, ok := m.Get("foo")
		assert.True(t, ok)
		assert.Equal(t, 1, v)

		v, ok = m.Get("bar")
		assert.True(t, ok)
		assert.Equal(t, 2, v)
	})
	t.Run("Delete", func(t *testing.T) {
		existed := m.Delete("foo")
		assert.True(t, existed)

		// Readers haven't seen the delete yet.
		assert.True(t, m.Has("foo"))

		m.Refresh()
		assert.False(t, m.Has("foo"))
	})
	t.Run("Clear", func(t *testing.T) {
		m.Clear()
		assert.True(t, m.Has("bar"), "reader shouldn't see the clear yet")

		m.Refresh()
		assert.False(t, m.Has("bar"), "reader should see the clear after refresh")
	})
}

func TestMap_reader(t *testing.T) {
	m := NewMap[string, int]()
	m.Insert("foo", 1)
	m.Refresh()

	reader := m.Reader()
	defer reader.Close()

	v, ok := reader.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, reader.Has("foo"))

	m.Delete("foo")
	m.Refresh()

	_, ok = reader.Get("foo")
	assert.False(t, ok)
	assert.False(t, reader.Has("foo"))
}

func TestMap_autoRefresh(t *testing.T) {
	m := NewMap[string, int](WithMaxReplicationWriteLag(2))

	m.Insert("a", 1)
	assert.False(t, m.Has("a"), "shouldn't refresh before the lag threshold")

	m.Insert("b", 2)
	m.Insert("c", 3) // crosses the threshold, forces a refresh

	assert.True(t, m.Has("a"))
	assert.True(t, m.Has("b"))
	assert.True(t, m.Has("c"))
}

func TestMap_deleteMissingKeyReportsFalse(t *testing.T) {
	m := NewMap[string, int]()
	assert.False(t, m.Delete("missing"))
}
