package activestandby

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsLock_readSeesUpdateAfterClose(t *testing.T) {
	a := NewAsLock(0, cloneInt)

	g, err := a.Write()
	require.NoError(t, err)
	_, err = g.UpdateTables(addOne{})
	require.NoError(t, err)
	g.Close()

	r, err := a.Read()
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, 1, *r.Value())
}

func TestAsLock_writersSerialize(t *testing.T) {
	a := NewAsLock(0, cloneInt)
	const writers = 8
	const perWriter = 200

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				g, err := a.Write()
				require.NoError(t, err)
				_, err = g.UpdateTables(addOne{})
				require.NoError(t, err)
				g.Close()
			}
		}()
	}
	wg.Wait()

	r, err := a.Read()
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, writers*perWriter, *r.Value())
}

func TestAsLock_longLivedReaderBlocksDrain(t *testing.T) {
	a := NewAsLock(0, cloneInt)

	r, err := a.Read()
	require.NoError(t, err)

	g, err := a.Write()
	require.NoError(t, err)
	_, err = g.UpdateTables(addOne{})
	require.NoError(t, err)
	g.Close()

	secondDone := make(chan struct{})
	go func() {
		g2, err := a.Write()
		require.NoError(t, err)
		g2.Close()
		close(secondDone)
	}()

	select {
	case <-secondDone:
		t.Fatal("writer proceeded before the reader released")
	case <-time.After(100 * time.Millisecond):
	}

	r.Close()

	select {
	case <-secondDone:
	case <-time.After(5 * time.Second):
		t.Fatal("writer never completed after reader released")
	}
}

func TestAsLock_poisonedReadAndWriteFail(t *testing.T) {
	a := NewAsLock(0, cloneInt)

	g, err := a.Write()
	require.NoError(t, err)
	err = g.UpdateTablesClosure(func(*int) { panic("boom") })
	assert.ErrorIs(t, err, ErrPoisoned)
	g.Close()

	_, err = a.Write()
	assert.ErrorIs(t, err, ErrPoisoned)

	_, err = a.Read()
	assert.ErrorIs(t, err, ErrPoisoned)
}

func TestSyncReadGuard_doubleCloseAndUseAfterClosePanic(t *testing.T) {
	a := NewAsLock(0, cloneInt)
	r, err := a.Read()
	require.NoError(t, err)
	r.Close()

	assert.Panics(t, func() { r.Close() })
	assert.Panics(t, func() { r.Value() })
}
