package admission

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	t.Run("acquire up to limit", func(t *testing.T) {
		set := New(2)
		require.True(t, set.Acquire("a"))
		require.True(t, set.Acquire("b"))
		require.False(t, set.Acquire("c"))
		require.Equal(t, 2, set.Len())
	})

	t.Run("release frees a slot", func(t *testing.T) {
		set := New(1)
		require.True(t, set.Acquire("a"))
		require.False(t, set.Acquire("b"))
		set.Release("a")
		require.True(t, set.Acquire("b"))
	})

	t.Run("reacquire and unknown release", func(t *testing.T) {
		set := New(1)
		require.True(t, set.Acquire("a"))
		require.True(t, set.Acquire("a"))
		set.Release("unknown")
		require.Equal(t, 1, set.Len())
	})

	t.Run("zero limit", func(t *testing.T) {
		require.False(t, New(0).Acquire("a"))
	})

	t.Run("concurrent", func(t *testing.T) {
		const limit = 5
		set := New(limit)
		var (
			wg       sync.WaitGroup
			admitted atomic.Int32
		)

		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if set.Acquire(uniuri.New()) {
					admitted.Add(1)
				}
			}()
		}

		wg.Wait()
		require.Equal(t, int32(limit), admitted.Load())
		require.Equal(t, limit, set.Len())
	})
}
