package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "k", []byte("v1")))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// returned slices are copies
	got[0] = 'X'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("v1"), again)

	require.NoError(t, m.Delete(ctx, "k"))
	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Update(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	err := m.Update(ctx, "counter", func(current []byte, exists bool) ([]byte, error) {
		assert.False(t, exists)
		assert.Nil(t, current)
		return []byte("1"), nil
	})
	require.NoError(t, err)

	err = m.Update(ctx, "counter", func(current []byte, exists bool) ([]byte, error) {
		assert.True(t, exists)
		return append(current, '1'), nil
	})
	require.NoError(t, err)
	got, _ := m.Get(ctx, "counter")
	assert.Equal(t, []byte("11"), got)
}

func TestMemory_UpdateAbortLeavesValue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	require.NoError(t, m.Set(ctx, "k", []byte("keep")))

	boom := errors.New("boom")
	err := m.Update(ctx, "k", func([]byte, bool) ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	got, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("keep"), got)
}

func TestMemory_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Update(ctx, "n", func(current []byte, _ bool) ([]byte, error) {
				n := 0
				if len(current) > 0 {
					_, _ = fmt.Sscanf(string(current), "%d", &n)
				}
				return []byte(fmt.Sprintf("%d", n+1)), nil
			})
		}()
	}
	wg.Wait()

	got, _ := m.Get(ctx, "n")
	assert.Equal(t, "50", string(got))
}

func TestMemory_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	assert.Equal(t, 1, m.Len())

	now = now.Add(59 * time.Second)
	_, err := m.Get(ctx, "k")
	assert.NoError(t, err)

	now = now.Add(time.Second)
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, m.Len())
}

func TestOpen(t *testing.T) {
	kv, err := Open(context.Background(), Options{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	_, err = Open(context.Background(), Options{Backend: "etcd"})
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "run:abc", RunKey("abc"))
	assert.Equal(t, "header:job-1", HeaderKey("job-1"))
}
