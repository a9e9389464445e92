package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("outline.depth_unit", 20))
	require.NoError(t, store.Set("outline.depth_unit", 40))

	val, ok := store.Get("outline.depth_unit")
	assert.True(t, ok)
	assert.Equal(t, 40, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("s", "drafter")
	_ = store.Set("i", 7)
	_ = store.Set("i64", int64(9))
	_ = store.Set("f", 2.5)
	_ = store.Set("b", true)

	assert.Equal(t, "drafter", store.GetString("s"))
	assert.Equal(t, "", store.GetString("i"))

	assert.Equal(t, 7, store.GetInt("i"))
	assert.Equal(t, 9, store.GetInt("i64"))
	assert.Equal(t, 2, store.GetInt("f"))
	assert.Equal(t, 0, store.GetInt("s"))

	assert.Equal(t, 2.5, store.GetFloat("f"))
	assert.Equal(t, 7.0, store.GetFloat("i"))
	assert.Equal(t, 9.0, store.GetFloat("i64"))
	assert.Equal(t, 0.0, store.GetFloat("s"))

	assert.True(t, store.GetBool("b"))
	assert.False(t, store.GetBool("s"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetDuration(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  time.Duration
	}{
		{"duration string", "30s", 30 * time.Second},
		{"compound string", "1m30s", 90 * time.Second},
		{"milliseconds int", 30000, 30 * time.Second},
		{"milliseconds int64", int64(1500), 1500 * time.Millisecond},
		{"duration value", 2 * time.Minute, 2 * time.Minute},
		{"unparseable", "soon", 0},
		{"wrong type", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("autosave.interval", tt.value))
			assert.Equal(t, tt.want, store.GetDuration("autosave.interval"))
		})
	}

	assert.Equal(t, time.Duration(0), NewConfigStore().GetDuration("missing"))
}

func TestConfigStore_SaveLoadNoOp(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("k", "v")

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key.%d", n), n)
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("key.%d", n))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		assert.Equal(t, i, store.GetInt(fmt.Sprintf("key.%d", i)))
	}
}
