package xcache

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_ZeroValue_Absent(t *testing.T) {
	var f Factory[string, int]

	c, ok := f.Instance()
	assert.False(t, ok)
	assert.Nil(t, c)

	// Absent 时 Destroy 是空操作
	assert.NotPanics(t, f.Destroy)
}

func TestFactory_Create_IsIdempotent(t *testing.T) {
	var f Factory[int, string]
	defer f.Destroy()

	first, err := f.Create(Config{MaxItems: 2}, WithLogger[int, string](discardLogger()))
	require.NoError(t, err)
	second, err := f.Create(Config{MaxItems: 2})
	require.NoError(t, err)

	assert.Same(t, first, second)

	first.Write(1, "Item1")
	v, ok := second.Read(1)
	require.True(t, ok)
	assert.Equal(t, "Item1", v)

	got, ok := f.Instance()
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestFactory_Create_DifferingConfigIgnoredWithWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var f Factory[string, int]
	defer f.Destroy()

	first, err := f.Create(Config{MaxItems: 2}, WithLogger[string, int](logger))
	require.NoError(t, err)

	second, err := f.Create(Config{MaxItems: 100})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, second.Config().MaxItems)
	assert.Contains(t, buf.String(), "ignoring differing config")
}

func TestFactory_Create_SameConfigNoWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var f Factory[string, int]
	defer f.Destroy()

	_, err := f.Create(Config{MaxItems: 2, Policy: PolicyLRU}, WithLogger[string, int](logger))
	require.NoError(t, err)
	// 空 Policy 填充默认值后与现有配置相同
	_, err = f.Create(Config{MaxItems: 2})
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "ignoring differing config")
}

func TestFactory_Create_InvalidConfig_StaysAbsent(t *testing.T) {
	var f Factory[string, int]

	c, err := f.Create(Config{MaxItems: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, c)

	_, ok := f.Instance()
	assert.False(t, ok)
}

func TestFactory_Destroy_ThenCreateBuildsFresh(t *testing.T) {
	var f Factory[string, int]
	defer f.Destroy()

	old, err := f.Create(Config{MaxItems: 1}, WithLogger[string, int](discardLogger()))
	require.NoError(t, err)
	old.Write("a", 1)

	f.Destroy()
	f.Destroy()

	_, ok := f.Instance()
	assert.False(t, ok)

	// 旧引用看到的是已关闭的缓存
	_, ok = old.Read("a")
	assert.False(t, ok)

	fresh, err := f.Create(Config{MaxItems: 3}, WithLogger[string, int](discardLogger()))
	require.NoError(t, err)
	assert.NotSame(t, old, fresh)
	assert.Equal(t, 3, fresh.Config().MaxItems)
	assert.Equal(t, 0, fresh.Len())
}

func TestFactory_IndependentFactories(t *testing.T) {
	var textCaches Factory[string, string]
	var intCaches Factory[int, int]
	defer textCaches.Destroy()
	defer intCaches.Destroy()

	sc, err := textCaches.Create(Config{MaxItems: 1}, WithLogger[string, string](discardLogger()))
	require.NoError(t, err)
	ic, err := intCaches.Create(Config{MaxItems: 5}, WithLogger[int, int](discardLogger()))
	require.NoError(t, err)

	sc.Write("k", "v")
	ic.Write(1, 1)

	textCaches.Destroy()
	_, ok := intCaches.Instance()
	assert.True(t, ok)
	v, ok := ic.Read(1)
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestFactory_ConcurrentCreate_ReturnsSameInstance(t *testing.T) {
	var f Factory[int, int]
	defer f.Destroy()

	const n = 16
	results := make([]*Cache[int, int], n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := f.Create(Config{MaxItems: 4}, WithLogger[int, int](discardLogger()))
			if err == nil {
				results[i] = c
			}
		}()
	}
	wg.Wait()

	for _, c := range results {
		require.NotNil(t, c)
		assert.Same(t, results[0], c)
	}
}
