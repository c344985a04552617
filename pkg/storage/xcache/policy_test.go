package xcache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockedCache(t *testing.T, maxItems int) (*Cache[string, int], *MockEvictionPolicy[string]) {
	t.Helper()
	ctrl := gomock.NewController(t)
	policy := NewMockEvictionPolicy[string](ctrl)

	c, err := New(Config{MaxItems: maxItems},
		WithLogger[string, int](discardLogger()),
		WithPolicy[string, int](policy),
	)
	require.NoError(t, err)
	return c, policy
}

func TestCache_WithPolicy_DelegatesRecency(t *testing.T) {
	c, policy := newMockedCache(t, 2)

	gomock.InOrder(
		policy.EXPECT().Touch("a").Return("", false),
		policy.EXPECT().Touch("b").Return("", false),
		policy.EXPECT().Touch("c").Return("a", true),
		policy.EXPECT().Keys().Return([]string{"b", "c"}),
		policy.EXPECT().Remove("b").Return(true),
		policy.EXPECT().Clear(),
	)

	c.Write("a", 1)
	c.Write("b", 2)
	evicted, ok := c.Write("c", 3)
	require.True(t, ok)
	assert.Equal(t, "a", evicted)
	assert.False(t, c.Contains("a"))

	assert.Equal(t, []string{"b", "c"}, c.Keys())
	assert.True(t, c.Delete("b"))
	c.Close()
}

func TestCache_Read_PolicyEvictsOnHit_PanicsWithInvariantViolation(t *testing.T) {
	c, policy := newMockedCache(t, 2)

	gomock.InOrder(
		policy.EXPECT().Touch("a").Return("", false),
		policy.EXPECT().Touch("a").Return("ghost", true),
		policy.EXPECT().Len().Return(1),
		policy.EXPECT().Clear(),
	)

	c.Write("a", 1)

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		c.Read("a")
	}()

	require.NotNil(t, recovered, "Read must panic when the policy evicts on a hit")
	err, ok := recovered.(error)
	require.True(t, ok, "panic value should be an error, got %T", recovered)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.Contains(t, err.Error(), "ghost")

	// 锁已被 defer 释放
	assert.Equal(t, 1, c.Len())
	c.Close()
}

func TestCache_Read_MissDoesNotTouchPolicy(t *testing.T) {
	c, policy := newMockedCache(t, 1)
	policy.EXPECT().Clear()

	_, ok := c.Read("missing")
	assert.False(t, ok)
	c.Close()
}
