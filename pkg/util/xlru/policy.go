package xlru

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// MaxSize 策略容量上限。
const MaxSize = 1 << 24 // 16,777,216

// Policy 是 LRU 最近使用顺序跟踪器。
// 必须通过 [New] 创建，零值不可用。
// 非并发安全，见包文档。
type Policy[K comparable] struct {
	lru  *simplelru.LRU[K, struct{}]
	size int
}

// New 创建容量为 size 的 LRU 策略。
// 如果 size <= 0，返回 ErrInvalidSize。
// 如果 size > MaxSize，返回 ErrSizeExceedsMax。
func New[K comparable](size int) (*Policy[K], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if size > MaxSize {
		return nil, ErrSizeExceedsMax
	}

	// 不注册 onEvict：淘汰由 Touch 显式执行并通过返回值交给调用方
	lru, err := simplelru.NewLRU[K, struct{}](size, nil)
	if err != nil {
		return nil, fmt.Errorf("xlru: create recency list: %w", err)
	}

	return &Policy[K]{
		lru:  lru,
		size: size,
	}, nil
}

// Touch 把 key 标记为最近使用。
//
//   - key 已存在：提升到 MRU 端，返回 ok=false
//   - key 不存在且已满：先移除 LRU 端的 key，再追加 key，返回被淘汰的 key 和 ok=true
//   - key 不存在且未满：追加 key，返回 ok=false
func (p *Policy[K]) Touch(key K) (evicted K, ok bool) {
	// simplelru.Get 命中时会把节点移到 MRU 端
	if _, hit := p.lru.Get(key); hit {
		return evicted, false
	}

	// 设计决策: 在 Add 之前显式 RemoveOldest，而不是依赖 Add 内部淘汰 + onEvict 回调。
	// 这样被淘汰的 key 通过返回值直接得到，不需要在回调里暂存状态。
	if p.lru.Len() >= p.size {
		evicted, _, ok = p.lru.RemoveOldest()
	}
	p.lru.Add(key, struct{}{})
	return evicted, ok
}

// Remove 从顺序中移除 key。
// 返回 true 表示 key 存在并被移除。
func (p *Policy[K]) Remove(key K) bool {
	return p.lru.Remove(key)
}

// Clear 清空顺序。
func (p *Policy[K]) Clear() {
	p.lru.Purge()
}

// Len 返回当前跟踪的 key 数量。
func (p *Policy[K]) Len() int {
	return p.lru.Len()
}

// Keys 返回所有 key，按从最旧（LRU）到最新（MRU）的顺序排列。
func (p *Policy[K]) Keys() []K {
	return p.lru.Keys()
}
