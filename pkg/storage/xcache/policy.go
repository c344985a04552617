package xcache

import "github.com/omeyang/xcachekit/pkg/util/xlru"

// EvictionPolicy 定义淘汰策略接口：跟踪 key 的最近使用顺序并决定淘汰。
//
// 所有方法都在 Cache 的互斥锁内调用，实现无需自行加锁。
type EvictionPolicy[K comparable] interface {
	// Touch 把 key 标记为最近使用。
	// key 已被跟踪时只调整顺序，不得报告淘汰。
	// key 未被跟踪且已满时，移除最久未使用的 key 并通过 (evicted, true) 返回。
	Touch(key K) (evicted K, ok bool)

	// Remove 停止跟踪 key，返回 key 是否曾被跟踪。
	Remove(key K) bool

	// Clear 清空所有跟踪的 key。
	Clear()

	// Len 返回当前跟踪的 key 数量。
	Len() int

	// Keys 按从最久未使用到最近使用的顺序返回所有 key。
	Keys() []K
}

// 确保 xlru.Policy 实现 EvictionPolicy 接口（编译时检查）
var _ EvictionPolicy[string] = (*xlru.Policy[string])(nil)
