package xcache

import (
	"log/slog"
	"sync"
)

// Factory 管理单个 Cache 实例的生命周期。
//
// Factory 取代进程级单例：需要共享实例的一方显式持有一个 Factory 值，
// 每个 Factory 拥有独立的锁和实例，不同的 key/value 类型组合天然互不影响。
// 零值可用。所有方法都是并发安全的。
//
// 状态机：Absent →(Create) Active →(Destroy) Absent。
// Active 时 Create 返回已有实例；Absent 时 Destroy 是空操作。
type Factory[K comparable, V any] struct {
	mu       sync.Mutex
	instance *Cache[K, V]
}

// Create 返回当前实例，没有实例时按 cfg 创建。
//
// 设计决策: 已有实例时 cfg 和 opts 被忽略（幂等的 get-or-create），不会就地更新配置。
// cfg 与现有配置不同时记录一条 Warn 日志，提示调用方可能误以为配置已生效；
// 需要新配置时应先 Destroy 再 Create。
func (f *Factory[K, V]) Create(cfg Config, opts ...Option[K, V]) (*Cache[K, V], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.instance != nil {
		if cfg.withDefaults() != f.instance.Config() {
			f.instance.logger.Warn("xcache: factory already active, ignoring differing config",
				slog.String("cache", f.instance.Name()),
				slog.Int("active_max_items", f.instance.Config().MaxItems),
				slog.Int("requested_max_items", cfg.MaxItems),
			)
		}
		return f.instance, nil
	}

	c, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	f.instance = c
	return c, nil
}

// Destroy 关闭并释放当前实例，之后的 Create 会构造新实例（可使用不同配置）。
// 仍持有旧实例的调用方会看到一个已关闭的缓存。没有实例时是空操作。
func (f *Factory[K, V]) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.instance == nil {
		return
	}
	f.instance.Close()
	f.instance = nil
}

// Instance 返回当前实例。没有实例时返回 nil 和 false。
func (f *Factory[K, V]) Instance() (*Cache[K, V], bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.instance, f.instance != nil
}
