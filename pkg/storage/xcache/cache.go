package xcache

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// mapSizeHint 存储 map 的初始容量上限，避免大 MaxItems 在构造时一次性分配。
const mapSizeHint = 1024

// Cache 是有界的进程内 key-value 缓存。
// 必须通过 [New] 或 [Factory.Create] 创建，零值不可用。
// 所有方法都是并发安全的。
// 调用 Close 后，所有读操作返回零值/false，写操作静默忽略。
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	cfg       Config
	items     map[K]V
	policy    EvictionPolicy[K]
	listeners []listener[K]
	nextID    uint64
	closed    bool

	name    string
	logger  *slog.Logger
	metrics *Metrics

	hits      atomic.Uint64
	misses    atomic.Uint64
	writes    atomic.Uint64
	evictions atomic.Uint64
}

// listener 淘汰监听器，id 用于取消订阅。
type listener[K comparable] struct {
	id uint64
	fn func(key K)
}

// New 创建新的缓存。
// cfg 无效时返回包装 ErrInvalidConfig 的错误，缓存不会被创建。
func New[K comparable, V any](cfg Config, opts ...Option[K, V]) (*Cache[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	o := defaultOptions[K, V]()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	policy := o.policy
	if policy == nil {
		p, err := newPolicy[K](cfg)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	name := o.name
	if name == "" {
		name = "cache-" + uuid.NewString()
	}

	metrics, err := NewMetrics(o.meterProvider, name)
	if err != nil {
		return nil, fmt.Errorf("xcache: create metrics: %w", err)
	}

	c := &Cache[K, V]{
		cfg:     cfg,
		items:   make(map[K]V, min(cfg.MaxItems, mapSizeHint)),
		policy:  policy,
		name:    name,
		logger:  o.logger,
		metrics: metrics,
	}
	if o.onEvicted != nil {
		c.nextID++
		c.listeners = append(c.listeners, listener[K]{id: c.nextID, fn: o.onEvicted})
	}

	c.logger.Debug("xcache: cache created",
		slog.String("cache", name),
		slog.Int("max_items", cfg.MaxItems),
		slog.String("policy", string(cfg.Policy)),
	)
	return c, nil
}

// Write 写入或覆盖 key 的值，并把 key 标记为最近使用。
//
// 如果写入新 key 时缓存已满，最久未使用的 key 会被淘汰：先从存储移除，
// 再按注册顺序同步通知监听器，最后写入新 key。被淘汰的 key 同时通过返回值交给调用方。
// 覆盖已有 key 从不触发淘汰。
//
// Write 不会因容量失败；缓存已关闭时静默忽略并返回 ok=false。
func (c *Cache[K, V]) Write(key K, value V) (evicted K, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return evicted, false
	}

	evicted, ok = c.policy.Touch(key)
	if ok {
		delete(c.items, evicted)
		c.evictions.Add(1)
		c.metrics.RecordEviction()
		c.notifyLocked(evicted)
	}

	_, existed := c.items[key]
	c.items[key] = value
	c.writes.Add(1)
	c.metrics.RecordWrite(!existed)
	return evicted, ok
}

// Read 获取 key 的值。命中时把 key 标记为最近使用。
// 未命中或缓存已关闭时返回零值和 false，且不改变最近使用顺序。
//
// 命中时策略若报告了淘汰，说明存储与策略已失去同步，
// Read 会以包装 ErrInvariantViolation 的错误 panic。
func (c *Cache[K, V]) Read(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return value, false
	}

	value, ok = c.items[key]
	if !ok {
		c.misses.Add(1)
		c.metrics.RecordRead(false)
		return value, false
	}

	if evicted, bad := c.policy.Touch(key); bad {
		c.invariantViolationLocked(key, evicted)
	}

	c.hits.Add(1)
	c.metrics.RecordRead(true)
	return value, true
}

// Peek 获取 key 的值但不更新最近使用顺序，也不计入命中统计。
// 如果缓存已关闭，返回零值和 false。
func (c *Cache[K, V]) Peek(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return value, false
	}
	value, ok = c.items[key]
	return value, ok
}

// Contains 检查 key 是否存在（不更新最近使用顺序）。
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.Peek(key)
	return ok
}

// Delete 删除 key，返回 key 是否存在。
// 删除不是淘汰，不会通知监听器。如果缓存已关闭，返回 false。
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	if _, ok := c.items[key]; !ok {
		return false
	}

	delete(c.items, key)
	c.policy.Remove(key)
	c.metrics.RecordRemoved(1)
	return true
}

// Clear 在同一临界区内清空存储和最近使用顺序，不通知监听器。
// 如果缓存已关闭，静默忽略。
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.clearLocked()
}

// Len 返回当前条目数。如果缓存已关闭，返回 0。
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys 按从最久未使用到最近使用的顺序返回所有 key。
// 如果缓存已关闭，返回 nil。
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	return c.policy.Keys()
}

// Subscribe 注册淘汰监听器，返回取消订阅函数（幂等）。
//
// 监听器在 Cache 的互斥锁内按注册顺序同步执行，严禁在监听器
// （包括取消订阅函数）中调用同一 Cache 的任何方法，否则会死锁。
// fn 为 nil 或缓存已关闭时返回空操作的取消函数。
func (c *Cache[K, V]) Subscribe(fn func(key K)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, listener[K]{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.listeners = slices.DeleteFunc(c.listeners, func(l listener[K]) bool {
				return l.id == id
			})
		})
	}
}

// Config 返回缓存配置（已填充默认值）。
func (c *Cache[K, V]) Config() Config {
	return c.cfg
}

// Name 返回缓存名称。
func (c *Cache[K, V]) Name() string {
	return c.name
}

// Close 关闭缓存，清空所有条目并移除所有监听器。
// 该方法是幂等的。Close 后所有读操作返回零值/false，写操作静默忽略。
func (c *Cache[K, V]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.clearLocked()
	c.listeners = nil

	c.logger.Debug("xcache: cache closed", slog.String("cache", c.name))
}

// clearLocked 清空存储和策略，调用方必须持有锁。
func (c *Cache[K, V]) clearLocked() {
	n := len(c.items)
	clear(c.items)
	c.policy.Clear()
	c.metrics.RecordRemoved(n)
}

// notifyLocked 按注册顺序通知监听器，调用方必须持有锁。
func (c *Cache[K, V]) notifyLocked(key K) {
	for _, l := range c.listeners {
		c.safeNotify(l.fn, key)
	}
}

// safeNotify 执行单个监听器。
// 监听器 panic 时 Write 已完成一半（策略已接纳新 key，存储尚未写入），
// 继续向上传播会让两者失去同步，因此在此 recover。
func (c *Cache[K, V]) safeNotify(fn func(key K), key K) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("xcache: eviction listener panic recovered",
				slog.String("cache", c.name),
				slog.Any("key", key),
				slog.Any("panic", r),
			)
		}
	}()
	fn(key)
}

// invariantViolationLocked 记录并以 panic 报告存储与策略失去同步。
// 锁由调用方的 defer 释放。
func (c *Cache[K, V]) invariantViolationLocked(key, evicted K) {
	err := fmt.Errorf("%w: read of cached key %v made the policy evict %v", ErrInvariantViolation, key, evicted)
	c.logger.Error("xcache: store and policy out of sync",
		slog.String("cache", c.name),
		slog.Any("key", key),
		slog.Any("evicted", evicted),
		slog.Int("store_len", len(c.items)),
		slog.Int("policy_len", c.policy.Len()),
	)
	panic(err)
}
