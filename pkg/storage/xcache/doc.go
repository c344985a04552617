// Package xcache 提供有界、并发安全的进程内 key-value 缓存引擎，淘汰策略可插拔，默认 LRU。
//
// # 设计理念
//
// 引擎（[Cache]）持有 key→value 存储，淘汰策略（[EvictionPolicy]）只负责 key 的最近使用顺序。
// 两者在同一把互斥锁下一起变更，任何操作完成后都满足：
//   - 存储的 key 集合与策略跟踪的 key 集合完全相同
//   - 条目数不超过 Config.MaxItems
//   - 策略顺序中没有重复 key，MRU 端总是最近一次被读或写的 key
//
// # 核心组件
//
//   - Cache：Write/Read/Clear/Delete，淘汰通知（Subscribe），统计（Stats）
//   - EvictionPolicy：Touch 契约，默认实现为 xlru.Policy
//   - Config：MaxItems + Policy，可通过 LoadConfig/ParseConfig 从 YAML/JSON 加载
//   - Factory：显式持有的生命周期管理器，Create 幂等、Destroy 可重建
//   - Loader：Cache-Aside 回源加载器，内置 singleflight
//   - Metrics：基于 OpenTelemetry 的读写/淘汰指标（可选）
//
// # 快速开始
//
//	c, err := xcache.New[string, []byte](xcache.Config{MaxItems: 1000})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	if evicted, ok := c.Write("k", []byte("v")); ok {
//	    log.Printf("evicted %s", evicted)
//	}
//	v, ok := c.Read("k")
//
// 详细使用示例参考 example_test.go。
//
// # 并发模型
//
// 每个 Cache 只有一把 sync.Mutex，Read/Write/Clear 等所有操作都是完整临界区，
// 不区分读写（Read 也会更新最近使用顺序）。获取锁会无限期阻塞，没有超时。
//
// # 淘汰通知
//
// Write 直接返回被淘汰的 key，大多数调用方不需要监听器。
// 通过 Subscribe 注册的监听器在锁内按注册顺序同步执行，时机为：
// 被淘汰的 key 已从存储移除、新 key 尚未写入。
// 严禁在监听器中调用同一个 Cache 的任何方法（会死锁）。
// 监听器 panic 会被 recover 并记录日志，不会破坏存储与策略的同步。
// Clear 和 Close 不触发通知。
//
// # 错误
//
//   - ErrInvalidConfig：MaxItems < 1 等配置错误，构造时立即返回
//   - ErrInvariantViolation：存储与策略失去同步（Read 命中时策略报告了淘汰），
//     属于引擎缺陷，以 panic 方式快速失败，不做静默修复
//
// # 生命周期
//
// Cache 不依赖 finalizer。所有者必须显式调用 Close（或 Factory.Destroy），
// Close 后读操作返回 miss，写操作被静默忽略。
package xcache
