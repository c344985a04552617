// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xcache: 有界进程内 key-value 缓存，可插拔淘汰策略、淘汰通知、Cache-Aside 加载器
//
// 设计原则：
//   - 存储与淘汰顺序在同一把锁内同步更新
//   - 内置可观测性（指标、追踪）
//   - 生命周期由调用方显式持有，不依赖进程级全局状态
package storage
