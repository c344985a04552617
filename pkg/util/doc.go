// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xlru: 泛型 LRU 最近使用顺序跟踪，Touch 时报告被淘汰的 key
//
// 设计原则：
//   - 只跟踪顺序，不持有 value
//   - 非并发安全，由上层调用方串行化
package util
