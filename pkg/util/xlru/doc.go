// Package xlru 提供 LRU 淘汰策略的最近使用顺序跟踪器。
//
// xlru 基于 github.com/hashicorp/golang-lru/v2/simplelru 封装，只跟踪 key 的
// 最近使用顺序（RecencyOrder），不保存 value。它是 xcache 引擎的默认淘汰策略，
// 由引擎负责持有 key→value 存储并与本包保持同步。
//
// # 核心语义
//
// [Policy.Touch] 是唯一会改变顺序的入口：
//   - key 已存在：移动到最近使用端（MRU），从不触发淘汰
//   - key 不存在且已满：移除最久未使用（LRU）的 key 并返回，再把新 key 追加到 MRU 端
//   - key 不存在且未满：直接追加到 MRU 端
//
// 顺序是全序的（底层为双向链表），因此"最久未使用"永远没有歧义，不需要次级排序规则。
//
// # 配置
//
//   - size：最大 key 数，必须 > 0 且 ≤ 16,777,216
//
// # 并发
//
// Policy 本身不是并发安全的，所有调用都应在 xcache 引擎的互斥锁内进行。
// 单独使用时调用方需自行加锁。
//
// # 注意事项
//
//   - [Policy.Keys]、[Policy.Len] 不改变顺序
//   - [Policy.Keys] 按从最旧到最新的顺序返回
//   - 淘汰结果通过返回值直接交给调用方，不使用回调
package xlru
