package xcache

// Stats 定义缓存的统计信息。
type Stats struct {
	// Hits Read 命中次数。
	Hits uint64

	// Misses Read 未命中次数。
	Misses uint64

	// HitRatio 命中率 (0.0 - 1.0)，没有读操作时为 0。
	HitRatio float64

	// Writes Write 次数（含覆盖）。
	Writes uint64

	// Evictions 因容量限制被淘汰的条目数。
	Evictions uint64
}

// Stats 返回缓存统计信息。
// 各计数器独立读取，并发写入时快照之间可能存在细微不一致。
func (c *Cache[K, V]) Stats() Stats {
	s := Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Writes:    c.writes.Load(),
		Evictions: c.evictions.Load(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRatio = float64(s.Hits) / float64(total)
	}
	return s
}
