package xcache

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// 指标名称常量
const (
	// metricNameReadsTotal 读操作计数器（属性 hit 区分命中/未命中）
	metricNameReadsTotal = "xcache.reads.total"
	// metricNameWritesTotal 写操作计数器
	metricNameWritesTotal = "xcache.writes.total"
	// metricNameEvictionsTotal 淘汰计数器
	metricNameEvictionsTotal = "xcache.evictions.total"
	// metricNameItems 当前条目数
	metricNameItems = "xcache.items"

	instrumentationName = "github.com/omeyang/xcachekit/xcache"
)

// Metrics 缓存指标收集器。
// nil *Metrics 是合法值，所有记录方法都是空操作。
type Metrics struct {
	readsTotal     metric.Int64Counter
	writesTotal    metric.Int64Counter
	evictionsTotal metric.Int64Counter
	items          metric.Int64UpDownCounter

	// 预先计算的属性集，避免热路径分配
	base metric.MeasurementOption
	hit  metric.MeasurementOption
	miss metric.MeasurementOption
}

// NewMetrics 创建指标收集器。
// 如果 meterProvider 为 nil，返回 nil（不收集指标）。
func NewMetrics(meterProvider metric.MeterProvider, cacheName string) (*Metrics, error) {
	if meterProvider == nil {
		return nil, nil
	}

	meter := meterProvider.Meter(instrumentationName,
		metric.WithInstrumentationVersion("1.0.0"),
	)

	readsTotal, err := meter.Int64Counter(
		metricNameReadsTotal,
		metric.WithDescription("缓存读操作总数"),
		metric.WithUnit("{read}"),
	)
	if err != nil {
		return nil, err
	}

	writesTotal, err := meter.Int64Counter(
		metricNameWritesTotal,
		metric.WithDescription("缓存写操作总数"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, err
	}

	evictionsTotal, err := meter.Int64Counter(
		metricNameEvictionsTotal,
		metric.WithDescription("因容量限制被淘汰的条目数"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	items, err := meter.Int64UpDownCounter(
		metricNameItems,
		metric.WithDescription("当前缓存条目数"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	cacheAttr := attribute.String("cache", cacheName)
	return &Metrics{
		readsTotal:     readsTotal,
		writesTotal:    writesTotal,
		evictionsTotal: evictionsTotal,
		items:          items,
		base:           metric.WithAttributeSet(attribute.NewSet(cacheAttr)),
		hit:            metric.WithAttributeSet(attribute.NewSet(cacheAttr, attribute.Bool("hit", true))),
		miss:           metric.WithAttributeSet(attribute.NewSet(cacheAttr, attribute.Bool("hit", false))),
	}, nil
}

// RecordRead 记录一次读操作。
func (m *Metrics) RecordRead(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.readsTotal.Add(context.Background(), 1, m.hit)
		return
	}
	m.readsTotal.Add(context.Background(), 1, m.miss)
}

// RecordWrite 记录一次写操作，inserted 表示写入的是新 key。
func (m *Metrics) RecordWrite(inserted bool) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.writesTotal.Add(ctx, 1, m.base)
	if inserted {
		m.items.Add(ctx, 1, m.base)
	}
}

// RecordEviction 记录一次淘汰。
func (m *Metrics) RecordEviction() {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.evictionsTotal.Add(ctx, 1, m.base)
	m.items.Add(ctx, -1, m.base)
}

// RecordRemoved 记录非淘汰原因移除的条目（Delete/Clear/Close）。
func (m *Metrics) RecordRemoved(n int) {
	if m == nil || n == 0 {
		return
	}
	m.items.Add(context.Background(), -int64(n), m.base)
}
