package xcache

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// Option 定义 Cache 可选配置函数类型。
type Option[K comparable, V any] func(*options[K, V])

// options 内部可选配置。
type options[K comparable, V any] struct {
	logger        *slog.Logger
	name          string
	meterProvider metric.MeterProvider
	policy        EvictionPolicy[K]
	onEvicted     func(key K)
}

func defaultOptions[K comparable, V any]() *options[K, V] {
	return &options[K, V]{
		logger: slog.Default(),
	}
}

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略，保持使用默认值。
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(o *options[K, V]) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置缓存名称，用于日志和指标中区分实例。
// 默认为 "cache-<uuid>"。
func WithName[K comparable, V any](name string) Option[K, V] {
	return func(o *options[K, V]) {
		o.name = name
	}
}

// WithMeterProvider 设置 OpenTelemetry MeterProvider 以启用指标。
// 默认不采集指标。
func WithMeterProvider[K comparable, V any](provider metric.MeterProvider) Option[K, V] {
	return func(o *options[K, V]) {
		o.meterProvider = provider
	}
}

// WithPolicy 注入自定义淘汰策略，替代 Config.Policy 选择的内置策略。
//
// 策略实例归 Cache 独占，不得在多个 Cache 间共享。
// 策略自身的容量决定何时淘汰，调用方需保证它与 Config.MaxItems 一致。
func WithPolicy[K comparable, V any](policy EvictionPolicy[K]) Option[K, V] {
	return func(o *options[K, V]) {
		o.policy = policy
	}
}

// WithOnEvicted 在构造时注册一个淘汰监听器，等价于构造后立即调用 Subscribe。
//
// 回调在 Cache 的互斥锁内同步执行，严禁在回调中调用同一 Cache 的任何方法，否则会死锁。
func WithOnEvicted[K comparable, V any](fn func(key K)) Option[K, V] {
	return func(o *options[K, V]) {
		o.onEvicted = fn
	}
}
