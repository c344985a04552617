package xcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// =============================================================================
// Loader 配置选项
// =============================================================================

// RecommendedLoadTimeout 推荐的加载超时时间。
const RecommendedLoadTimeout = 30 * time.Second

// spanNameLoad 回源加载的 span 名称。
const spanNameLoad = "xcache.load"

// LoadFunc 定义从后端加载数据的函数类型。
type LoadFunc[V any] func(ctx context.Context) (V, error)

// LoaderOptions 定义 Loader 的配置选项。
type LoaderOptions struct {
	// EnableSingleflight 是否启用 singleflight。
	// 启用后，同一 key 的并发未命中只会触发一次回源。
	// 默认为 true。
	EnableSingleflight bool

	// LoadTimeout 单次加载的超时时间。
	//
	// 行为说明：
	//   - LoadTimeout > 0: 使用指定超时时间
	//   - LoadTimeout == 0: 禁用超时（需确保 loadFn 不会无限阻塞）
	//   - LoadTimeout < 0: 使用默认超时 (30s)
	LoadTimeout time.Duration

	// TracerProvider 用于创建回源 span。
	// 默认使用 otel.GetTracerProvider()。
	TracerProvider trace.TracerProvider

	// Logger 用于记录回源 panic 等错误。
	// 默认使用 slog.Default()。
	Logger *slog.Logger
}

// LoaderOption 定义配置 Loader 的函数类型。
type LoaderOption func(*LoaderOptions)

func defaultLoaderOptions() *LoaderOptions {
	return &LoaderOptions{
		EnableSingleflight: true,
		LoadTimeout:        RecommendedLoadTimeout,
		TracerProvider:     otel.GetTracerProvider(),
		Logger:             slog.Default(),
	}
}

// WithSingleflight 设置是否启用 singleflight。
func WithSingleflight(enable bool) LoaderOption {
	return func(o *LoaderOptions) {
		o.EnableSingleflight = enable
	}
}

// WithLoadTimeout 设置单次加载的超时时间。
func WithLoadTimeout(timeout time.Duration) LoaderOption {
	return func(o *LoaderOptions) {
		o.LoadTimeout = timeout
	}
}

// WithTracerProvider 设置 TracerProvider。传入 nil 将被忽略。
func WithTracerProvider(provider trace.TracerProvider) LoaderOption {
	return func(o *LoaderOptions) {
		if provider != nil {
			o.TracerProvider = provider
		}
	}
}

// WithLoaderLogger 设置自定义 Logger。传入 nil 将被忽略。
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(o *LoaderOptions) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// =============================================================================
// Loader 实现
// =============================================================================

// Loader 是基于 Cache 的 Cache-Aside 加载器。
// 流程：缓存查询 → 未命中时回源 → 写入缓存 → 返回数据。
//
// Loader 不持有需要释放的资源，无需 Close；底层 Cache 的生命周期由调用方管理。
type Loader[K comparable, V any] struct {
	cache   *Cache[K, V]
	options *LoaderOptions
	tracer  trace.Tracer
	group   singleflight.Group
}

// NewLoader 创建 Cache-Aside 加载器。
// cache 为 nil 时返回 ErrNilClient。
func NewLoader[K comparable, V any](cache *Cache[K, V], opts ...LoaderOption) (*Loader[K, V], error) {
	if cache == nil {
		return nil, ErrNilClient
	}

	options := defaultLoaderOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	return &Loader[K, V]{
		cache:   cache,
		options: options,
		tracer:  options.TracerProvider.Tracer(instrumentationName),
	}, nil
}

// Load 从缓存读取 key，未命中时调用 loadFn 回源并写入缓存。
//
// 启用 singleflight 时，同一 key 的并发未命中只回源一次。回源使用脱离调用方
// 取消链的独立 context（带 LoadTimeout），首个调用者取消不影响其他等待者；
// 每个调用者仍可通过自己的 ctx 提前返回。
//
// singleflight 以 key 的动态类型加 %#v 文本作为去重键，
// 接口类型的 K 中 int(1) 与 int64(1) 不会合并。
func (l *Loader[K, V]) Load(ctx context.Context, key K, loadFn LoadFunc[V]) (V, error) {
	var zero V
	if loadFn == nil {
		return zero, ErrNilLoader
	}

	if value, ok := l.cache.Read(key); ok {
		return value, nil
	}

	if !l.options.EnableSingleflight {
		loadCtx, cancel := applyLoadTimeout(ctx, l.options.LoadTimeout)
		defer cancel()
		return l.loadAndCache(loadCtx, key, loadFn)
	}

	return l.loadWithSingleflight(ctx, key, loadFn)
}

// loadWithSingleflight 使用 singleflight 合并同一 key 的并发回源。
func (l *Loader[K, V]) loadWithSingleflight(ctx context.Context, key K, loadFn LoadFunc[V]) (V, error) {
	var zero V

	ch := l.group.DoChan(flightKey(key), func() (any, error) {
		// 在共享函数内创建独立 ctx，由实际执行回源的一方负责取消
		loadCtx, cancel := contextWithIndependentTimeout(ctx, l.options.LoadTimeout)
		defer cancel()
		return l.loadAndCache(loadCtx, key, loadFn)
	})

	select {
	case <-ctx.Done():
		// 调用方放弃等待，后台加载继续供其他等待者使用
		return zero, ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			return zero, result.Err
		}
		if result.Val == nil {
			return zero, nil
		}
		value, ok := result.Val.(V)
		if !ok {
			return zero, errors.New("xcache: unexpected result type from singleflight")
		}
		return value, nil
	}
}

// flightKey 生成 singleflight 去重键。
func flightKey[K comparable](key K) string {
	return fmt.Sprintf("%T:%#v", key, key)
}

// loadAndCache 回源并写入缓存。
func (l *Loader[K, V]) loadAndCache(ctx context.Context, key K, loadFn LoadFunc[V]) (value V, err error) {
	// 再次检查缓存（double-check），等待期间可能已被其他调用方写入。
	// 使用 Peek，避免同一次 Load 重复计入未命中统计。
	if v, ok := l.cache.Peek(key); ok {
		return v, nil
	}

	ctx, span := l.tracer.Start(ctx, spanNameLoad,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("cache", l.cache.Name())),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	value, err = l.invoke(ctx, loadFn)
	if err != nil {
		return value, err
	}

	if evicted, ok := l.cache.Write(key, value); ok {
		span.SetAttributes(attribute.String("evicted", fmt.Sprint(evicted)))
	}
	return value, nil
}

// invoke 执行 loadFn，把 panic 转为 ErrLoadPanic。
func (l *Loader[K, V]) invoke(ctx context.Context, loadFn LoadFunc[V]) (value V, err error) {
	defer func() {
		if r := recover(); r != nil {
			l.options.Logger.Error("xcache: load function panicked",
				slog.String("cache", l.cache.Name()),
				slog.Any("panic", r),
			)
			var zero V
			value, err = zero, fmt.Errorf("%w: %v", ErrLoadPanic, r)
		}
	}()
	return loadFn(ctx)
}

// =============================================================================
// context 辅助函数
// =============================================================================

// contextWithIndependentTimeout 创建脱离原始取消链但有独立超时的 context。
// 保留原始 context 的 Value（如 trace 信息）。
//
// timeout 行为：
//   - timeout == 0: 禁用超时
//   - timeout < 0: 使用 RecommendedLoadTimeout
//   - timeout > 0: 使用指定超时时间
func contextWithIndependentTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return applyLoadTimeout(context.WithoutCancel(ctx), timeout)
}

// applyLoadTimeout 根据 timeout 配置创建带超时的 context，规则同 contextWithIndependentTimeout。
func applyLoadTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout == 0 {
		return context.WithCancel(ctx)
	}
	if timeout < 0 {
		timeout = RecommendedLoadTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
