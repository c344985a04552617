package xcache

import "errors"

// =============================================================================
// 配置错误
// =============================================================================

var (
	// ErrInvalidConfig 表示配置参数无效（如 MaxItems < 1）。
	// 这是一个配置错误，缓存不会被创建。
	ErrInvalidConfig = errors.New("xcache: invalid configuration")

	// ErrUnsupportedPolicy 表示不支持的淘汰策略。
	// 总是与 ErrInvalidConfig 一起包装返回。
	ErrUnsupportedPolicy = errors.New("xcache: unsupported eviction policy")

	// ErrUnsupportedFormat 表示不支持的配置文件格式。
	ErrUnsupportedFormat = errors.New("xcache: unsupported config format")

	// ErrLoadConfig 表示配置文件读取或解析失败。
	ErrLoadConfig = errors.New("xcache: failed to load config")
)

// =============================================================================
// 引擎错误
// =============================================================================

var (
	// ErrInvariantViolation 表示存储与淘汰策略失去同步。
	// 正确的实现中永远不会出现；一旦检测到，Read 会以包装此错误的 panic 快速失败。
	ErrInvariantViolation = errors.New("xcache: invariant violation")
)

// =============================================================================
// Loader 相关错误
// =============================================================================

var (
	// ErrNilClient 表示传入的缓存实例为 nil。
	ErrNilClient = errors.New("xcache: nil cache")

	// ErrNilLoader 表示 loader 函数为 nil。
	ErrNilLoader = errors.New("xcache: nil loader function")

	// ErrLoadPanic 表示 loadFn（用户提供的回源函数）发生了 panic。
	ErrLoadPanic = errors.New("xcache: load function panicked")
)
