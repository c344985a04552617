package xcache

import (
	"fmt"

	"github.com/omeyang/xcachekit/pkg/util/xlru"
)

// PolicyKind 淘汰策略类型。
type PolicyKind string

const (
	// PolicyLRU 最久未使用淘汰（默认）。
	PolicyLRU PolicyKind = "lru"
)

// IsValid 检查策略类型是否有效。空值视为默认的 PolicyLRU。
func (k PolicyKind) IsValid() bool {
	switch k {
	case PolicyLRU, "":
		return true
	default:
		return false
	}
}

// Config 缓存配置。
// 值类型，构造后不可变，可在 goroutine 间自由共享。
type Config struct {
	// MaxItems 最大条目数，必须 >= 1。
	MaxItems int `json:"max_items" yaml:"max_items" koanf:"max_items"`

	// Policy 淘汰策略，默认为 PolicyLRU。
	Policy PolicyKind `json:"policy" yaml:"policy" koanf:"policy"`
}

// Validate 验证配置是否有效。
// 返回的错误总是包装 ErrInvalidConfig。
func (c Config) Validate() error {
	if c.MaxItems < 1 {
		return fmt.Errorf("%w: max_items must be >= 1, got %d", ErrInvalidConfig, c.MaxItems)
	}
	if !c.Policy.IsValid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnsupportedPolicy, c.Policy)
	}
	return nil
}

// withDefaults 返回填充默认值后的配置。
func (c Config) withDefaults() Config {
	if c.Policy == "" {
		c.Policy = PolicyLRU
	}
	return c
}

// newPolicy 根据配置创建淘汰策略。调用前 cfg 必须已通过 Validate。
func newPolicy[K comparable](cfg Config) (EvictionPolicy[K], error) {
	switch cfg.withDefaults().Policy {
	case PolicyLRU:
		p, err := xlru.New[K](cfg.MaxItems)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnsupportedPolicy, cfg.Policy)
	}
}
