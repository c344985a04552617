package xcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式（推荐）。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// configTag 配置结构体标签名。
const configTag = "koanf"

// LoadConfig 从文件加载缓存配置。
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json）。
// section 为配置所在路径（如 "cache"），空字符串表示整个文件。
// 返回的配置已通过 Validate。
func LoadConfig(path, section string) (Config, error) {
	cfg, err := ReadConfig(path, section)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadConfig 与 LoadConfig 相同，但不校验取值。
// 用于调用方需要先合并其他来源（如命令行 flag）再统一 Validate 的场景。
func ReadConfig(path, section string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("%w: empty config path", ErrLoadConfig)
	}

	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	return decodeConfig(data, format, section)
}

// ParseConfig 从字节数据解析缓存配置。
// 空数据得到零值配置，随后会因 max_items 缺失而校验失败。
func ParseConfig(data []byte, format Format, section string) (Config, error) {
	cfg, err := decodeConfig(data, format, section)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeConfig 把字节数据解码为 Config，不做校验。
func decodeConfig(data []byte, format Format, section string) (Config, error) {
	parser, err := parserFor(format)
	if err != nil {
		return Config{}, err
	}

	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf(section, &cfg, koanf.UnmarshalConf{Tag: configTag}); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	return cfg, nil
}

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}

// parserFor 返回格式对应的 koanf 解析器。
func parserFor(format Format) (koanf.Parser, error) {
	switch format {
	case FormatYAML:
		return yaml.Parser(), nil
	case FormatJSON:
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
