package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xcachekit/pkg/storage/xcache"
)

// 全局 flag 名称。
const (
	flagConfig        = "config"
	flagConfigSection = "config-section"
	flagMaxItems      = "max-items"
	flagLogFormat     = "log-format"
	flagLogLevel      = "log-level"
	flagLogFile       = "log-file"
)

const (
	defaultMaxItems      = 3
	defaultConfigSection = "cache"

	// ctxCheckInterval bench worker 检查取消的操作间隔。
	ctxCheckInterval = 256
)

// usageError 表示参数错误，映射为退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// wrapUsageError 把 urfave/cli 的 flag 解析错误转换为 usageError。
func wrapUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{err: err}
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createDemoCommand(),
		createBenchCommand(),
	}
}

// createDemoCommand 创建 demo 子命令。
func createDemoCommand() *cli.Command {
	return &cli.Command{
		Name:         "demo",
		Usage:        "演示写入、读取、覆盖与淘汰",
		OnUsageError: wrapUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env, err := setupEnv(cmd)
			if err != nil {
				return err
			}
			defer env.close()
			return cmdDemo(ctx, cmd.Root().Writer, env)
		},
	}
}

// createBenchCommand 创建 bench 子命令。
func createBenchCommand() *cli.Command {
	return &cli.Command{
		Name:         "bench",
		Usage:        "并发随机读写压测",
		OnUsageError: wrapUsageError,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "并发 worker 数",
				Value:   4,
			},
			&cli.IntFlag{
				Name:  "ops",
				Usage: "每个 worker 的操作数",
				Value: 10000,
			},
			&cli.IntFlag{
				Name:  "keys",
				Usage: "key 空间大小",
				Value: 1000,
			},
			&cli.IntFlag{
				Name:  "write-ratio",
				Usage: "写操作占比（百分比 0-100）",
				Value: 20,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "随机数种子",
				Value: 1,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := benchOptions{
				workers:    cmd.Int("workers"),
				ops:        cmd.Int("ops"),
				keys:       cmd.Int("keys"),
				writeRatio: cmd.Int("write-ratio"),
				seed:       uint64(cmd.Int("seed")),
			}
			if err := opts.validate(); err != nil {
				return err
			}

			env, err := setupEnv(cmd)
			if err != nil {
				return err
			}
			defer env.close()
			return cmdBench(ctx, cmd.Root().Writer, env, opts)
		},
	}
}

// =============================================================================
// 运行环境
// =============================================================================

// env 命令运行所需的配置与日志。
type env struct {
	cfg    xcache.Config
	logger *slog.Logger
	closer io.Closer
}

func (e *env) close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// setupEnv 根据全局 flag 解析缓存配置并构造日志记录器。
func setupEnv(cmd *cli.Command) (*env, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closer, err := newLogger(
		cmd.Root().ErrWriter,
		cmd.String(flagLogFormat),
		cmd.String(flagLogLevel),
		cmd.String(flagLogFile),
	)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, closer: closer}, nil
}

// resolveConfig 合并配置文件与命令行 flag，合并完成后统一校验。
// 配置文件不可读返回普通错误；格式不支持或取值无效返回 usageError。
func resolveConfig(cmd *cli.Command) (xcache.Config, error) {
	cfg := xcache.Config{MaxItems: cmd.Int(flagMaxItems)}

	if path := cmd.String(flagConfig); path != "" {
		loaded, err := xcache.ReadConfig(path, cmd.String(flagConfigSection))
		if err != nil {
			if errors.Is(err, xcache.ErrUnsupportedFormat) {
				return xcache.Config{}, &usageError{err: err}
			}
			return xcache.Config{}, err
		}
		cfg.Policy = loaded.Policy
		if !cmd.IsSet(flagMaxItems) {
			cfg.MaxItems = loaded.MaxItems
		}
	}

	if err := cfg.Validate(); err != nil {
		return xcache.Config{}, &usageError{err: err}
	}
	return cfg, nil
}

// =============================================================================
// demo
// =============================================================================

// cmdDemo 依次写入 MaxItems 个条目、读取最早的条目、写入新条目触发淘汰、
// 覆盖已有条目，并打印每一步的结果。
func cmdDemo(ctx context.Context, w io.Writer, e *env) error {
	var factory xcache.Factory[int, string]
	defer factory.Destroy()

	cache, err := factory.Create(e.cfg,
		xcache.WithLogger[int, string](e.logger),
		xcache.WithName[int, string]("demo"),
	)
	if err != nil {
		return err
	}

	unsubscribe := cache.Subscribe(func(key int) {
		fmt.Fprintf(w, "  evicted: %d\n", key)
	})
	defer unsubscribe()

	fmt.Fprintf(w, "cache %q max_items=%d policy=%s\n", cache.Name(), e.cfg.MaxItems, cache.Config().Policy)

	n := e.cfg.MaxItems
	for i := range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		writeStep(w, cache, i, "Item "+strconv.Itoa(i+1))
	}

	// 读取最早写入的 key，使其成为最近使用
	if v, ok := cache.Read(0); ok {
		fmt.Fprintf(w, "read 0 = %q\n", v)
	}
	fmt.Fprintf(w, "order: %v\n", cache.Keys())

	// 缓存已满，写入新 key 淘汰最久未使用的条目
	writeStep(w, cache, n, "Item "+strconv.Itoa(n+1))

	// 覆盖已有 key 不触发淘汰
	writeStep(w, cache, 0, "Item 1 updated")
	fmt.Fprintf(w, "order: %v\n", cache.Keys())

	printStats(w, cache.Stats())
	return nil
}

func writeStep(w io.Writer, cache *xcache.Cache[int, string], key int, value string) {
	fmt.Fprintf(w, "write %d = %q\n", key, value)
	cache.Write(key, value)
}

// =============================================================================
// bench
// =============================================================================

// benchOptions bench 子命令参数。
type benchOptions struct {
	workers    int
	ops        int
	keys       int
	writeRatio int
	seed       uint64
}

func (o benchOptions) validate() error {
	switch {
	case o.workers < 1:
		return &usageError{err: fmt.Errorf("workers must be >= 1, got %d", o.workers)}
	case o.ops < 0:
		return &usageError{err: fmt.Errorf("ops must be >= 0, got %d", o.ops)}
	case o.keys < 1:
		return &usageError{err: fmt.Errorf("keys must be >= 1, got %d", o.keys)}
	case o.writeRatio < 0 || o.writeRatio > 100:
		return &usageError{err: fmt.Errorf("write-ratio must be in [0, 100], got %d", o.writeRatio)}
	}
	return nil
}

// cmdBench 以 workers 个 goroutine 对同一缓存执行随机读写。
// 读操作通过 Loader 进行，未命中时回源生成值并写入缓存。
func cmdBench(ctx context.Context, w io.Writer, e *env, opts benchOptions) error {
	cache, err := xcache.New(e.cfg,
		xcache.WithLogger[int, string](e.logger),
		xcache.WithName[int, string]("bench"),
	)
	if err != nil {
		return err
	}
	defer cache.Close()

	loader, err := xcache.NewLoader(cache, xcache.WithLoaderLogger(e.logger))
	if err != nil {
		return err
	}

	e.logger.Info("bench started",
		slog.Int("workers", opts.workers),
		slog.Int("ops", opts.ops),
		slog.Int("keys", opts.keys),
		slog.Int("max_items", e.cfg.MaxItems),
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for worker := range opts.workers {
		g.Go(func() error {
			return benchWorker(gctx, cache, loader, opts, uint64(worker))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	total := opts.workers * opts.ops
	fmt.Fprintf(w, "ops: %d in %s", total, elapsed.Round(time.Microsecond))
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(w, " (%.0f ops/s)", float64(total)/secs)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "items: %d/%d\n", cache.Len(), e.cfg.MaxItems)
	printStats(w, cache.Stats())

	e.logger.Info("bench finished", slog.Duration("elapsed", elapsed))
	return nil
}

func benchWorker(ctx context.Context, cache *xcache.Cache[int, string], loader *xcache.Loader[int, string], opts benchOptions, worker uint64) error {
	r := rand.New(rand.NewPCG(opts.seed, worker))
	for i := range opts.ops {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		key := r.IntN(opts.keys)
		if r.IntN(100) < opts.writeRatio {
			cache.Write(key, strconv.Itoa(i))
			continue
		}
		if _, err := loader.Load(ctx, key, func(context.Context) (string, error) {
			return "loaded-" + strconv.Itoa(key), nil
		}); err != nil {
			return fmt.Errorf("worker %d load key %d: %w", worker, key, err)
		}
	}
	return nil
}

func printStats(w io.Writer, s xcache.Stats) {
	fmt.Fprintf(w, "stats: hits=%d misses=%d hit_ratio=%.2f writes=%d evictions=%d\n",
		s.Hits, s.Misses, s.HitRatio, s.Writes, s.Evictions)
}
