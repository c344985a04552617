// xcachectl 是 xcache 进程内缓存的演示与压测命令行工具。
//
// 用法:
//
//	xcachectl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件路径（.yaml/.yml/.json），读取其中的 cache 段
//	-n, --max-items   最大条目数，覆盖配置文件中的 max_items (默认: 3)
//	    --log-format  日志格式 text|json (默认: text)
//	    --log-level   日志级别 debug|info|warn|error (默认: info)
//	    --log-file    日志文件路径，按大小轮转；为空时输出到 stderr
//
// 命令:
//
//	demo           演示写入、读取、覆盖与淘汰，打印每次淘汰
//	bench          并发随机读写压测，结束后打印统计
//	help           显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（配置文件不可读等）
//	2: 参数错误（无效的 max-items、未知 flag、未知命令等）
//
// 示例:
//
//	xcachectl demo                           # 使用默认容量 3 演示
//	xcachectl -n 5 demo                      # 容量 5
//	xcachectl -c app.yaml bench --workers 8  # 读取配置文件并以 8 个 worker 压测
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xcachectl",
		Usage:     "xcache 进程内 LRU 缓存演示与压测工具",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.StringFlag{
				Name:  flagConfigSection,
				Usage: "配置文件中缓存配置所在路径",
				Value: defaultConfigSection,
			},
			&cli.IntFlag{
				Name:    flagMaxItems,
				Aliases: []string{"n"},
				Usage:   "最大条目数（覆盖配置文件）",
				Value:   defaultMaxItems,
			},
			&cli.StringFlag{
				Name:  flagLogFormat,
				Usage: "日志格式 (text|json)",
				Value: logFormatText,
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "日志级别 (debug|info|warn|error)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "日志文件路径（按大小轮转）",
			},
		},
		Commands:     createCommands(),
		OnUsageError: wrapUsageError,
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
		Description: `xcachectl 基于 xcache 构造一个有界 LRU 缓存并对其施加负载。

配置来源（优先级从高到低）:
  --max-items         命令行显式指定的容量
  --config            配置文件中 cache 段的 max_items/policy
  默认值              max_items=3, policy=lru`,
	}
}

// run 执行应用并返回退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)

	if err := app.Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// ExitCoder（如未知帮助主题）已由 ExitErrHandler 输出
		var exitCoder cli.ExitCoder
		if errors.As(err, &exitCoder) {
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
