package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 日志格式。
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// 日志文件轮转参数。
const (
	logMaxSizeMB  = 100
	logMaxBackups = 5
	logMaxAgeDays = 7
)

// newLogger 按 format/level 构造 slog.Logger。
// file 非空时写入按大小轮转的日志文件，否则写入 w。
// 返回的 io.Closer 在使用文件时关闭轮转器，否则为 nil。
func newLogger(w io.Writer, format, level, file string) (*slog.Logger, io.Closer, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, &usageError{err: fmt.Errorf("invalid log level %q: %w", level, err)}
	}

	var closer io.Closer
	if file != "" {
		rotator := &lumberjack.Logger{
			Filename:   filepath.Clean(file),
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
			LocalTime:  true,
		}
		w, closer = rotator, rotator
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch format {
	case logFormatText:
		handler = slog.NewTextHandler(w, opts)
	case logFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		if closer != nil {
			_ = closer.Close()
		}
		return nil, nil, &usageError{err: fmt.Errorf("invalid log format %q (want text or json)", format)}
	}

	return slog.New(handler), closer, nil
}
