// Package logger 初始化全局 zerolog 日志
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init 按运行模式配置全局日志：release 输出 JSON，其余模式输出彩色控制台格式
func Init(mode string) {
	InitWithWriter(mode, os.Stderr)
}

// InitWithWriter 同 Init，可指定输出目标
func InitWithWriter(mode string, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.DebugLevel
	out := w
	if mode == "release" {
		level = zerolog.InfoLevel
	} else {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
