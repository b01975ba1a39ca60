// Package logging 基于 zerolog 构造结构化日志。
//
// 核心算法（candidate / rank / recall）不打日志，只返回错误；
// 日志只出现在编排层：配置加载、离线表加载、批处理跳过失败 session 等。
//
//	log := logging.New(logging.Config{Level: "info", Format: "console"})
//	log.Info().Int("sessions", n).Msg("batch done")
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config 是日志配置，通常来自 YAML 的 log 段。
type Config struct {
	Level  string    `yaml:"level"`  // trace / debug / info / warn / error / disabled，默认 info
	Format string    `yaml:"format"` // json / console，默认 json
	Output io.Writer `yaml:"-"`      // 默认 os.Stderr
}

// New 按配置构造 zerolog.Logger，不修改 zerolog 的全局状态。
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// Nop 返回丢弃所有输出的 logger。
func Nop() zerolog.Logger { return zerolog.Nop() }

// ParseLevel 把字符串级别转为 zerolog.Level，无法识别时为 info。
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
