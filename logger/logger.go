package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
// File is optional; when set, JSON records are also written to a rotated file.
type Options struct {
	Level  string
	Format string // json or console
	File   string
}

// New builds a zap logger writing to stdout and, optionally, a rotated file.
func New(opts Options) (*zap.Logger, error) {
	lvl := zap.InfoLevel
	if opts.Level != "" {
		if err := lvl.Set(strings.ToLower(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.MessageKey = "message"
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "", "json":
		enc = zapcore.NewJSONEncoder(encoderCfg)
	case "console":
		enc = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)}
	if strings.TrimSpace(opts.File) != "" {
		w := &lumberjack.Logger{Filename: opts.File, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), lvl))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// Must is New for process start-up, where a bad logger config is fatal.
func Must(opts Options) *zap.Logger {
	l, err := New(opts)
	if err != nil {
		panic(err)
	}
	return l
}
