// internal/logger/pretty.go
package logger

import (
	"errors"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the TUI log file.
const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 7
)

var levelColors = map[zapcore.Level]*color.Color{
	zapcore.DebugLevel: color.New(color.FgCyan),
	zapcore.InfoLevel:  color.New(color.FgGreen),
	zapcore.WarnLevel:  color.New(color.FgYellow),
	zapcore.ErrorLevel: color.New(color.FgRed),
	zapcore.FatalLevel: color.New(color.FgRed, color.Bold),
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

// consoleEncoder prints "15:04:05 [INFO] name msg {fields}" with colored levels.
func consoleEncoder() zapcore.Encoder {
	cfg := encoderConfig()
	cfg.EncodeLevel = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		label := "[" + l.CapitalString() + "]"
		if c, ok := levelColors[l]; ok {
			label = c.Sprint(label)
		}
		enc.AppendString(label)
	}
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(time.TimeOnly))
	}
	return zapcore.NewConsoleEncoder(cfg)
}

func levelFor(debug bool) zapcore.Level {
	if debug {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

// CreatePrettyLogger logs human-readable lines to stderr.
func CreatePrettyLogger(debug bool) (*zap.Logger, error) {
	return zap.New(zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stderr), levelFor(debug))), nil
}

// CreateTUILogger writes JSON lines to a rotating file only; the terminal
// belongs to the UI. The returned func closes the file.
func CreateTUILogger(debug bool, path string) (*zap.Logger, func() error, error) {
	if path == "" {
		return nil, nil, errors.New("log file path is required for TUI logger")
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}

	cfg := encoderConfig()
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(rotator), levelFor(debug))
	return zap.New(core), rotator.Close, nil
}
