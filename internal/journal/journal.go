// Package journal records the actions fink takes (storage init, service
// launches, stop signals) to a rotated JSON log file.
package journal

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/astrolabsoftware/fink-cli/internal/util"
)

// Rotation settings for the journal file.
const (
	maxSizeMB  = 20
	maxBackups = 5
	maxAgeDays = 30
)

// Open returns a logger writing JSON lines to path at the given level.
// An empty path returns a no-op logger. Callers should Sync the logger
// before exiting.
func Open(path, level string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	if err := util.MkdirAll(filepath.Dir(path)); err != nil {
		return nil, err
	}

	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		LocalTime:  true,
	})

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), sink, ParseLevel(level))
	return zap.New(core).With(zap.Int("pid", os.Getpid())), nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}
}

// ParseLevel maps the pipeline's LOG_LEVEL values to zap levels. Unknown
// values fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR", "CRITICAL":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Tail returns the last n lines of the journal at path.
func Tail(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return lines, nil
}
