package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Level уровень логирования
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel парсит уровень логирования из строки конфига
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("logger: unknown level %q", s)
	}
}

// Logger простой уровневый логгер, пишет одновременно в файл и stdout
type Logger struct {
	level Level
	out   *log.Logger
	file  *os.File
}

// New создает логгер. Если file пустой, пишем только в stdout.
func New(file string, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	writers := []io.Writer{os.Stdout}
	var f *os.File

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		writers = append(writers, f)
	}

	return &Logger{
		level: lvl,
		out:   log.New(io.MultiWriter(writers...), "", log.LstdFlags|log.Lmicroseconds),
		file:  f,
	}, nil
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) logf(lvl Level, prefix, format string, v ...interface{}) {
	if lvl < l.level {
		return
	}
	l.out.Printf(prefix+" "+format, v...)
}

// Debug логирует отладочное сообщение
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(LevelDebug, "[DEBUG]", format, v...)
}

// Info логирует информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(LevelInfo, "[INFO]", format, v...)
}

// Warn логирует предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	l.logf(LevelWarn, "[WARN]", format, v...)
}

// Error логирует ошибку
func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(LevelError, "[ERROR]", format, v...)
}

// Fatal логирует ошибку и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.logf(LevelError, "[FATAL]", format, v...)
	if l.file != nil {
		_ = l.file.Close()
	}
	os.Exit(1)
}
