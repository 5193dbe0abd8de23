package logger

import (
	"log/slog"
	"os"
)

// Logger defaults to slog's default logger until Init is called.
var Logger = slog.Default()

// Init installs a text handler on stderr; stdout carries the clipping.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(Logger)
}

// With returns a logger carrying args on every record.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
