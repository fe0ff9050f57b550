package logger

import "log/slog"

func typed(logType string, attrs []any) []any {
	return append([]any{slog.String("type", logType)}, attrs...)
}

// LogSystem records a lifecycle event under the SYS column.
func LogSystem(msg string, attrs ...any) {
	slog.Info(msg, typed("sys", attrs)...)
}

// LogError records err under the ERR column.
func LogError(msg string, err error, attrs ...any) {
	slog.Error(msg, typed("error", append([]any{slog.Any("error", err)}, attrs...))...)
}
