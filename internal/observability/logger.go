package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// secretKeys are attribute names whose values never reach the log output.
var secretKeys = map[string]struct{}{
	"password":      {},
	"password_hash": {},
	"token":         {},
	"refresh_token": {},
	"authorization": {},
}

// NewLogger returns the JSON logger for env. level ("debug", "info", "warn",
// "error") overrides the env default when set.
func NewLogger(env, level string) *slog.Logger {
	return newLogger(os.Stdout, env, level)
}

func newLogger(w io.Writer, env, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       parseLevel(env, level),
		ReplaceAttr: redact,
	})

	// stamp trace/span ids when a span is active on the record's context
	return slog.New(NewContextHandler(handler)).With("service", "fittrack-api")
}

func parseLevel(env, level string) slog.Level {
	var l slog.Level
	if level != "" && l.UnmarshalText([]byte(level)) == nil {
		return l
	}
	if env == "dev" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if _, ok := secretKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, "[redacted]")
	}
	return a
}
