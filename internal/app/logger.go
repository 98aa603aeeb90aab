package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/bookmarks-backend/internal/config"
)

// Path prefixes whose last segment is a share token.
var tokenPaths = []string{"/api/shared/", "/api/shares/"}

// NewLogger builds the process logger on stderr and installs it as the slog
// default. "json" is for production; "text" adds source locations. Share
// tokens in request paths are masked.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   strings.EqualFold(cfg.Format, "text"),
		ReplaceAttr: redactTokens,
	}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func redactTokens(_ []string, a slog.Attr) slog.Attr {
	if a.Key != "path" || a.Value.Kind() != slog.KindString {
		return a
	}
	path := a.Value.String()
	for _, prefix := range tokenPaths {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if i := strings.LastIndexByte(path, '/'); i >= len(prefix)-1 && i < len(path)-1 {
			return slog.String(a.Key, path[:i+1]+"***")
		}
	}
	return a
}

// parseLevel accepts the slog level names in any case, including offsets
// such as "debug-2". Anything else means info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
