package lgr

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/lumberjack"
)

// Logger is the process wide logger. It writes colored records to stderr until
// Init adds the rotating JSON file.
var Logger = slog.New(NewPrettyHandler(os.Stderr, &slog.HandlerOptions{
	Level:       slog.LevelInfo,
	ReplaceAttr: replaceAttr,
}))

// Init rebuilds Logger with the given level and a rotating JSON copy of every
// record under folder.
func Init(folder, level string) {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: replaceAttr,
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(folder, "client.log"),
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     7,    // days
		Compress:   true, // compress old logs
	}

	Logger = slog.New(newFanoutHandler(
		NewPrettyHandler(os.Stderr, opts),
		slog.NewJSONHandler(file, opts),
	))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Error returns an error attribute for the logger
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}
