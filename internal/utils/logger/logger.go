package logger

import (
	"os"

	"golang.org/x/exp/slog"

	"otsshare/internal/app/server/config"
)

// New returns a logger configured for the environment:
// local - colored human readable output, debug level;
// dev   - JSON, debug level;
// prod and anything else - JSON, info level.
//
// A non-empty level (debug, info, warn, error) overrides the environment's
// default; an unparsable one is ignored.
func New(env, level string) *slog.Logger {
	lvl := defaultLevel(env)
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(level)); err == nil {
			lvl = parsed
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if env == config.EnvLocal {
		return slog.New(PrettyHandlerOptions{SlogOpts: opts}.NewPrettyHandler(os.Stdout))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func defaultLevel(env string) slog.Level {
	switch env {
	case config.EnvLocal, config.EnvDev:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
