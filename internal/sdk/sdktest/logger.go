package sdktest

import (
	"log/slog"
	"os"
)

// Logger returns a JSON logger that only emits errors.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}
