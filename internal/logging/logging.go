// Package logging wires a lazily-initialized zap logger for this module's
// own binary, generalized from a web server's request/game
// context fields to a placement's coordinate and region id.
package logging

import (
	"os"

	"go.uber.org/zap"
)

var global *zap.Logger

// Init builds the global logger. env selects zap's production or
// development config (anything other than "production" gets development
// defaults); level selects the minimum logged severity ("debug", "info",
// "warn", "error"; any other value, including empty, defaults to "info").
func Init(env, level string) error {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	switch level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	built, err := config.Build()
	if err != nil {
		return err
	}
	global = built
	return nil
}

// InitFromEnv calls Init using CARCASSONNE_ENV and CARCASSONNE_LOG_LEVEL.
func InitFromEnv() error {
	return Init(os.Getenv("CARCASSONNE_ENV"), os.Getenv("CARCASSONNE_LOG_LEVEL"))
}

// Get returns the global logger, falling back to a development logger if
// Init was never called (matches a library that may be embedded without
// its host ever touching this package).
func Get() *zap.Logger {
	if global == nil {
		global, _ = zap.NewDevelopment()
	}
	return global
}

// Sync flushes any buffered log entries.
func Sync() error {
	if global != nil {
		return global.Sync()
	}
	return nil
}

// WithPlacement returns a logger annotated with a placement's board
// coordinate, for tracing a single Board.Place call end to end.
func WithPlacement(x, y int) *zap.Logger {
	return Get().With(zap.Int("x", x), zap.Int("y", y))
}

// WithRegion returns a logger annotated with a region id, for tracing a
// single region's merges and closure.
func WithRegion(regionID string) *zap.Logger {
	return Get().With(zap.String("region_id", regionID))
}
