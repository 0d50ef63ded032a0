// Package log wires Uber's Zap logging library into log/slog so the rest
// of the project can log through the standard structured interface.
//
// Initialize() MUST be called once at process start, before the first
// logging statement.
//
// See the Zap docs for more details: https://pkg.go.dev/go.uber.org/zap
package log

import (
	golog "log"
	"log/slog"
	"strings"

	"github.com/blendle/zapdriver"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// LoggingEnv names a logging configuration for a given environment.
type LoggingEnv string

// String implements the Stringer interface.
func (e LoggingEnv) String() string {
	return string(e)
}

const (
	LoggingEnvDev  LoggingEnv = "dev"
	LoggingEnvProd LoggingEnv = "prod"
)

var defaultLoggingEnv = LoggingEnvDev

// Initialize sets up the process-wide logger for the given environment
// and installs it as the slog default.
//
// "prod" uses zapdriver's production configuration so that log entries
// carry StackDriver-compatible structure; any other value uses Zap's
// development configuration.
func Initialize(env string) *slog.Logger {
	var err error
	var logger *zap.Logger
	switch strings.ToLower(env) {
	case LoggingEnvProd.String():
		defaultLoggingEnv = LoggingEnvProd
		config := zapdriver.NewProductionConfig()
		// Make sure sampling is disabled.
		config.Sampling = nil
		// Build the logger and ensure we use the zapdriver Core so that
		// labels are handled correctly.
		logger, err = config.Build(zapdriver.WrapCore())
	case LoggingEnvDev.String():
		fallthrough
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		golog.Panic(err)
	}
	zap.RedirectStdLog(logger)

	slogger := slog.New(NewContextLogHandler(zapslog.NewHandler(logger.Core(), &zapslog.HandlerOptions{
		AddSource: true,
	})))
	slog.SetDefault(slogger)
	return slogger
}

// LabelAttr causes attributes written by zapdriver to be marked as labels
// inside StackDriver when LoggingEnv is LoggingEnvProd. Otherwise it
// wraps slog.String.
func LabelAttr(key, value string) slog.Attr {
	if defaultLoggingEnv == LoggingEnvProd {
		return slog.String("labels."+key, value)
	}
	return slog.String(key, value)
}
