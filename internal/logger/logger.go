// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses zerolog for logging and integrates with New Relic to
// instrument the codebase, forwarding logs, metrics, and traces.
package logger

import (
	"io"
	"os"

	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/shootit/greme/internal/config"
)

// LoggerService wraps the optional New Relic application instance.
//
// When New Relic is not configured (empty license key) the service still
// exists but GetApplication returns nil, and every consumer degrades to
// plain logging.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService initializes the New Relic application if a license key
// is configured. A missing key is not an error; it disables the agent.
func NewLoggerService(cfg *config.Config) (*LoggerService, error) {
	obs := cfg.Observability
	if obs == nil || obs.NewRelic.LicenseKey == "" {
		return &LoggerService{}, nil
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(obs.ServiceName),
		newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
	}
	if obs.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stdout))
	}

	nrApp, err := newrelic.NewApplication(opts...)
	if err != nil {
		return nil, err
	}

	return &LoggerService{nrApp: nrApp}, nil
}

// GetApplication returns the New Relic application instance, or nil when
// the agent is disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	return ls.nrApp
}

// NewLogger builds the application's main structured logger.
//
// Format follows the observability config: console output for local
// development, JSON otherwise. When New Relic log forwarding is enabled,
// the output writer is wrapped so log lines are decorated with linking
// metadata and forwarded by the agent.
func NewLogger(cfg *config.Config, loggerService *LoggerService) *zerolog.Logger {
	level := parseLevel(cfg.Observability.GetLogLevel())

	var out io.Writer = os.Stdout
	if cfg.Observability.Logging.Format == "console" || cfg.Primary.Env == "local" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	} else if loggerService != nil && loggerService.GetApplication() != nil {
		zw := zerologWriter.New(os.Stdout, loggerService.GetApplication())
		out = &zw
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Primary.Env).
		Logger()

	return &logger
}

// WithTraceContext returns a child logger carrying the transaction's
// trace.id and span.id so log lines correlate with distributed traces.
func WithTraceContext(l zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return l
	}
	md := txn.GetTraceMetadata()
	return l.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}

// NewPgxLogger returns a logger dedicated to pgx query tracing output.
// It always writes console format; SQL logging is a local-dev facility.
func NewPgxLogger(level zerolog.Level) *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
	return &logger
}

// GetPgxTraceLogLevel maps a zerolog level to the matching pgx
// tracelog.LogLevel numeric value.
func GetPgxTraceLogLevel(level zerolog.Level) int {
	// tracelog levels: none=1, error=2, warn=3, info=4, debug=5, trace=6.
	switch level {
	case zerolog.TraceLevel:
		return 6
	case zerolog.DebugLevel:
		return 5
	case zerolog.InfoLevel:
		return 4
	case zerolog.WarnLevel:
		return 3
	case zerolog.ErrorLevel:
		return 2
	default:
		return 1
	}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
