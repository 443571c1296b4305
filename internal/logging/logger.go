// logger.go - Centralized logging configuration for the OneNote connector.
//
// Structured logging on log/slog with configurable levels, text or JSON output and
// component loggers. Component loggers are created once at package init and follow
// every later reconfiguration, so callers can keep them in package variables.
//
// Usage:
//   logger := logging.GetLogger("resolve")
//   logger.Debug("Listing sections", "notebook_id", id)
//
// Configuration:
// - LOG_LEVEL: DEBUG, INFO, WARN or ERROR (default: DEBUG until config is loaded, then INFO)
// - LOG_FORMAT: "json" or "text" (default: text)
// - MCP_LOG_FILE: optional file path for log output (stdout is reserved for the stdio transport)
// - CONTENT_LOG_LEVEL: verbosity for page content previews, or OFF

package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// levelOff is high enough that no record passes it.
const levelOff = slog.Level(1000)

var (
	logLevel        = new(slog.LevelVar)
	contentLogLevel = new(slog.LevelVar)

	current atomic.Pointer[slog.Handler]
	root    = slog.New(&switchHandler{})
	logFile *os.File
)

func init() {
	logLevel.Set(slog.LevelDebug)
	contentLogLevel.Set(slog.LevelDebug)
	var h slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	current.Store(&h)
}

// switchHandler forwards to whatever handler is installed at the time of the call.
// Attributes and groups added through With/WithGroup are replayed on top of it.
type switchHandler struct {
	ops []func(slog.Handler) slog.Handler
}

func (s *switchHandler) resolve() slog.Handler {
	h := *current.Load()
	for _, op := range s.ops {
		h = op(h)
	}
	return h
}

func (s *switchHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*current.Load()).Enabled(ctx, level)
}

func (s *switchHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.resolve().Handle(ctx, r)
}

func (s *switchHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (s *switchHandler) WithGroup(name string) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (s *switchHandler) with(op func(slog.Handler) slog.Handler) slog.Handler {
	ops := make([]func(slog.Handler) slog.Handler, len(s.ops), len(s.ops)+1)
	copy(ops, s.ops)
	return &switchHandler{ops: append(ops, op)}
}

// LoggingConfig is implemented by config.Config.
type LoggingConfig interface {
	GetLogLevel() string
	GetLogFormat() string
	GetLogFile() string
	GetContentLogLevel() string
}

// Initialize sets up logging from the environment only. It is used before the
// configuration is loaded and defaults to DEBUG so config loading is visible.
func Initialize() {
	install(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Getenv("MCP_LOG_FILE"),
		os.Getenv("CONTENT_LOG_LEVEL"), slog.LevelDebug)
}

// InitializeFromConfig reconfigures logging after the configuration is loaded.
// Empty config values fall back to the environment; an unset level becomes INFO.
func InitializeFromConfig(cfg LoggingConfig) {
	root.Debug("Switching to configured logging")

	install(
		firstNonEmpty(cfg.GetLogLevel(), os.Getenv("LOG_LEVEL")),
		firstNonEmpty(cfg.GetLogFormat(), os.Getenv("LOG_FORMAT")),
		firstNonEmpty(cfg.GetLogFile(), os.Getenv("MCP_LOG_FILE")),
		firstNonEmpty(cfg.GetContentLogLevel(), os.Getenv("CONTENT_LOG_LEVEL")),
		slog.LevelInfo,
	)

	root.Debug("Logging reconfigured from config",
		"log_level", logLevel.Level().String(),
		"content_log_level", contentLogLevel.Level().String(),
		"log_format", strings.ToLower(cfg.GetLogFormat()),
		"log_file", cfg.GetLogFile())
}

func install(level, format, file, contentLevel string, fallback slog.Level) {
	logLevel.Set(ParseLevel(level, fallback))
	contentLogLevel.Set(ParseLevel(contentLevel, slog.LevelDebug))

	var output io.Writer = os.Stderr
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			root.Error("Failed to open log file, using stderr", "file", file, "error", err)
		} else {
			if logFile != nil {
				logFile.Close()
			}
			logFile = f
			output = f
		}
	}

	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: logLevel})
	} else {
		h = slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel})
	}
	current.Store(&h)
	slog.SetDefault(root)
}

// ParseLevel maps DEBUG, INFO, WARN/WARNING, ERROR and OFF to a level, ignoring case.
func ParseLevel(s string, fallback slog.Level) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	case "OFF":
		return levelOff
	default:
		return fallback
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// GetLogger returns a logger that tags every entry with the component name.
func GetLogger(component string) *slog.Logger {
	return root.With("component", component)
}

func GetLevel() slog.Level {
	return logLevel.Level()
}

func IsDebugEnabled() bool {
	return logLevel.Level() <= slog.LevelDebug
}

// SetLevel changes the log level without replacing the output.
func SetLevel(level slog.Level) {
	logLevel.Set(level)
}

func GetContentLogLevel() slog.Level {
	return contentLogLevel.Level()
}

func SetContentLogLevel(level slog.Level) {
	contentLogLevel.Set(level)
}

// IsContentLoggingEnabled reports whether content logged at level would be written.
func IsContentLoggingEnabled(level slog.Level) bool {
	return contentLogLevel.Level() <= level
}

// LogContent logs page content previews only when content logging allows it.
func LogContent(logger *slog.Logger, level slog.Level, msg string, args ...any) {
	if IsContentLoggingEnabled(level) {
		logger.Log(context.Background(), level, msg, args...)
	}
}

// Component loggers.
var (
	AuthLogger      = GetLogger("auth")
	ConfigLogger    = GetLogger("config")
	GraphLogger     = GetLogger("graph")
	NotebookLogger  = GetLogger("notebook")
	SectionLogger   = GetLogger("section")
	PageLogger      = GetLogger("page")
	ResolveLogger   = GetLogger("resolve")
	StreamLogger    = GetLogger("stream")
	ShareLogger     = GetLogger("share")
	ConnectorLogger = GetLogger("connector")
	ToolsLogger     = GetLogger("tools")
	MainLogger      = GetLogger("main")
)
