// Package logging builds the structured loggers shared by every binary.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Channel names the subsystem a log line comes from
type Channel string

const (
	ChannelSystem Channel = "system"
	ChannelScan   Channel = "scan"
	ChannelStore  Channel = "store"
	ChannelMatch  Channel = "match"
	ChannelHTTP   Channel = "http"
	ChannelMCP    Channel = "mcp"
)

// Logger hands out per-channel slog loggers over one handler
type Logger struct {
	base *slog.Logger
}

// New creates a logger writing to w at the given level, as JSON or text
func New(w io.Writer, level slog.Level, json bool) *Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{base: slog.New(handler)}
}

// Discard returns a logger that drops everything, for tests and quiet runs
func Discard() *Logger {
	return New(io.Discard, slog.LevelError+1, false)
}

// Channel returns a logger tagged with the channel attribute
func (l *Logger) Channel(c Channel) *slog.Logger {
	return l.base.With(slog.String("channel", string(c)))
}

func (l *Logger) System() *slog.Logger { return l.Channel(ChannelSystem) }
func (l *Logger) Scan() *slog.Logger   { return l.Channel(ChannelScan) }
func (l *Logger) Store() *slog.Logger  { return l.Channel(ChannelStore) }
func (l *Logger) Match() *slog.Logger  { return l.Channel(ChannelMatch) }
func (l *Logger) HTTP() *slog.Logger   { return l.Channel(ChannelHTTP) }
func (l *Logger) MCP() *slog.Logger    { return l.Channel(ChannelMCP) }

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
