package cli

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"
)

// newLogger returns a logrus logger writing to w at level, as text or JSON.
func newLogger(w io.Writer, level log.Level, format string) *log.Logger {
	l := log.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if format == "json" {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.00"})
	}
	return l
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to the standard logger when none is attached.
func loggerFromContext(ctx context.Context) *log.Entry {
	if l, ok := ctx.Value(loggerKey).(*log.Entry); ok {
		return l
	}
	return log.NewEntry(log.StandardLogger())
}
