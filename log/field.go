package log

import (
	"context"

	"github.com/alphadose/haxmap"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
)

// Fields carries the kv pairs shared by a group of log entries. Entries with
// an error attached are mirrored to sentry when a DSN is configured.
type Fields struct {
	kv *haxmap.Map[string, any]
}

// WithFunc names the calling site, the one field every entry carries.
func WithFunc(fname string) *Fields {
	return WithField("func", fname)
}

// WithField .
func WithField(key string, value any) *Fields {
	kv := haxmap.New[string, any]()
	kv.Set(key, value)
	return &Fields{kv: kv}
}

// WithField adds another kv pair onto the chain.
func (f *Fields) WithField(key string, value any) *Fields {
	f.kv.Set(key, value)
	return f
}

// Debugf .
func (f *Fields) Debugf(_ context.Context, format string, args ...any) {
	f.emit(globalLogger.Debug(), format, args...)
}

// Infof .
func (f *Fields) Infof(_ context.Context, format string, args ...any) {
	f.emit(globalLogger.Info(), format, args...)
}

// Warnf .
func (f *Fields) Warnf(_ context.Context, format string, args ...any) {
	f.emit(globalLogger.Warn(), format, args...)
}

// Errorf logs err with a stack and forwards it to sentry. nil err is a no-op.
func (f *Fields) Errorf(ctx context.Context, err error, format string, args ...any) {
	if err == nil {
		return
	}
	reportToSentry(ctx, sentry.LevelError, err, format, args...)
	f.emit(globalLogger.Error().Stack().Err(err), format, args...)
}

// Error .
func (f *Fields) Error(ctx context.Context, err error, args ...any) {
	f.Errorf(ctx, err, "%+v", args...)
}

func (f *Fields) emit(e *zerolog.Event, format string, args ...any) {
	// a bare "%+v" with no operand would render %!v(MISSING)
	if len(args) == 0 {
		args = []any{""}
	}
	f.kv.ForEach(func(k string, v any) bool {
		e = e.Interface(k, v)
		return true
	})
	e.Msgf(format, args...)
}
