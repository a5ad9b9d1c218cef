package log

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
)

var (
	// nop until SetupLog, so library users who never configure logging stay silent
	globalLogger = zerolog.Nop()
	sentryDSN    string
)

// SetupLog configures the console logger and, when dsn is set, sentry capture.
func SetupLog(ctx context.Context, level string, dsn string) error {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	globalLogger = zerolog.New(
		zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC822,
		}).With().Timestamp().Logger().Level(l)

	if dsn != "" {
		sentryDSN = dsn
		return sentry.Init(sentry.ClientOptions{Dsn: dsn})
	}
	return nil
}
