package log

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/projecteru2/tetris/types"
)

// SentryDefer .
func SentryDefer() {
	if sentryDSN == "" {
		return
	}
	defer sentry.Flush(2 * time.Second)
	if r := recover(); r != nil {
		sentry.CaptureMessage(fmt.Sprintf("%+v: %s", r, debug.Stack()))
		panic(r)
	}
}

func genTracingInfo(ctx context.Context) (tracingInfo string) {
	if ctx == nil {
		return ""
	}
	if traceID := ctx.Value(types.TracingID); traceID != nil {
		if tid, ok := traceID.(string); ok {
			tracingInfo = fmt.Sprintf("[%s] ", tid)
		}
	}
	return
}

func reportToSentry(ctx context.Context, level sentry.Level, err error, format string, args ...any) { //nolint
	if sentryDSN == "" {
		return
	}
	defer sentry.Flush(2 * time.Second)
	event, extraDetails := errors.BuildSentryReport(err)
	for k, v := range extraDetails {
		event.Extra[k] = v
	}
	event.Level = level

	if msg := fmt.Sprintf(format, args...); msg != "" {
		event.Tags["message"] = msg
	}

	if tracingInfo := genTracingInfo(ctx); tracingInfo != "" {
		event.Tags["tracing"] = tracingInfo
	}

	if res := string(*sentry.CaptureEvent(event)); res != "" {
		globalLogger.Info().Msgf("Report to Sentry ID: %s", res)
	}
}
