// Package report records failures of best-effort side effects that must not
// fail the request that caused them.
package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

// Init configures the Sentry client. An empty dsn leaves reporting log-only.
func Init(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
}

func Flush() {
	sentry.Flush(time.Second * 2)
}

// Failure logs err as a warning and sends it to Sentry with op as a tag.
func Failure(ctx context.Context, logger *slog.Logger, op string, err error, attrs ...slog.Attr) {
	if err == nil {
		return
	}

	args := make([]any, 0, len(attrs)+2)
	args = append(args, slog.String("op", op), slog.Any("error", err))

	for _, a := range attrs {
		args = append(args, a)
	}

	logger.WarnContext(ctx, "best-effort step failed", args...)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("op", op)

		for _, a := range attrs {
			scope.SetExtra(a.Key, a.Value.String())
		}

		hub.CaptureException(err)
	})

	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:      "error",
		Category:  op,
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
}
