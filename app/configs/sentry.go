package configs

import (
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// InitSentry enables operator error reports. Without SENTRY_DSN every
// capture is a no-op.
func InitSentry(env ENV, logger *zap.Logger) error {
	if env.SentryDSN == "" {
		logger.Info("Sentry disabled: SENTRY_DSN not set")
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         env.SentryDSN,
		Environment: env.AppEnv,
	})
	if err != nil {
		return err
	}
	logger.Info("Sentry initialized", zap.String("environment", env.AppEnv))
	return nil
}
