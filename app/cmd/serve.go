package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/configs"
	"github.com/Rakhulsr/rainy-catalog/app/models/migrations"
	"github.com/Rakhulsr/rainy-catalog/app/routes"
	"github.com/Rakhulsr/rainy-catalog/app/services"
	"github.com/Rakhulsr/rainy-catalog/app/utils/media"
	"github.com/Rakhulsr/rainy-catalog/app/utils/renderer"
	"github.com/Rakhulsr/rainy-catalog/app/utils/sessions"
	"github.com/getsentry/sentry-go"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "auto-migrate", Usage: "run migrations before serving"},
	}
}

func newStorage(env configs.ENV, logger *zap.Logger) (media.Storage, error) {
	switch env.MediaDriver {
	case "cos":
		return media.NewCOSStorage(media.COSConfig{
			BucketURL: env.COSBucketURL,
			PublicURL: env.COSPublicURL,
			SecretID:  env.COSSecretID,
			SecretKey: env.COSSecretKey,
		}, logger)
	case "local", "":
		return media.NewLocalStorage(env.MediaRoot, env.MediaURL), nil
	default:
		return nil, errors.Errorf("unsupported MEDIA_DRIVER %q", env.MediaDriver)
	}
}

func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func serve(ctx context.Context, c *cli.Command) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()
	env, logger := a.env, a.logger

	if err := configs.InitSentry(env, logger); err != nil {
		logger.Warn("serve: sentry init failed", zap.Error(err))
	}
	defer sentry.Flush(2 * time.Second)

	if c.Bool("auto-migrate") {
		if err := migrations.AutoMigrate(a.db.WithContext(ctx)); err != nil {
			return err
		}
		logger.Info("serve: migrations applied")
	}

	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return errors.Wrap(err, "load session keys")
	}
	storage, err := newStorage(env, logger)
	if err != nil {
		return err
	}
	notifier, err := services.NewContactNotifier(env, logger)
	if err != nil {
		return err
	}

	handler := routes.NewRouter(a.db, env, logger, routes.Options{
		Render:   renderer.New(env.TemplatesDir, !env.IsProduction()),
		Storage:  storage,
		Notifier: notifier,
		Sessions: sessions.NewCookieSessionStore(env.IsProduction(), logger, keys.Pairs()...),
		CSRFKey:  keys.AuthKey[:32],
	})

	server := &http.Server{
		Addr:              listenAddr(env.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var g run.Group
	{
		g.Add(func() error {
			logger.Info("Server starting", zap.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(error) {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server shutdown failed", zap.Error(err))
			}
		})
	}
	{
		sigCtx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sig)
			select {
			case s := <-sig:
				logger.Info("Received signal, shutting down", zap.String("signal", s.String()))
				return nil
			case <-sigCtx.Done():
				return sigCtx.Err()
			}
		}, func(error) {
			cancel()
		})
	}
	return g.Run()
}
