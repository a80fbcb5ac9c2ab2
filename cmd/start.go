package cmd

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"intake-reconciler/core/loader"
	"intake-reconciler/core/logger"
	"intake-reconciler/core/metrics"
	"intake-reconciler/core/middleware/auth"
	"intake-reconciler/core/middleware/rayid"
	"intake-reconciler/core/source"
	"intake-reconciler/core/storage"

	"intake-reconciler/feature/reconciliation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "intake-reconciler/docs/swagger"
)

// @title Intake Reconciler API
// @version 1.0
// @description API for matching intake submissions to appointments.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := bootstrap(true, true)
		if err != nil {
			return err
		}
		defer s.log.Sync()
		zap.ReplaceGlobals(s.log)

		if s.db != nil {
			if err := reconciliation.Migrate(s.db); err != nil {
				s.log.Warn("Run history disabled", zap.Error(err))
				s.db = nil
			}
		}

		if s.cfg.Source.Location == source.LocationStorage {
			if err := storage.EnsureBucket(context.Background(), s.client, s.cfg.Storage.Bucket, s.cfg.Storage.Region); err != nil {
				s.log.Warn("Storage bucket unavailable", zap.Error(err))
			}
		}

		app, err := newApp(s)
		if err != nil {
			return err
		}

		go func() {
			s.log.Info("Starting server", zap.String("port", s.cfg.Server.Port))
			if err := app.Listen(s.cfg.Server.Addr()); err != nil {
				s.log.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		s.log.Info("Shutting down server...")
		return app.ShutdownWithTimeout(s.cfg.Server.ShutdownTimeout)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// newApp builds the fiber app with middleware and features mounted.
func newApp(s *session) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             s.cfg.Server.BodyLimit(),
	})

	// RayID first so every log line carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(s.log, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), strconv.Itoa(c.Response().StatusCode())).Inc()
		return err
	})

	// Public routes.
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", metrics.Handler())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "persistence": s.db != nil})
	})

	app.Use(auth.New(auth.Config{ApiKey: s.cfg.Server.ApiKey, Public: []string{"/health", "/metrics"}}))

	mgr := loader.NewManager()
	svc := reconciliation.NewService(s.db, s.client, s.cfg.Storage, s.cfg.Source, s.cfg.Match, s.log)
	mgr.Register(reconciliation.NewFeature(svc))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, err
	}
	s.log.Info("Features loaded", zap.Strings("features", loaded))

	return app, nil
}
