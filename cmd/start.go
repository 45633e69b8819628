package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"store-ops/core/loader"
	"store-ops/core/logger"
	"store-ops/core/middleware/auth"
	"store-ops/core/middleware/rayid"
	"store-ops/feature/imports"
	"store-ops/feature/masterdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "store-ops/docs/swagger"
)

// @title Store Ops API
// @version 1.0
// @description Spreadsheet imports for store operations master data.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the import server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		logg := d.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             d.cfg.Server.BodyLimit(),
			ReadTimeout:           time.Duration(d.cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		mgr := loader.NewManager()
		mgr.Register(masterdata.NewFeature(d.db, logg))
		mgr.Register(imports.NewFeature(d.engine(), imports.DefaultRegistry(), d.permissions(), d.archive, logg))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			start := time.Now()
			l := logger.WithRayID(logg, c)
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("elapsed", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request handled", fields...)
			return nil
		})

		// Public routes.
		app.Get("/swagger/*", swagger.HandlerDefault)
		public := []string{}
		if d.metrics != nil {
			app.Get(d.cfg.Metrics.Path, d.metrics.Handler())
			public = append(public, d.cfg.Metrics.Path)
		}

		app.Use(auth.New(auth.Config{ApiKey: d.cfg.Server.ApiKey, Skip: public}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}
		for _, f := range mgr.Features() {
			if !f.IsEnabled() {
				logg.Warn("Feature disabled", zap.String("feature", f.Name()))
			}
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", d.cfg.Server.Address()))
			errCh <- app.Listen(d.cfg.Server.Address())
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(30 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
