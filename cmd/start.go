package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipment-gateway/core/loader"
	"shipment-gateway/core/logger"
	"shipment-gateway/core/middleware/auth"
	"shipment-gateway/core/middleware/rayid"
	"shipment-gateway/feature/carrier"
	"shipment-gateway/feature/health"
	"shipment-gateway/feature/shipment"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "shipment-gateway/docs/swagger"
)

// @title Shipment Gateway API
// @version 1.0
// @description Read-through cache and sync gateway for ShipEngine shipments.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the shipment gateway server",
	Long:  `Starts the HTTP server, loads all features and schedules background syncs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.close()
		logg := a.logger

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(health.NewFeature(a.healthDependencies()))
		mgr.Register(shipment.NewFeature(a.gateway, logg))
		mgr.Register(carrier.NewFeature(a.carriers, logg))

		// RayID first so every log line carries it.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		app.Use(a.metrics.Middleware())

		app.Get("/metrics", adaptor.HTTPHandler(a.metrics.Handler()))
		app.Get("/swagger/*", swagger.HandlerDefault)

		if !a.cfg.Server.AuthEnabled() {
			logg.Warn("No API credentials configured, the API is open")
		}
		app.Use("/api", auth.New(auth.Config{
			ApiKey:    a.cfg.Server.ApiKey,
			JWTSecret: a.cfg.Server.JWTSecret,
		}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		if interval := a.cfg.Server.SyncInterval; interval > 0 {
			go schedule(ctx, a.gateway, interval, logg)
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			errCh <- app.Listen(a.cfg.Server.Address())
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(a.cfg.Server.ShutdownTimeout); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
		return nil
	},
}

// schedule triggers a background pass every interval until ctx ends.
func schedule(ctx context.Context, gw *shipment.Gateway, interval time.Duration, logg *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logg.Info("Scheduled sync enabled", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !gw.TriggerSync(ctx) {
				logg.Debug("Scheduled sync skipped, pass already running")
			}
		}
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
