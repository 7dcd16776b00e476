package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roster-manager/core/loader"
	"roster-manager/core/logger"
	"roster-manager/core/middleware/auth"
	"roster-manager/core/middleware/rayid"
	"roster-manager/feature/buckets"
	"roster-manager/feature/dataset"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "roster-manager/docs/swagger"
)

// @title Roster Manager API
// @version 1.0
// @description Participant datasets and bucket sync for competition events.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the roster server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.log
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := rt.cfg.Server.Validate(); err != nil {
			logg.Fatal("Invalid server configuration", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		ttl := time.Duration(rt.cfg.Reconcile.CacheTTLSeconds) * time.Second
		datasets := dataset.NewFeature(rt.reconciler(), logger.Named(logg, "dataset"), ttl)

		mgr := loader.NewManager(logg)
		mgr.Register(datasets)
		mgr.Register(buckets.NewFeature(rt.repo, logger.Named(logg, "buckets"), datasets.Service().Invalidate))

		// RayID first so every log line below carries it.
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

		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "store": rt.cfg.Store.Driver})
		})

		app.Use(auth.New(auth.Config{
			ApiKey:      rt.cfg.Server.ApiKey,
			PublicPaths: []string{"/health"},
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", rt.cfg.Server.Port),
				zap.String("store", rt.cfg.Store.Driver),
			)
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(rt.cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Shutdown incomplete", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
