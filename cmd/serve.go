package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"r2-manager/core/loader"
	"r2-manager/core/logger"
	"r2-manager/core/middleware/auth"
	"r2-manager/core/middleware/rayid"
	"r2-manager/feature/objects"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the bucket over HTTP",
	Long:  `Starts an HTTP gateway that lists, reads, writes and deletes objects of the configured bucket.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, client, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager(logg)
		mgr.Register(objects.NewFeature(client, logg))

		// RayID must be first to trace everything
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
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()), zap.String("bucket", client.BucketName()))
			errCh <- app.Listen(cfg.Server.Addr())
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-sig:
			logg.Info("Shutting down server...")
			return app.Shutdown()
		}
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
