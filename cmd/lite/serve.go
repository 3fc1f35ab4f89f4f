package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/indigo-web/lite"
	"github.com/indigo-web/lite/config"
	"github.com/indigo-web/lite/http"
	"github.com/indigo-web/lite/http/status"
	"github.com/spf13/cobra"
)

var (
	serveAddress        string
	servePort           uint16
	serveMaxConnections int
	serveStatic         string
	serveReadTimeout    time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the static root and the JSON endpoints",
	Long: `Serve files from the static root and the following endpoints:

  GET /status   {"ok": true}
  GET /echo     query arguments as a JSON object

Every response closes the connection. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults := config.Default()
	serveCmd.Flags().StringVar(&serveAddress, "address", defaults.Server.Address, "Interface to bind to")
	serveCmd.Flags().Uint16VarP(&servePort, "port", "p", defaults.Server.Port, "Port to listen on")
	serveCmd.Flags().IntVar(&serveMaxConnections, "max-connections", defaults.Server.MaxConnections, "Concurrent connections cap")
	serveCmd.Flags().StringVar(&serveStatic, "static", defaults.Static.Root, "Static files root")
	serveCmd.Flags().DurationVar(&serveReadTimeout, "read-timeout", defaults.NET.ReadTimeout, "Timeout of a single read")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	cfg.Server.Address = serveAddress
	cfg.Server.Port = servePort
	cfg.Server.MaxConnections = serveMaxConnections
	cfg.Static.Root = serveStatic
	cfg.NET.ReadTimeout = serveReadTimeout

	logger := newLogger()
	app := lite.New(cfg).
		Logger(logger).
		Route("/status", func(*http.Request) (http.Result, error) {
			return http.JSON(map[string]bool{"ok": true}), nil
		}).
		Route("/echo", func(request *http.Request) (http.Result, error) {
			return http.JSON(request.Args), nil
		}).
		After(func(request *http.Request, code status.Code) error {
			logger.Info().
				Stringer("method", request.Method).
				Str("path", request.Path).
				Uint16("code", uint16(code)).
				Msg("request")
			return nil
		})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			app.Stop()
		case <-done:
		}
	}()

	return app.Serve()
}
