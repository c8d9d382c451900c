package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pes-mcp/internal/api"
	"pes-mcp/internal/config"
)

const shutdownTimeout = 10 * time.Second

var (
	httpAddr    string
	openBrowser bool
)

var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Serve the scenario dashboard API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, presets, err := loadEngine(cfg)
		if err != nil {
			return err
		}

		addr := cfg.HTTPAddr
		if httpAddr != "" {
			addr = httpAddr
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		server := api.NewServer(engine, presets, reg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var onReady func(string)
		if openBrowser {
			onReady = func(base string) {
				url := base + "/api/v1/scenarios/" + config.BaselinePreset
				if err := browser.OpenURL(url); err != nil {
					log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
				}
			}
		}
		return serveHTTP(ctx, ln, server.Handler(), onReady)
	},
}

// serveHTTP serves handler on ln until ctx is cancelled, then shuts down gracefully.
func serveHTTP(ctx context.Context, ln net.Listener, handler http.Handler, onReady func(baseURL string)) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("HTTP API listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("HTTP API shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if onReady != nil {
		onReady(baseURL(ln.Addr()))
	}
	return g.Wait()
}

// baseURL turns a listener address into a browsable URL. Wildcard hosts become localhost.
func baseURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func init() {
	serveHTTPCmd.Flags().StringVar(&httpAddr, "addr", "", "listen address (default: HTTP_ADDR)")
	serveHTTPCmd.Flags().BoolVar(&openBrowser, "open", false, "open the baseline scenario in the default browser")
}
