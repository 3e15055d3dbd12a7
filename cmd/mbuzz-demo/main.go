// Command mbuzz-demo is a small web application instrumented with mbuzz.
//
// It reads MBUZZ_* settings for tracking and HTTP_* settings for the
// listener, then serves:
//
//	GET  /dashboard  tracks a page view event
//	POST /signup     identifies the user and records a conversion
//	GET  /healthz    liveness probe, excluded from tracking
//	GET  /metrics    Prometheus metrics, including delivery outcomes, not tracked
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"

	mbuzz "github.com/mbuzz/mbuzz-go"
	"github.com/mbuzz/mbuzz-go/pkg/clientip"
	"github.com/mbuzz/mbuzz-go/pkg/config"
	"github.com/mbuzz/mbuzz-go/pkg/httpserver"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
	"github.com/mbuzz/mbuzz-go/pkg/reqcontext"
	"github.com/mbuzz/mbuzz-go/pkg/requestid"
)

type appConfig struct {
	HTTP       httpserver.Config
	LogFormat  string `env:"LOG_FORMAT" envDefault:"json"`
	Tracing    bool   `env:"OTEL_TRACING" envDefault:"false"`
	TrustProxy bool   `env:"TRUST_PROXY" envDefault:"false"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("mbuzz-demo failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var app appConfig
	if err := env.Parse(&app); err != nil {
		return fmt.Errorf("parse app config: %w", err)
	}

	log := logger.New(
		logger.WithFormat(logger.Format(app.LogFormat)),
		logger.WithDebug(cfg.Debug),
		logger.WithAttr(slog.String("service", "mbuzz-demo")),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			reqcontext.LoggerExtractor(),
		),
	)

	ips := clientip.New()
	opts := []mbuzz.Option{
		mbuzz.WithLogger(log),
		mbuzz.WithMetrics(prometheus.DefaultRegisterer),
		mbuzz.WithClientIP(ips),
		mbuzz.WithForwardedProto(app.TrustProxy),
	}
	if app.Tracing {
		opts = append(opts, mbuzz.WithTracing())
	}

	client, err := mbuzz.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("init tracking: %w", err)
	}

	srv := httpserver.NewFromConfig(app.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithDrain(client.Close),
	)
	return srv.Run(ctx, newRouter(client, ips, log))
}
