package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/rebelay/api/rebelay"
	"github.com/kilianp07/rebelay/config"
	coremetrics "github.com/kilianp07/rebelay/core/metrics"
	"github.com/kilianp07/rebelay/infra/logger"
	"github.com/kilianp07/rebelay/infra/metrics"
)

// Service exposes the Planner over HTTP.
type Service struct {
	Planner  *Planner
	handler  http.Handler
	addr     string
	promAddr string
	timeout  time.Duration
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	planner := NewPlanner(cfg.RoundTrip(), cfg.Sweep.Workers, sink, logger.New("planner"))

	mux := http.NewServeMux()
	mux.Handle("/api/", rebelay.NewHandler(planner))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.Server.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return &Service{
		Planner:  planner,
		handler:  mux,
		addr:     cfg.Server.Address,
		promAddr: cfg.Server.MetricsAddress,
		timeout:  time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second,
		log:      logg,
	}, nil
}

// Handler returns the root HTTP handler.
func (s *Service) Handler() http.Handler { return s.handler }

// Run serves on the configured address until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{Handler: s.handler, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Infof("listening on %s", ln.Addr())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("shutdown: %v", err)
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Infof("server stopped")
	return nil
}
