package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

// Server wraps http.Server with signal handling and drain hooks.
type Server struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	log             *slog.Logger
	drains          []func(context.Context) error

	mu   sync.Mutex
	srv  *http.Server
	once sync.Once
	err  error
}

func New(opts ...Option) *Server {
	s := &Server{
		addr:            ":8080",
		shutdownTimeout: 10 * time.Second,
		log:             logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves handler and blocks until ctx is done, a termination signal
// arrives or the listener fails. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return ErrAlreadyActive
	}
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      handler,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  s.idleTimeout,
		ErrorLog:     slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
	s.srv = srv
	s.mu.Unlock()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.InfoContext(ctx, "http server started", slog.String("addr", s.addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrStart, err)
	case <-ctx.Done():
	}

	err := s.Shutdown(context.WithoutCancel(ctx))
	<-errCh
	return err
}

// Shutdown stops the listener and runs the drain functions, all within the
// shutdown timeout. Later calls return the first call's result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()

		var errs []error
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv != nil {
			if err := srv.Shutdown(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		for _, drain := range s.drains {
			if err := drain(ctx); err != nil {
				errs = append(errs, err)
			}
		}

		if len(errs) > 0 {
			s.err = fmt.Errorf("%w: %w", ErrShutdown, errors.Join(errs...))
			s.log.ErrorContext(ctx, "http server shutdown incomplete", logger.Error(s.err))
			return
		}
		s.log.InfoContext(ctx, "http server stopped")
	})
	return s.err
}
