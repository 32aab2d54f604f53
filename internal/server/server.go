package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"flixauth/internal/config"
	"flixauth/internal/metrics"
	"flixauth/internal/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg         *config.Config
	httpServer  *http.Server
	adminServer *http.Server
	metrics     *metrics.Metrics
	authService services.AuthService
}

func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:         cfg,
		metrics:     metrics.New(),
		authService: services.NewAuthService(cfg.Credential()),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	if cfg.MetricsEnabled() {
		s.adminServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.MetricsPort),
			Handler:      s.RegisterAdminRoutes(),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}
	}

	return s
}

// Start binds both listeners and serves until Shutdown. A bind failure on
// either port is returned before anything is served.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	var adminLn net.Listener
	if s.adminServer != nil {
		adminLn, err = net.Listen("tcp", s.adminServer.Addr)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("failed to listen on %s: %w", s.adminServer.Addr, err)
		}
	}

	return s.Serve(ln, adminLn)
}

// Serve runs the public server on ln and, when adminLn is non-nil, the admin
// server on adminLn. It returns http.ErrServerClosed after a clean shutdown.
func (s *Server) Serve(ln, adminLn net.Listener) error {
	var wg sync.WaitGroup
	adminErr := make(chan error, 1)

	if adminLn != nil && s.adminServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info().Str("addr", adminLn.Addr().String()).Msg("Starting admin server")
			if err := s.adminServer.Serve(adminLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
				adminErr <- err
				// The service is not useful half up.
				_ = s.httpServer.Close()
			}
		}()
	}

	log.Info().Str("addr", ln.Addr().String()).Msg("Starting server")
	err := s.httpServer.Serve(ln)
	if !errors.Is(err, http.ErrServerClosed) && s.adminServer != nil {
		_ = s.adminServer.Close()
	}
	wg.Wait()

	select {
	case aerr := <-adminErr:
		return fmt.Errorf("admin server: %w", aerr)
	default:
	}
	return err
}

// Shutdown stops both servers, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
