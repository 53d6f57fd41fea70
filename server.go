package siripush

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Server owns the HTTP surface: the webhook receiver, the admin JSON API,
// health endpoints, and metrics.
type Server struct {
	http    *http.Server
	service *PushService
	subs    *SubscriptionRegistry
	limiter *rate.Limiter
	maxBody int64
	log     zerolog.Logger
}

func NewServer(cfg AppConfig, service *PushService, subs *SubscriptionRegistry, log zerolog.Logger) *Server {
	s := &Server{
		service: service,
		subs:    subs,
		limiter: rate.NewLimiter(rate.Limit(cfg.Push.RatePerSecond), cfg.Push.Burst),
		maxBody: cfg.Push.MaxBodyBytes,
		log:     log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /push/{pushId}", s.handlePush)
	mux.HandleFunc("GET /api/subscriptions", s.handleListSubscriptions)
	mux.HandleFunc("POST /api/subscriptions", s.handleAddSubscription)
	mux.HandleFunc("GET /api/subscriptions/{id}", s.handleGetSubscription)
	mux.HandleFunc("DELETE /api/subscriptions/{id}", s.handleRemoveSubscription)
	mux.HandleFunc("GET /api/subscriptions/{id}/messages", s.handleListMessages)
	mux.HandleFunc("DELETE /api/subscriptions/{id}/messages", s.handleRemoveMessages)
	mux.HandleFunc("POST /api/messages/clear", s.handleClearMessages)
	mux.HandleFunc("GET /health/live", handleHealth)
	mux.HandleFunc("GET /health/ready", handleHealth)
	mux.Handle("GET /metrics", metricsHandler())

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start launches the listener in the background.
func (s *Server) Start() {
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal().Err(err).Msg("server error")
		}
	}()
	s.log.Info().Str("addr", s.http.Addr).Msg("server listening")
}

// AwaitShutdown blocks until SIGINT/SIGTERM and then drains the server.
func (s *Server) AwaitShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	s.log.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		s.log.Error().Err(err).Msg("server shutdown error")
	} else {
		s.log.Info().Msg("server shut down successfully")
	}
}
