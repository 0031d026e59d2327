package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/stakewell-labs/staking-vault/internal/config"
	"github.com/stakewell-labs/staking-vault/internal/services"
)

const (
	requestReadTimeout  = 10 * time.Second
	requestWriteTimeout = 30 * time.Second
	shutdownTimeout     = 10 * time.Second
)

// Server is the staking vault's HTTP surface. Staker operations are open;
// administrative operations are gated by the configured admin key.
type Server struct {
	cfg     *config.Config
	service *services.Service
}

func New(cfg *config.Config, service *services.Service) *Server {
	return &Server{
		cfg:     cfg,
		service: service,
	}
}

func (s *Server) router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/stakes", s.handleDeposit)
		r.Get("/stakes/{account}", s.handleGetStake)
		r.Get("/stakes/{account}/history", s.handleGetStakeHistory)
		r.Post("/stakes/{account}/withdraw", s.handleWithdraw)
		r.Post("/stakes/{account}/emergency-withdraw", s.handleEmergencyWithdraw)
		r.Get("/vault", s.handleVaultOverview)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.adminOnly)
			r.Put("/params/reward-rate", s.handleSetRewardRate)
			r.Put("/params/lock-duration", s.handleSetLockDuration)
			r.Get("/params/events", s.handleGetParamEvents)
			r.Post("/rewards/fund", s.handleFundRewards)
			r.Post("/rewards/withdraw-excess", s.handleWithdrawExcess)
		})
	})

	return r
}

// Start serves the API until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Api.Address(),
		Handler:      s.router(),
		ReadTimeout:  requestReadTimeout,
		WriteTimeout: requestWriteTimeout,
	}

	var wg conc.WaitGroup
	defer wg.Wait()

	serveErr := make(chan error, 1)
	wg.Go(func() {
		log.Info().Msgf("Starting API server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	})

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
