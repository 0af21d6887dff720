package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/qdm12/machine-identity/pkg/machine"
)

type Server struct {
	address string
	logger  Logger
	handler http.Handler
}

func New(address, rootURL string, identity func() *machine.Identity,
	logger Logger) *Server {
	return &Server{
		address: address,
		logger:  logger,
		handler: newHandler(rootURL, identity, logger),
	}
}

// Run serves HTTP requests until the context is canceled, restarting
// the listener if it crashes. It closes done once it has shut down.
func (s *Server) Run(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	server := http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		s.logger.Warn("shutting down (context canceled)")
		defer s.logger.Warn("shut down")
		const shutdownGraceDuration = 2 * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGraceDuration)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			s.logger.Error("failed shutting down: " + err.Error())
		}
	}()

	for ctx.Err() == nil {
		s.logger.Info("listening on " + s.address)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
			s.logger.Error(err.Error())
			s.logger.Info("restarting")
			const restartDelay = time.Second
			timer := time.NewTimer(restartDelay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
			}
		}
	}
	<-shutdownDone
}
