package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/qdm12/machine-identity/pkg/machine"
)

type handlers struct {
	identity func() *machine.Identity
	logger   Logger
}

func newHandler(rootURL string, identity func() *machine.Identity,
	logger Logger) http.Handler {
	handlers := &handlers{
		identity: identity,
		logger:   logger,
	}

	rootURL = strings.TrimSuffix(rootURL, "/")

	router := chi.NewRouter()
	router.Use(middleware.CleanPath, handlers.logRequests)

	router.Get(rootURL+"/api/v1/identity", handlers.getIdentity)
	router.Get(rootURL+"/api/v1/identity/hostname", handlers.getHostname)
	router.Get(rootURL+"/api/v1/identity/address", handlers.getAddress)

	return router
}

func (h *handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.logger.Debug(r.Method + " " + r.URL.Path + " from " + r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
