package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fractionestate/decentralized-did/identity"
	"github.com/fractionestate/decentralized-did/pkg/config"
	"github.com/fractionestate/decentralized-did/storage"
)

type requestIDKey struct{}

// withRequestID assigns a fresh UUID to every request and logs the request
// before handing it on, giving every enroll/verify call a correlation ID an
// operator can grep for across a deployment's logs.
func withRequestID(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.NewString()
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			logger.WithFields(logrus.Fields{"request_id": id, "path": r.URL.Path, "method": r.Method}).Info("handling request")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewRouter wires the demo wallet HTTP API: enroll and verify delegate to
// the identity package; rotate and revoke call the aggregator directly.
func NewRouter(logger *logrus.Logger, cfg *config.Config) http.Handler {
	svc := identity.NewService(
		identity.WithLogger(logger),
		identity.WithStorage(storage.NewMemory()),
		identity.WithLedger(cfg.Ledger.Label, networkOrDefault(cfg.Ledger.Network)),
	)

	h := &handlers{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(withRequestID(logger))

	r.Post("/enroll", h.enroll)
	r.Post("/verify", h.verify)
	r.Post("/rotate", h.rotate)
	r.Post("/revoke", h.revoke)

	return r
}

func networkOrDefault(network string) string {
	if network == "" {
		return "mainnet"
	}
	return network
}
