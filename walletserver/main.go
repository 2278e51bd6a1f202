// Command walletserver exposes the biometric enrollment and
// verification pipeline as a small HTTP API for demo wallet consumers.
package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fractionestate/decentralized-did/pkg/config"
)

func main() {
	logger := logrus.New()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.WithError(err).Warn("falling back to default server config")
		cfg = &config.Config{}
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}

	router := NewRouter(logger, cfg)

	logger.WithField("addr", cfg.Server.ListenAddr).Info("wallet server listening")
	if err := http.ListenAndServe(cfg.Server.ListenAddr, router); err != nil {
		logger.WithError(err).Fatal("wallet server exited")
		os.Exit(1)
	}
}
