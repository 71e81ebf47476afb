package handler

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"comanda/config"
	"comanda/di"
	"comanda/shared/logger"
)

var (
	app     *di.App
	initErr error
	once    sync.Once
)

// Handler is the serverless entrypoint. The application is wired once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())

		app, _, initErr = di.InitializeApp()
		if initErr == nil {
			initErr = app.Auth.EnsureAdmin(r.Context())
		}
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("application failed to initialize")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)

		return
	}

	app.HTTP.ServeHTTP(w, r)
}
