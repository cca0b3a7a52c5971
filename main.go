package main

import (
	"net"
	"net/http"

	"github.com/joho/godotenv"

	"medtrack/web/internal/apiclient"
	"medtrack/web/internal/billing"
	"medtrack/web/internal/config"
	"medtrack/web/internal/database"
	"medtrack/web/internal/demo"
	"medtrack/web/internal/logging"
	"medtrack/web/internal/migrations"
	"medtrack/web/internal/session"
	"medtrack/web/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	db := database.Connect(cfg.SessionDB)
	defer db.Close()
	migrations.Run(db)

	baseURL := cfg.APIBaseURL
	if cfg.DemoMode {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.WithError(err).Fatal("unable to start demo backend")
		}
		go func() {
			if err := http.Serve(ln, demo.New(cfg.Secret).Router()); err != nil {
				log.WithError(err).Fatal("demo backend stopped")
			}
		}()
		baseURL = "http://" + ln.Addr().String()
		log.WithField("baseURL", baseURL).Warn("DEMO_MODE enabled, serving against the embedded demo backend")
	}

	api := apiclient.New(baseURL, nil)
	sessions := session.NewManager(session.NewStore(db), api, log)
	handler := web.New(api, sessions, billing.NewCarts(), log)

	log.WithField("port", cfg.HTTPPort).Info("MedTrack web starting")
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
