package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sdgdash.org/internal/config"
	"sdgdash.org/internal/httpapi"
	"sdgdash.org/internal/obs"
	"sdgdash.org/internal/sdg"
	"sdgdash.org/internal/sdg/remote"
	"sdgdash.org/internal/session"
)

var version = "0.3.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.App.Version != "dev" {
		version = cfg.App.Version
	}

	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("BUILD_COMMIT"))

	store, err := session.OpenFileStore(cfg.Store.Path)
	if err != nil {
		log.Fatalf("open token store: %v", err)
	}

	sess, err := session.NewManager(cfg.Upstream.BaseURL, store,
		session.WithTimeout(cfg.Upstream.Timeout()))
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	svc := remote.NewService(remote.NewClient(sess), sdg.NewDataset())
	api := httpapi.New(svc, sess, httpapi.ReadyProbe{DB: store.DB()}, version,
		httpapi.WithRateLimit(cfg.Limits.Burst, cfg.Limits.PerSecond))

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting sdgdash-api %s on %s (upstream %s)", version, srv.Addr, cfg.Upstream.BaseURL)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = store.Close()
	log.Println("Stopped")
}
