package workers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/billyjitsu/across-network-automation/history"
	"github.com/billyjitsu/across-network-automation/types"
	"github.com/billyjitsu/across-network-automation/workers/handlers"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Worker_HTTP serves the read-only run API until done closes, then shuts
// the server down gracefully.
func Worker_HTTP(state *types.RunState, recorder *history.Recorder, port int, done <-chan struct{}) {
	log.Printf("Starting HTTP service on port %d", port)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Options("/*", CORSHeaders)

	r.Get("/health", handlers.HealthCheck)
	r.Get("/state", handlers.State(state))
	r.Get("/history", handlers.History(recorder))
	r.Get("/routes/{symbol}", handlers.TokenRoutes)
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("error listening to: %s", err)
		}
	}()
	log.Print("HTTP service started")

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP service shutdown error: %+v", err)
		return
	}
	log.Print("HTTP service shutdown normal")
}

func CORSHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
	w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Origin, X-Requested-With")
}
