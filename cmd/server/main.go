package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shoury-Rana/LinkCrate/internal/api"
	"github.com/Shoury-Rana/LinkCrate/internal/config"
	"github.com/Shoury-Rana/LinkCrate/internal/repositories"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Connect to database
	repositories.ConnectDatabase()

	if err := repositories.InitStorage(config.Envs.Storage); err != nil {
		log.Fatalf("Could not initialize storage gateway: %v", err)
	}

	mux := api.SetupRouter()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting LinkCrate server on port: %s", config.Envs.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Println("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
