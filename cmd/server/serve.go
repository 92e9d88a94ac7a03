package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/config"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/handler"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/router"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/service"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "address to listen on")
	return cmd
}

func openStore(cfg config.AppConfig) (store.Store, error) {
	s, err := store.Open(cfg.StorageDriver, cfg.DSN(), cfg.LocalStorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Printf("[server] using %s storage", cfg.StorageDriver)
	return s, nil
}

func runServe(ctx context.Context, cfg config.AppConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	closer, err := setupLogging(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	gin.SetMode(cfg.GinMode)

	s, err := openStore(cfg)
	if err != nil {
		return err
	}

	var ownerID string
	if cfg.OwnerUsername != "" && cfg.OwnerPassword != "" {
		owner, err := service.NewAuthService(s).EnsureOwner(ctx, cfg.OwnerUsername, cfg.OwnerPassword)
		if err != nil {
			return fmt.Errorf("failed to ensure owner account: %w", err)
		}
		ownerID = owner.ID
	} else {
		log.Printf("[server] OWNER_USERNAME/OWNER_PASSWORD not set, admin login disabled")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(handler.NewAPI(s, ownerID), cfg.SessionSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s (%s)", cfg.ListenAddr, cfg.SiteBaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to run server: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
