package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"torresegura/internal/config"
	"torresegura/internal/infra"
	"torresegura/internal/repository"
	"torresegura/internal/router"
	"torresegura/internal/service"
	"torresegura/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start goroutine worker pool for async tasks (statement PDFs, email).
	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	estadoCuentaRepo := repository.NewEstadoCuentaRepository(db)
	cuotaRepo := repository.NewCuotaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	viviendaRepo := repository.NewViviendaRepository(db)
	conceptoRepo := repository.NewConceptoRepository(db)

	handlers := worker.Handlers{
		EstadoCuenta: worker.NewEstadoCuentaWorker(estadoCuentaRepo, cuotaRepo, pagoRepo, viviendaRepo, dispatcher, cfg.PDFStoragePath),
		Email:        worker.NewEmailWorker(mailer, smtpCB, rdb),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	// Periodic late-fee sweep over overdue unpaid cuotas
	deudaCache := infra.NewDeudaCache(rdb)
	cuotaSvc := service.NewCuotaService(cuotaRepo, conceptoRepo, viviendaRepo, deudaCache)
	worker.StartRecargoCron(ctx, cuotaSvc, time.Duration(cfg.RecargoCronMinutes)*time.Minute)

	r := router.New(cfg, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Torre Segura backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
