package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/estoque-api/internal/infrastructure/apiclient"
	"github.com/jhoicas/estoque-api/internal/interfaces/web"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("api", cfg.Web.APIBaseURL).
		Msg("iniciando frontend")

	client := apiclient.New(cfg.Web.APIBaseURL, cfg.Web.APITimeout)
	app, err := web.NewApp(cfg.App.Name+"-web", client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar plantillas")
	}

	go func() {
		if err := app.Listen(cfg.Web.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor web finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("frontend detenido")
}
