package main

import (
	"context"

	"github.com/vfg2006/sales-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-data-api/infrastructure/repository"
	"github.com/vfg2006/sales-data-api/internal/config"
	"github.com/vfg2006/sales-data-api/internal/usecases/importing"
	"github.com/vfg2006/sales-data-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-data-api/pkg/log"
)

// services agrupa o que os subcomandos precisam; Close libera o pool
type services struct {
	Config   *config.Config
	Importer importing.Importer
	Reporter reporting.StatusReporter
	Close    func() error
}

type serviceFactory func(ctx context.Context) (*services, error)

func newServices(ctx context.Context) (*services, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	if err := log.SetupLogger(cfg.App.LogLevel); err != nil {
		log.L.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	repo := repository.NewSalesDataRepository(conn)

	return &services{
		Config:   cfg,
		Importer: importing.NewService(repo, cfg.Import.Location),
		Reporter: reporting.NewOrderStatusService(repo),
		Close:    conn.Close,
	}, nil
}
