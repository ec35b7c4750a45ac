package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-data-api/infrastructure/repository"
	"github.com/vfg2006/sales-data-api/internal/api"
	"github.com/vfg2006/sales-data-api/internal/config"
	"github.com/vfg2006/sales-data-api/internal/scheduler"
	"github.com/vfg2006/sales-data-api/internal/usecases/importing"
	"github.com/vfg2006/sales-data-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-data-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.SetupLogger(cfg.App.LogLevel); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	salesDataRepo := repository.NewSalesDataRepository(pgConn)

	importer := importing.NewService(salesDataRepo, cfg.Import.Location)
	reporter := reporting.NewOrderStatusService(salesDataRepo)

	// Falhas na carga inicial ficam apenas no log; a API sobe mesmo assim
	bootstrapImport(ctx, importer, cfg.Import)

	importSyncService := scheduler.NewImportSyncService(importer, cfg)
	if err := importSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de reimportação")
	}

	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)
	go reimportOnSignal(ctx, hangup, importSyncService)

	server, err := api.New(cfg, reporter)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// bootstrapImport cria a tabela e importa o arquivo configurado uma vez
func bootstrapImport(ctx context.Context, importer importing.Importer, cfg config.Import) {
	if err := importer.EnsureSchema(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao inicializar a tabela de vendas")
	}

	if !cfg.OnStartup {
		logrus.Info("Importação na inicialização desabilitada por configuração")
		return
	}

	if _, err := importer.ImportFile(ctx, cfg.FilePath); err != nil {
		logrus.WithError(err).Error("Erro ao importar arquivo de vendas na inicialização")
	}
}

type manualSyncer interface {
	TriggerManualSync(ctx context.Context)
	GetStatus() map[string]any
}

// reimportOnSignal dispara uma reimportação em segundo plano a cada SIGHUP
func reimportOnSignal(ctx context.Context, signals <-chan os.Signal, syncer manualSyncer) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-signals:
			status := syncer.GetStatus()
			logrus.WithFields(logrus.Fields{
				"signal":                 sig.String(),
				"sync_running":           status["sync_running"],
				"last_sync_completed_at": status["last_sync_completed_at"],
				"last_error":             status["last_error"],
			}).Info("Reimportação solicitada por sinal")

			syncer.TriggerManualSync(ctx)
		}
	}
}

// pgconn cria o pool de conexões com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar conexão com PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao testar conexão com PostgreSQL")
		return conn
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
