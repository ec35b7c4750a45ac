// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-data-api/internal/config"
	"github.com/vfg2006/sales-data-api/internal/domain"
	"github.com/vfg2006/sales-data-api/internal/usecases/importing"
)

var ErrImportRunning = errors.New("import already running")

type ImportSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	FilePath     string
}

type ImportSyncService struct {
	scheduler           *gocron.Scheduler
	importer            importing.Importer
	config              ImportSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *domain.ImportSummary
	lastError           error
}

func NewImportSyncService(importer importing.Importer, cfg *config.Config) *ImportSyncService {
	syncConfig := ImportSyncConfig{
		CronSchedule: cfg.ImportSync.CronSchedule, // Default: 2h da manhã todos os dias
		SyncEnabled:  cfg.ImportSync.Enabled,      // Default: desabilitado
		FilePath:     cfg.Import.FilePath,
	}

	location := cfg.Import.Location
	if location == nil {
		location = time.UTC
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"file_path":     syncConfig.FilePath,
	}).Info("Configuração do agendador de reimportação carregada")

	return &ImportSyncService{
		scheduler: gocron.NewScheduler(location),
		importer:  importer,
		config:    syncConfig,
	}
}

func (s *ImportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de reimportação desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de reimportação do arquivo de vendas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunImport(ctx); err != nil && !errors.Is(err, ErrImportRunning) {
			logrus.WithError(err).Error("Erro na reimportação agendada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reimportação: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de reimportação")
		s.scheduler.Stop()
	}()

	return nil
}

// RunImport executa uma importação do arquivo configurado.
// Uma segunda chamada enquanto outra está em andamento retorna ErrImportRunning.
func (s *ImportSyncService) RunImport(ctx context.Context) (*domain.ImportSummary, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Reimportação já está em execução")
		return nil, ErrImportRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	summary, err := s.importer.ImportFile(ctx, s.config.FilePath)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastError = err
	if err == nil {
		s.lastSummary = summary
	}

	return summary, err
}

// TriggerManualSync inicia uma reimportação em segundo plano
func (s *ImportSyncService) TriggerManualSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Reimportação já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando reimportação manual")
	go func() {
		if _, err := s.RunImport(ctx); err != nil && !errors.Is(err, ErrImportRunning) {
			logrus.WithError(err).Error("Erro na reimportação manual")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *ImportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"file_path":              s.config.FilePath,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
	}
	if s.lastError != nil {
		status["last_error"] = s.lastError.Error()
	}

	return status
}
