package importing

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-data-api/infrastructure/repository"
	"github.com/vfg2006/sales-data-api/internal/domain"
	"github.com/vfg2006/sales-data-api/pkg/log"
	"github.com/vfg2006/sales-data-api/pkg/utils"
)

type Importer interface {
	EnsureSchema(ctx context.Context) error
	ImportFile(ctx context.Context, path string) (*domain.ImportSummary, error)
}

type Service struct {
	repo       repository.SalesDataRepository
	normalizer *Normalizer
	clock      func() time.Time
}

func NewService(repo repository.SalesDataRepository, location *time.Location) Importer {
	return &Service{
		repo:       repo,
		normalizer: NewNormalizer(location),
		clock:      time.Now,
	}
}

// EnsureSchema cria a tabela sales_data caso ainda não exista
func (s *Service) EnsureSchema(ctx context.Context) error {
	logger := log.ForContext(ctx)

	if err := s.repo.EnsureSchema(ctx); err != nil {
		logger.WithError(err).Error("Erro ao criar tabela sales_data")
		return newImportError(ErrSchema, err, "", "", "")
	}

	logger.Info("Tabela sales_data criada ou já existente")
	return nil
}

// ImportFile lê o arquivo inteiro, normaliza cada linha e grava tudo em uma
// única transação. Registros com order_item_id já existente são ignorados.
// Em caso de erro nenhum registro do arquivo permanece gravado.
func (s *Service) ImportFile(ctx context.Context, path string) (*domain.ImportSummary, error) {
	startedAt := s.clock()

	runID, err := utils.GenerateID()
	if err != nil {
		runID = startedAt.Format("20060102150405")
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"import_run_id": runID,
		"import_path":   path,
	})
	logger.Info("Iniciando importação do arquivo de vendas")

	rawRecords, err := readFile(path)
	if err != nil {
		logger.WithError(err).Error("Erro ao ler arquivo de vendas")
		return nil, newImportError(ErrFile, err, path, runID, "")
	}

	records := make([]*domain.SalesRecord, len(rawRecords))
	for i, raw := range rawRecords {
		records[i] = s.normalizer.Normalize(raw)
	}

	logger.WithField("import_records", len(records)).Debug("Arquivo lido, iniciando gravação")

	result := &domain.InsertResult{}
	if len(records) > 0 {
		result, err = s.repo.InsertAll(ctx, records, repository.ConflictDoNothing)
		if err != nil {
			logger.WithError(err).Error("Erro ao importar dados, transação desfeita")
			return nil, newImportError(ErrInsert, err, path, runID, "nenhum registro do arquivo foi gravado")
		}
	}

	summary := &domain.ImportSummary{
		RunID:       runID,
		Path:        path,
		RecordsRead: len(records),
		Inserted:    result.Inserted,
		Skipped:     result.Skipped,
		StartedAt:   startedAt,
		Duration:    s.clock().Sub(startedAt),
	}

	logger.WithFields(log.Fields{
		"import_records":  summary.RecordsRead,
		"import_inserted": summary.Inserted,
		"import_skipped":  summary.Skipped,
		"duration_ms":     summary.Duration.Milliseconds(),
	}).Info("Dados importados com sucesso")

	return summary, nil
}

func readFile(path string) ([]RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir arquivo")
	}
	defer file.Close()

	records, err := ReadRecords(file)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao interpretar CSV")
	}

	return records, nil
}
