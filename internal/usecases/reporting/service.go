package reporting

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/sales-data-api/infrastructure/repository"
	"github.com/vfg2006/sales-data-api/internal/domain"
)

var ErrQuery = errors.New("order status aggregation failed")

type StatusReporter interface {
	CountByStatus(ctx context.Context) ([]domain.StatusCount, error)
}

type OrderStatusService struct {
	SalesDataRepository repository.SalesDataRepository
}

func NewOrderStatusService(salesDataRepository repository.SalesDataRepository) StatusReporter {
	return &OrderStatusService{
		SalesDataRepository: salesDataRepository,
	}
}

// CountByStatus retorna a quantidade de itens por order_item_status.
// A ordem dos grupos é a devolvida pelo banco.
func (s *OrderStatusService) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	counts, err := s.SalesDataRepository.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	if counts == nil {
		counts = []domain.StatusCount{}
	}
	return counts, nil
}
