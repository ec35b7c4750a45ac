package reporting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/sales-data-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-data-api/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func TestCountByStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesDataRepository(ctrl)
	service := NewOrderStatusService(repo)

	expected := []domain.StatusCount{
		{Status: strPtr("shipped"), Count: 2},
		{Status: nil, Count: 1},
		{Status: strPtr(""), Count: 4},
	}
	repo.EXPECT().CountByStatus(gomock.Any()).Return(expected, nil)

	counts, err := service.CountByStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, counts)
}

func TestCountByStatus_EmptyTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesDataRepository(ctrl)
	service := NewOrderStatusService(repo)

	repo.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil)

	counts, err := service.CountByStatus(context.Background())

	require.NoError(t, err)
	require.NotNil(t, counts)
	assert.Empty(t, counts)
}

func TestCountByStatus_QueryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesDataRepository(ctrl)
	service := NewOrderStatusService(repo)

	cause := errors.New(`relation "sales_data" does not exist`)
	repo.EXPECT().CountByStatus(gomock.Any()).Return(nil, cause)

	counts, err := service.CountByStatus(context.Background())

	assert.Nil(t, counts)
	assert.ErrorIs(t, err, ErrQuery)
	assert.ErrorIs(t, err, cause)
}
