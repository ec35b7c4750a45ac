package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/sales-data-api/internal/api/handler/router"
	"github.com/vfg2006/sales-data-api/internal/domain"
	"github.com/vfg2006/sales-data-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-data-api/internal/usecases/reporting/mocks"
)

func stringPtr(s string) *string {
	return &s
}

func serveOrderStatus(service reporting.StatusReporter) *httptest.ResponseRecorder {
	rt := router.New(router.WithRoutes(OrderStatus(service)...))
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order-status", nil))
	return rec
}

func TestGetOrderStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockStatusReporter(ctrl)

	service.EXPECT().CountByStatus(gomock.Any()).Return([]domain.StatusCount{
		{Status: stringPtr("shipped"), Count: 2},
		{Status: stringPtr("cancelled"), Count: 1},
		{Status: nil, Count: 3},
	}, nil)

	rec := serveOrderStatus(service)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[
		{"order_item_status":"shipped","count":2},
		{"order_item_status":"cancelled","count":1},
		{"order_item_status":null,"count":3}
	]`, rec.Body.String())
}

func TestGetOrderStatus_EmptyTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockStatusReporter(ctrl)

	service.EXPECT().CountByStatus(gomock.Any()).Return([]domain.StatusCount{}, nil)

	rec := serveOrderStatus(service)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestGetOrderStatus_QueryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockStatusReporter(ctrl)

	service.EXPECT().
		CountByStatus(gomock.Any()).
		DoAndReturn(func(ctx context.Context) ([]domain.StatusCount, error) {
			return nil, errors.New(`pq: relation "sales_data" does not exist`)
		})

	rec := serveOrderStatus(service)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server Error", rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "sales_data")
}
