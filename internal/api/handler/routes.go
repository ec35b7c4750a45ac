package handler

import (
	"net/http"

	"github.com/vfg2006/sales-data-api/internal/api/handler/router"
	"github.com/vfg2006/sales-data-api/internal/usecases/reporting"
)

func OrderStatus(service reporting.StatusReporter) []router.Route {
	return []router.Route{
		{
			Path:    "/order-status",
			Method:  http.MethodGet,
			Handler: GetOrderStatus(service),
		},
	}
}
