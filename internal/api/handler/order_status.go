package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-data-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-data-api/pkg/apiErrors"
	"github.com/vfg2006/sales-data-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GetOrderStatus retorna a quantidade de itens agrupada por order_item_status
func GetOrderStatus(service reporting.StatusReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		counts, err := service.CountByStatus(r.Context())
		if err != nil {
			logger.WithError(err).Error("Erro ao buscar quantidade de pedidos por status")
			apiErrors.WriteServerError(w)
			return
		}

		body, err := json.Marshal(counts)
		if err != nil {
			logger.WithError(err).Error("Erro ao serializar resposta de status dos pedidos")
			apiErrors.WriteServerError(w)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			logger.WithError(err).Warn("Erro ao enviar resposta de status dos pedidos")
		}
	}
}
