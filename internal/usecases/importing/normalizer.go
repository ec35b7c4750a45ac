package importing

import (
	"strings"
	"time"

	"github.com/vfg2006/sales-data-api/internal/domain"
	"github.com/vfg2006/sales-data-api/pkg/utils"
)

// RawRecord é uma linha do CSV indexada pelo nome da coluna do cabeçalho
type RawRecord map[string]string

// Normalizer converte linhas cruas do CSV em registros tipados.
// Datas sem fuso são interpretadas em location.
type Normalizer struct {
	location *time.Location
}

func NewNormalizer(location *time.Location) *Normalizer {
	if location == nil {
		location = time.UTC
	}
	return &Normalizer{location: location}
}

// Normalize usa UTC para datas sem fuso
func Normalize(raw RawRecord) *domain.SalesRecord {
	return NewNormalizer(time.UTC).Normalize(raw)
}

// Normalize não faz I/O e nunca falha:
//   - datas vazias ou inválidas viram nil
//   - inteiros vazios viram nil, os demais seguem como texto para o banco
//   - textos seguem como vieram, inclusive vazios
func (n *Normalizer) Normalize(raw RawRecord) *domain.SalesRecord {
	return &domain.SalesRecord{
		OrderItemID:                 raw.text("order_item_id"),
		OrderID:                     raw.text("order_id"),
		OrderDate:                   n.timestamp(raw, "order_date"),
		OrderApprovalDate:           n.timestamp(raw, "order_approval_date"),
		OrderItemStatus:             raw.text("order_item_status"),
		SKU:                         raw.text("sku"),
		FSN:                         raw.text("fsn"),
		ProductTitle:                raw.text("product_title"),
		Quantity:                    raw.integer("quantity"),
		OrderCancellationDate:       n.timestamp(raw, "order_cancellation_date"),
		ProcurementSLA:              raw.integer("procurement_sla"),
		ProcurementAfterDate:        n.timestamp(raw, "procurement_after_date"),
		ProcurementByDate:           n.timestamp(raw, "procurement_by_date"),
		ProcurementSLABreached:      raw.text("procurement_sla_breached"),
		DispatchAfterSLA:            raw.integer("dispatch_after_sla"),
		ProcurementReadyAfterDate:   n.timestamp(raw, "procurement_ready_after_date"),
		ProcurementDispatchSLA:      raw.integer("procurement_dispatch_sla"),
		DispatchAfterDate:           n.timestamp(raw, "dispatch_after_date"),
		DispatchByDate:              n.timestamp(raw, "dispatch_by_date"),
		OrderReadyForDispatchOnDate: n.timestamp(raw, "order_ready_for_dispatch_on_date"),
		DispatchedDate:              n.timestamp(raw, "dispatched_date"),
		DispatchSLABreached:         raw.text("dispatch_sla_breached"),
		SellerPickupReattempts:      raw.text("seller_pickup_reattempts"),
		DeliverySLA:                 raw.integer("delivery_sla"),
		DeliverByDate:               n.timestamp(raw, "deliver_by_date"),
		OrderDeliveryDate:           n.timestamp(raw, "order_delivery_date"),
	}
}

// text devolve o valor sem alterações; nil apenas se a coluna não existe no arquivo
func (r RawRecord) text(column string) *string {
	value, ok := r[column]
	if !ok {
		return nil
	}
	return &value
}

func (r RawRecord) integer(column string) *string {
	value, ok := r[column]
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func (n *Normalizer) timestamp(raw RawRecord, column string) *time.Time {
	value, ok := raw[column]
	if !ok {
		return nil
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	parsed, err := utils.ParseISO8601(value, n.location)
	if err != nil {
		return nil
	}

	parsed = parsed.UTC()
	return &parsed
}
