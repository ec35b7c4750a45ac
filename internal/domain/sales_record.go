// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"
)

const SalesDataTable = "sales_data"

// ColumnKind indica como o valor bruto do CSV é tratado antes da gravação
type ColumnKind int

const (
	ColumnText ColumnKind = iota
	ColumnFlag
	ColumnInteger
	ColumnDate
	ColumnTimestamp
)

// SQLType retorna o tipo da coluna no PostgreSQL
func (k ColumnKind) SQLType() string {
	switch k {
	case ColumnFlag:
		return "CHAR(1)"
	case ColumnInteger:
		return "INTEGER"
	case ColumnDate:
		return "DATE"
	case ColumnTimestamp:
		return "TIMESTAMP"
	default:
		return "VARCHAR"
	}
}

type Column struct {
	Name string
	Kind ColumnKind
	// SQLType sobrescreve o tipo derivado de Kind quando preenchido
	SQLType string
}

func (c Column) Type() string {
	if c.SQLType != "" {
		return c.SQLType
	}
	return c.Kind.SQLType()
}

const PrimaryKeyColumn = "order_item_id"

// SalesColumns lista as colunas de sales_data na ordem do CSV exportado.
// A mesma ordem é usada no CREATE TABLE, no INSERT e em SalesRecord.Values.
var SalesColumns = []Column{
	{Name: "order_item_id", Kind: ColumnText},
	{Name: "order_id", Kind: ColumnText},
	{Name: "order_date", Kind: ColumnDate},
	{Name: "order_approval_date", Kind: ColumnTimestamp},
	{Name: "order_item_status", Kind: ColumnText},
	{Name: "sku", Kind: ColumnText},
	{Name: "fsn", Kind: ColumnText},
	{Name: "product_title", Kind: ColumnText, SQLType: "TEXT"},
	{Name: "quantity", Kind: ColumnInteger},
	{Name: "order_cancellation_date", Kind: ColumnTimestamp},
	{Name: "procurement_sla", Kind: ColumnInteger},
	{Name: "procurement_after_date", Kind: ColumnTimestamp},
	{Name: "procurement_by_date", Kind: ColumnTimestamp},
	{Name: "procurement_sla_breached", Kind: ColumnFlag},
	{Name: "dispatch_after_sla", Kind: ColumnInteger},
	{Name: "procurement_ready_after_date", Kind: ColumnTimestamp},
	{Name: "procurement_dispatch_sla", Kind: ColumnInteger},
	{Name: "dispatch_after_date", Kind: ColumnTimestamp},
	{Name: "dispatch_by_date", Kind: ColumnTimestamp},
	{Name: "order_ready_for_dispatch_on_date", Kind: ColumnTimestamp},
	{Name: "dispatched_date", Kind: ColumnDate},
	{Name: "dispatch_sla_breached", Kind: ColumnFlag},
	{Name: "seller_pickup_reattempts", Kind: ColumnFlag},
	{Name: "delivery_sla", Kind: ColumnInteger},
	{Name: "deliver_by_date", Kind: ColumnTimestamp},
	{Name: "order_delivery_date", Kind: ColumnTimestamp},
}

// SalesColumnNames retorna apenas os nomes das colunas, na ordem de SalesColumns
func SalesColumnNames() []string {
	names := make([]string, len(SalesColumns))
	for i, column := range SalesColumns {
		names[i] = column.Name
	}
	return names
}

// SalesRecord representa um item de pedido já normalizado para gravação.
// nil significa ausente (NULL). Campos inteiros guardam o texto original do CSV:
// a conversão para INTEGER fica a cargo do banco.
type SalesRecord struct {
	OrderItemID                 *string
	OrderID                     *string
	OrderDate                   *time.Time
	OrderApprovalDate           *time.Time
	OrderItemStatus             *string
	SKU                         *string
	FSN                         *string
	ProductTitle                *string
	Quantity                    *string
	OrderCancellationDate       *time.Time
	ProcurementSLA              *string
	ProcurementAfterDate        *time.Time
	ProcurementByDate           *time.Time
	ProcurementSLABreached      *string
	DispatchAfterSLA            *string
	ProcurementReadyAfterDate   *time.Time
	ProcurementDispatchSLA      *string
	DispatchAfterDate           *time.Time
	DispatchByDate              *time.Time
	OrderReadyForDispatchOnDate *time.Time
	DispatchedDate              *time.Time
	DispatchSLABreached         *string
	SellerPickupReattempts      *string
	DeliverySLA                 *string
	DeliverByDate               *time.Time
	OrderDeliveryDate           *time.Time
}

// Values retorna os valores do registro na ordem de SalesColumns, prontos para
// serem usados como argumentos de um INSERT.
func (r *SalesRecord) Values() []interface{} {
	return []interface{}{
		text(r.OrderItemID),
		text(r.OrderID),
		date(r.OrderDate),
		timestamp(r.OrderApprovalDate),
		text(r.OrderItemStatus),
		text(r.SKU),
		text(r.FSN),
		text(r.ProductTitle),
		text(r.Quantity),
		timestamp(r.OrderCancellationDate),
		text(r.ProcurementSLA),
		timestamp(r.ProcurementAfterDate),
		timestamp(r.ProcurementByDate),
		text(r.ProcurementSLABreached),
		text(r.DispatchAfterSLA),
		timestamp(r.ProcurementReadyAfterDate),
		text(r.ProcurementDispatchSLA),
		timestamp(r.DispatchAfterDate),
		timestamp(r.DispatchByDate),
		timestamp(r.OrderReadyForDispatchOnDate),
		date(r.DispatchedDate),
		text(r.DispatchSLABreached),
		text(r.SellerPickupReattempts),
		text(r.DeliverySLA),
		timestamp(r.DeliverByDate),
		timestamp(r.OrderDeliveryDate),
	}
}

func text(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func date(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.DateOnly)
}

func timestamp(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}
