package domain

// StatusCount é uma linha da agregação de itens por status.
// Status é nil para itens gravados sem order_item_status.
type StatusCount struct {
	Status *string `json:"order_item_status"`
	Count  int64   `json:"count"`
}
