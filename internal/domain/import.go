package domain

import (
	"fmt"
	"time"
)

// InsertResult resume o resultado da gravação de um lote de registros
type InsertResult struct {
	Inserted int
	Skipped  int // Registros ignorados por conflito de chave primária
}

// ImportSummary descreve uma execução completa de importação de arquivo
type ImportSummary struct {
	RunID       string        `json:"run_id"`
	Path        string        `json:"path"`
	RecordsRead int           `json:"records_read"`
	Inserted    int           `json:"inserted"`
	Skipped     int           `json:"skipped"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
}

// RowInsertError identifica o registro que impediu a gravação do lote
type RowInsertError struct {
	Position    int // Posição do registro no arquivo, começando em 1
	OrderItemID *string
	Err         error
}

func (e *RowInsertError) Error() string {
	id := "<ausente>"
	if e.OrderItemID != nil {
		id = *e.OrderItemID
	}
	return fmt.Sprintf("registro %d (order_item_id=%s): %v", e.Position, id, e.Err)
}

func (e *RowInsertError) Unwrap() error {
	return e.Err
}
