package importing

import (
	"errors"
	"fmt"
)

// Erros específicos da importação do CSV de pedidos
var (
	ErrSchema = errors.New("sales table initialization failed")
	ErrFile   = errors.New("csv file could not be read")
	ErrInsert = errors.New("sales records insert failed")
)

// ImportError é um erro com contexto adicional da importação
type ImportError struct {
	Err     error  // Categoria do erro (ErrSchema, ErrFile, ErrInsert)
	Cause   error  // Erro original
	Path    string // Arquivo envolvido (quando aplicável)
	RunID   string // Identificador da execução
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ImportError) Error() string {
	msg := e.Err.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap permite que errors.Is/As encontrem tanto a categoria quanto a causa
func (e *ImportError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func newImportError(err error, cause error, path, runID, details string) *ImportError {
	return &ImportError{
		Err:     err,
		Cause:   cause,
		Path:    path,
		RunID:   runID,
		Details: details,
	}
}
