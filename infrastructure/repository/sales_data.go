// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -source=sales_data.go -destination=mocks/sales_data.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-data-api/internal/domain"
)

// ConflictPolicy define o comportamento do INSERT quando a chave primária já existe
type ConflictPolicy int

const (
	// ConflictDoNothing descarta silenciosamente o registro duplicado (a primeira gravação vence)
	ConflictDoNothing ConflictPolicy = iota
	// ConflictFail deixa o banco rejeitar o registro duplicado
	ConflictFail
)

func (p ConflictPolicy) suffix() string {
	if p == ConflictDoNothing {
		return fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", domain.PrimaryKeyColumn)
	}
	return ""
}

type SalesDataRepository interface {
	EnsureSchema(ctx context.Context) error
	InsertAll(ctx context.Context, records []*domain.SalesRecord, policy ConflictPolicy) (*domain.InsertResult, error)
	CountByStatus(ctx context.Context) ([]domain.StatusCount, error)
}

type salesDataRepository struct {
	conn postgres.Conn
}

func NewSalesDataRepository(conn postgres.Conn) SalesDataRepository {
	return &salesDataRepository{
		conn: conn,
	}
}

// CreateTableStatement monta o CREATE TABLE IF NOT EXISTS de sales_data a partir de domain.SalesColumns
func CreateTableStatement() string {
	var b strings.Builder

	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", domain.SalesDataTable)
	for i, column := range domain.SalesColumns {
		fmt.Fprintf(&b, "\t%s %s", column.Name, column.Type())
		if column.Name == domain.PrimaryKeyColumn {
			b.WriteString(" PRIMARY KEY")
		}
		if i < len(domain.SalesColumns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")

	return b.String()
}

func (r *salesDataRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.conn.ExecContext(ctx, CreateTableStatement()); err != nil {
		return fmt.Errorf("erro ao criar tabela %s: %w", domain.SalesDataTable, describe(err))
	}
	return nil
}

func insertStatement(policy ConflictPolicy) (string, error) {
	columns := domain.SalesColumnNames()

	query := squirrel.StatementBuilder.
		Insert(domain.SalesDataTable).
		Columns(columns...).
		Values(make([]interface{}, len(columns))...).
		PlaceholderFormat(squirrel.Dollar)

	if suffix := policy.suffix(); suffix != "" {
		query = query.Suffix(suffix)
	}

	sqlQuery, _, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	return sqlQuery, nil
}

// InsertAll grava todos os registros em uma única transação, na ordem recebida.
// Se qualquer registro falhar a transação inteira é desfeita e o erro retornado
// contém um *domain.RowInsertError apontando o registro.
func (r *salesDataRepository) InsertAll(ctx context.Context, records []*domain.SalesRecord, policy ConflictPolicy) (*domain.InsertResult, error) {
	result := &domain.InsertResult{}
	if len(records) == 0 {
		return result, nil
	}

	sqlQuery, err := insertStatement(policy)
	if err != nil {
		return nil, err
	}

	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, sqlQuery)
		if err != nil {
			return fmt.Errorf("erro ao preparar insert em %s: %w", domain.SalesDataTable, describe(err))
		}
		defer stmt.Close()

		for i, record := range records {
			res, err := stmt.ExecContext(ctx, record.Values()...)
			if err != nil {
				return &domain.RowInsertError{
					Position:    i + 1,
					OrderItemID: record.OrderItemID,
					Err:         describe(err),
				}
			}

			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
			}

			if affected == 0 {
				result.Skipped++
			} else {
				result.Inserted++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *salesDataRepository) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	query, args, err := squirrel.
		Select("order_item_status", "COUNT(*) AS count").
		From(domain.SalesDataTable).
		GroupBy("order_item_status").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", describe(err))
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0)
	for rows.Next() {
		var status sql.NullString
		var count int64

		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("erro ao escanear contagem por status: %w", err)
		}

		item := domain.StatusCount{Count: count}
		if status.Valid {
			item.Status = &status.String
		}
		counts = append(counts, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return counts, nil
}

// describe acrescenta o código do PostgreSQL à mensagem, mantendo o *pq.Error acessível via errors.As
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return err
}
