package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-data-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-data-api/internal/domain"
)

func newRepository(t *testing.T) (SalesDataRepository, sqlmock.Sqlmock, *postgres.Connection) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	conn := &postgres.Connection{DB: db}
	return NewSalesDataRepository(conn), mock, conn
}

func stringPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func argsFor(record *domain.SalesRecord) []driver.Value {
	values := record.Values()
	args := make([]driver.Value, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func record(id, status string) *domain.SalesRecord {
	return &domain.SalesRecord{
		OrderItemID:       stringPtr(id),
		OrderID:           stringPtr("OD-" + id),
		OrderDate:         timePtr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		OrderApprovalDate: timePtr(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)),
		OrderItemStatus:   stringPtr(status),
		SKU:               stringPtr("SKU-1"),
		FSN:               stringPtr("FSN-1"),
		ProductTitle:      stringPtr("Camiseta"),
		Quantity:          stringPtr("1"),
	}
}

var insertPattern = regexp.QuoteMeta("INSERT INTO sales_data (order_item_id,order_id,order_date")

func TestCreateTableStatement(t *testing.T) {
	ddl := CreateTableStatement()

	assert.True(t, strings.HasPrefix(ddl, "CREATE TABLE IF NOT EXISTS sales_data ("))
	assert.Contains(t, ddl, "order_item_id VARCHAR PRIMARY KEY,")
	assert.Contains(t, ddl, "order_date DATE,")
	assert.Contains(t, ddl, "order_approval_date TIMESTAMP,")
	assert.Contains(t, ddl, "product_title TEXT,")
	assert.Contains(t, ddl, "quantity INTEGER,")
	assert.Contains(t, ddl, "procurement_sla_breached CHAR(1),")
	assert.Contains(t, ddl, "dispatched_date DATE,")
	assert.Contains(t, ddl, "order_delivery_date TIMESTAMP\n)")
	assert.Equal(t, 1, strings.Count(ddl, "PRIMARY KEY"))
	assert.Equal(t, len(domain.SalesColumns)-1, strings.Count(ddl, ","))
}

func TestInsertStatement(t *testing.T) {
	doNothing, err := insertStatement(ConflictDoNothing)
	require.NoError(t, err)
	assert.Contains(t, doNothing, "$26)")
	assert.NotContains(t, doNothing, "$27")
	assert.True(t, strings.HasSuffix(doNothing, "ON CONFLICT (order_item_id) DO NOTHING"))

	fail, err := insertStatement(ConflictFail)
	require.NoError(t, err)
	assert.NotContains(t, fail, "ON CONFLICT")
}

func TestEnsureSchema_IsRepeatable(t *testing.T) {
	repo, mock, _ := newRepository(t)
	ddl := regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS sales_data (")

	mock.ExpectExec(ddl).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(ddl).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_Error(t *testing.T) {
	repo, mock, _ := newRepository(t)

	mock.ExpectExec("CREATE TABLE").WillReturnError(&pq.Error{Code: "42501", Message: "permission denied for schema public"})

	err := repo.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "42501")

	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
}

func TestInsertAll_CommitsAndCountsConflicts(t *testing.T) {
	repo, mock, conn := newRepository(t)

	first := record("OI-1", "shipped")
	duplicate := record("OI-1", "cancelled")
	second := record("OI-2", "cancelled")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(insertPattern)
	prep.ExpectExec().WithArgs(argsFor(first)...).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(argsFor(duplicate)...).WillReturnResult(sqlmock.NewResult(0, 0))
	prep.ExpectExec().WithArgs(argsFor(second)...).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.InsertAll(context.Background(), []*domain.SalesRecord{first, duplicate, second}, ConflictDoNothing)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, conn.Stats().InUse)
}

func TestInsertAll_RollsBackWholeBatch(t *testing.T) {
	repo, mock, conn := newRepository(t)

	first := record("OI-1", "shipped")
	broken := record("OI-2", "shipped")
	broken.Quantity = stringPtr("dois")
	third := record("OI-3", "shipped")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(insertPattern)
	prep.ExpectExec().WithArgs(argsFor(first)...).WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(argsFor(broken)...).
		WillReturnError(&pq.Error{Code: "22P02", Message: `invalid input syntax for type integer: "dois"`})
	mock.ExpectRollback()

	result, err := repo.InsertAll(context.Background(), []*domain.SalesRecord{first, broken, third}, ConflictDoNothing)
	require.Error(t, err)
	assert.Nil(t, result)

	var rowErr *domain.RowInsertError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Position)
	assert.Equal(t, "OI-2", *rowErr.OrderItemID)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("22P02"), pqErr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, conn.Stats().InUse, "a conexão deve ser liberada após o rollback")
}

func TestInsertAll_RollbackFailureKeepsRowError(t *testing.T) {
	repo, mock, conn := newRepository(t)

	broken := record("OI-1", "shipped")
	broken.Quantity = stringPtr("dois")
	rollbackFailure := errors.New("connection reset by peer")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(insertPattern)
	prep.ExpectExec().WithArgs(argsFor(broken)...).
		WillReturnError(&pq.Error{Code: "22P02", Message: `invalid input syntax for type integer: "dois"`})
	mock.ExpectRollback().WillReturnError(rollbackFailure)

	result, err := repo.InsertAll(context.Background(), []*domain.SalesRecord{broken}, ConflictDoNothing)
	require.Error(t, err)
	assert.Nil(t, result)

	var rowErr *domain.RowInsertError
	require.True(t, errors.As(err, &rowErr), "o registro com falha deve continuar identificável")
	assert.Equal(t, 1, rowErr.Position)
	assert.Equal(t, "OI-1", *rowErr.OrderItemID)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("22P02"), pqErr.Code)

	assert.ErrorIs(t, err, rollbackFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, conn.Stats().InUse)
}

func TestInsertAll_NoRecords(t *testing.T) {
	repo, mock, _ := newRepository(t)

	result, err := repo.InsertAll(context.Background(), nil, ConflictDoNothing)
	require.NoError(t, err)
	assert.Equal(t, &domain.InsertResult{}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAll_BeginFailure(t *testing.T) {
	repo, mock, _ := newRepository(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	_, err := repo.InsertAll(context.Background(), []*domain.SalesRecord{record("OI-1", "shipped")}, ConflictDoNothing)
	assert.EqualError(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatus(t *testing.T) {
	repo, mock, _ := newRepository(t)

	rows := sqlmock.NewRows([]string{"order_item_status", "count"}).
		AddRow("shipped", int64(2)).
		AddRow("cancelled", int64(1)).
		AddRow(nil, int64(4))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT order_item_status, COUNT(*) AS count FROM sales_data GROUP BY order_item_status")).
		WillReturnRows(rows)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 3)

	byStatus := map[string]int64{}
	for _, c := range counts {
		if c.Status == nil {
			byStatus["<null>"] = c.Count
			continue
		}
		byStatus[*c.Status] = c.Count
	}

	assert.Equal(t, map[string]int64{"shipped": 2, "cancelled": 1, "<null>": 4}, byStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatus_EmptyTable(t *testing.T) {
	repo, mock, _ := newRepository(t)

	mock.ExpectQuery("SELECT order_item_status").
		WillReturnRows(sqlmock.NewRows([]string{"order_item_status", "count"}))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, counts)
	assert.Empty(t, counts)
}

func TestCountByStatus_QueryError(t *testing.T) {
	repo, mock, _ := newRepository(t)

	mock.ExpectQuery("SELECT order_item_status").
		WillReturnError(&pq.Error{Code: "42P01", Message: `relation "sales_data" does not exist`})

	counts, err := repo.CountByStatus(context.Background())
	require.Error(t, err)
	assert.Nil(t, counts)
	assert.Contains(t, err.Error(), "42P01")
}
