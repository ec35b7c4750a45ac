package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesColumns(t *testing.T) {
	names := SalesColumnNames()

	require.Len(t, names, 26)
	assert.Equal(t, PrimaryKeyColumn, names[0])
	assert.Equal(t, "order_delivery_date", names[len(names)-1])

	seen := map[string]bool{}
	for _, name := range names {
		assert.False(t, seen[name], "coluna duplicada: %s", name)
		seen[name] = true
	}
}

func TestColumnType(t *testing.T) {
	assert.Equal(t, "VARCHAR", Column{Kind: ColumnText}.Type())
	assert.Equal(t, "CHAR(1)", Column{Kind: ColumnFlag}.Type())
	assert.Equal(t, "INTEGER", Column{Kind: ColumnInteger}.Type())
	assert.Equal(t, "DATE", Column{Kind: ColumnDate}.Type())
	assert.Equal(t, "TIMESTAMP", Column{Kind: ColumnTimestamp}.Type())
	assert.Equal(t, "TEXT", Column{Kind: ColumnText, SQLType: "TEXT"}.Type())
}

func TestSalesRecordValues(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	id := "OI-1"
	empty := ""
	quantity := "3"
	orderDate := time.Date(2024, 1, 15, 2, 0, 0, 0, ist)
	approval := time.Date(2024, 1, 15, 10, 30, 0, 0, ist)

	record := &SalesRecord{
		OrderItemID:       &id,
		OrderDate:         &orderDate,
		OrderApprovalDate: &approval,
		OrderItemStatus:   &empty,
		Quantity:          &quantity,
	}

	values := record.Values()

	require.Len(t, values, len(SalesColumns))
	assert.Equal(t, "OI-1", values[0])
	assert.Nil(t, values[1])
	assert.Equal(t, "2024-01-14", values[2], "DATE usa o dia em UTC")
	assert.Equal(t, time.Date(2024, 1, 15, 5, 0, 0, 0, time.UTC), values[3])
	assert.Equal(t, "", values[4])
	assert.Equal(t, "3", values[8])
	assert.Nil(t, values[20])
	assert.Nil(t, values[25])
}

func TestRowInsertError(t *testing.T) {
	cause := errors.New("invalid input syntax for type integer")
	id := "OI-7"

	err := &RowInsertError{Position: 7, OrderItemID: &id, Err: cause}
	assert.Equal(t, "registro 7 (order_item_id=OI-7): invalid input syntax for type integer", err.Error())
	assert.ErrorIs(t, err, cause)

	missing := &RowInsertError{Position: 2, Err: cause}
	assert.Contains(t, missing.Error(), "order_item_id=<ausente>")
}
