package store_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuittipankki/internal/report/store"
)

func newMock(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func TestStore_SpendingByCategory_BindsInclusiveRange(t *testing.T) {
	s, mock := newMock(t)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	// BETWEEN is inclusive on both ends, and the exact range bounds are
	// bound as parameters, so receipts dated on start or end count.
	mock.ExpectQuery(regexp.QuoteMeta("r.receipt_date BETWEEN $2 AND $3")).
		WithArgs(int64(1), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"name", "total"}).
			AddRow("Groceries", "50.00").
			AddRow("Fuel", "30.00"))

	rows, err := s.SpendingByCategory(context.Background(), 1, start, end)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Groceries", rows[0].Label)
	assert.Equal(t, "50", rows[0].Total.String())
	assert.Equal(t, "Fuel", rows[1].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_TotalSpending_NoReceiptsIsZero(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(amount), 0)")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

	total, err := s.TotalSpending(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_MostUsedCategory_NoReceipts(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY usage_count DESC, c.id ASC")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "usage_count"}))

	got, err := s.MostUsedCategory(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
