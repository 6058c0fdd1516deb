package store_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuittipankki/internal/catalog"
	"kuittipankki/internal/catalog/store"
)

func newMock(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func TestStore_CreatePaymentMethod_DuplicateName(t *testing.T) {
	s, mock := newMock(t)

	// payment_methods.name is unique, same as categories and tags.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payment_methods")).
		WithArgs("Card", "").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := s.CreatePaymentMethod(context.Background(), &catalog.PaymentMethod{Name: "Card"})
	assert.ErrorIs(t, err, catalog.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpsertVendor_CollisionReturnsStoredRow(t *testing.T) {
	s, mock := newMock(t)

	// On a name collision the stored contact details come back, not the
	// ones the caller sent.
	mock.ExpectQuery(regexp.QuoteMeta("RETURNING id, address, phone")).
		WithArgs("K-Market", "New street 9", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "address", "phone"}).
			AddRow(int64(42), "Mannerheimintie 1", "+358401234567"))

	v := &catalog.Vendor{Name: "K-Market", Address: "New street 9"}

	require.NoError(t, s.UpsertVendor(context.Background(), v))
	assert.Equal(t, int64(42), v.ID)
	assert.Equal(t, "Mannerheimintie 1", v.Address)
	assert.Equal(t, "+358401234567", v.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteVendor_ReferencedByReceipts(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vendors WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := s.DeleteVendor(context.Background(), 7)
	assert.ErrorIs(t, err, catalog.ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}
