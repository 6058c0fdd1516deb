package csvimport_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kuittipankki/internal/catalog"
	"kuittipankki/internal/csvimport"
	"kuittipankki/internal/receipt"
)

func TestParse(t *testing.T) {
	input := "date,description,amount,category,payment_method,vendor\n" +
		"2024-01-05,Weekly groceries,50.00,Groceries,Card,K-Market\n" +
		"2024-01-10,Petrol,\"30,50\",Fuel,Card,\n"

	rows, rowErrs, err := csvimport.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	assert.Equal(t, "Weekly groceries", rows[0].Description)
	assert.True(t, rows[0].Amount.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, "K-Market", rows[0].Vendor)

	// Decimal comma is normalized.
	assert.True(t, rows[1].Amount.Equal(decimal.RequireFromString("30.50")))
	assert.Empty(t, rows[1].Vendor)
}

func TestParse_BadRowsAreReportedNotFatal(t *testing.T) {
	input := "date,description,amount,category,payment_method\n" +
		"2024-01-05,OK,10.00,Groceries,Card\n" +
		"not-a-date,Bad date,10.00,Groceries,Card\n" +
		"2024-01-06,Bad amount,ten,Groceries,Card\n" +
		"2024-01-07,Negative,-5.00,Groceries,Card\n"

	rows, rowErrs, err := csvimport.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	require.Len(t, rowErrs, 3)
	assert.Equal(t, 3, rowErrs[0].Line)
}

func TestParse_MissingHeader(t *testing.T) {
	input := "date,description,amount\n2024-01-05,x,10.00\n"

	_, _, err := csvimport.Parse(strings.NewReader(input))
	assert.ErrorIs(t, err, csvimport.ErrMissingHeader)
}

func TestParse_UTF8BOM(t *testing.T) {
	input := "\xEF\xBB\xBFdate,description,amount,category,payment_method\n" +
		"2024-01-05,Kahvi,3.50,Groceries,Card\n"

	rows, rowErrs, err := csvimport.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "Kahvi", rows[0].Description)
}

func TestParse_Windows1252(t *testing.T) {
	// "Säästö" with 0xE4/0xF6 single-byte umlauts, as legacy Finnish
	// exports produce.
	input := "date,description,amount,category,payment_method\n" +
		"2024-01-05,S\xE4\xE4st\xF6,1.00,Groceries,Card\n"

	rows, rowErrs, err := csvimport.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "Säästö", rows[0].Description)
}

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	receiptRepo := receipt.NewMockRepository(ctrl)
	catalogRepo := catalog.NewMockRepository(ctrl)

	svc := csvimport.NewService(
		receipt.NewService(receiptRepo),
		catalog.NewService(catalogRepo),
	)

	catalogRepo.EXPECT().
		GetCategoryByName(gomock.Any(), "Groceries").
		Return(&catalog.Category{ID: 1, Name: "Groceries"}, nil)
	catalogRepo.EXPECT().
		GetPaymentMethodByName(gomock.Any(), "Card").
		Return(&catalog.PaymentMethod{ID: 2, Name: "Card"}, nil)
	catalogRepo.EXPECT().
		UpsertVendor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v *catalog.Vendor) error {
			v.ID = 3
			return nil
		})
	receiptRepo.EXPECT().
		CreateReceipt(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rc *receipt.Receipt, _ []receipt.Item, _ []int64) error {
			assert.Equal(t, int64(1), rc.CategoryID)
			assert.Equal(t, int64(2), rc.PaymentMethodID)
			require.NotNil(t, rc.VendorID)
			assert.Equal(t, int64(3), *rc.VendorID)
			rc.ID = 100
			return nil
		})

	// Unknown category on the second row: skipped, not fatal.
	catalogRepo.EXPECT().
		GetCategoryByName(gomock.Any(), "Nonexistent").
		Return(nil, catalog.ErrNotFound)

	input := "date,description,amount,category,payment_method,vendor\n" +
		"2024-01-05,Weekly groceries,50.00,Groceries,Card,K-Market\n" +
		"2024-01-06,Mystery,5.00,Nonexistent,Card,\n"

	result, err := svc.Import(context.Background(), 1, strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 3, result.Skipped[0].Line)
}
