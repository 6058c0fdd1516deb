package export_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kuittipankki/internal/catalog"
	"kuittipankki/internal/export"
	"kuittipankki/internal/receipt"
)

func TestService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	svc := export.NewService(receipt.NewService(repo))

	rc := &receipt.Receipt{
		ID:                10,
		UserID:            1,
		Description:       "Weekly groceries",
		Amount:            decimal.RequireFromString("50.00"),
		Date:              time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		CategoryName:      "Groceries",
		VendorName:        "K-Market",
		PaymentMethodName: "Card",
	}

	repo.EXPECT().
		ListReceipts(gomock.Any(), int64(1), receipt.ListFilter{}).
		Return([]*receipt.Receipt{rc}, nil)
	repo.EXPECT().GetReceipt(gomock.Any(), int64(1), int64(10)).Return(rc, nil)
	repo.EXPECT().ListTags(gomock.Any(), int64(10)).Return([]catalog.Tag{
		{ID: 1, Name: "food"},
		{ID: 2, Name: "weekly"},
	}, nil)

	var sb strings.Builder

	err := svc.Export(context.Background(), 1, receipt.ListFilter{}, &sb)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,description,amount,category,vendor,payment_method,tags", lines[0])
	assert.Equal(t, "2024-01-05,Weekly groceries,50.00,Groceries,K-Market,Card,food|weekly", lines[1])
}

func TestService_Export_NoReceipts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	svc := export.NewService(receipt.NewService(repo))

	repo.EXPECT().
		ListReceipts(gomock.Any(), int64(1), receipt.ListFilter{}).
		Return(nil, nil)

	var sb strings.Builder

	err := svc.Export(context.Background(), 1, receipt.ListFilter{}, &sb)
	require.NoError(t, err)
	assert.Equal(t, "date,description,amount,category,vendor,payment_method,tags\n", sb.String())
}
