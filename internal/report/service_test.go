package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kuittipankki/internal/report"
)

func TestService_SpendingByCategory(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name       string
		start, end time.Time
		setupMock  func(m *report.MockRepository)
		want       []report.SpendingRow
		wantErr    error
	}

	tests := []testCase{
		{
			name:  "GroupedAndOrdered",
			start: jan1,
			end:   jan31,
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().
					SpendingByCategory(gomock.Any(), int64(1), jan1, jan31).
					Return([]report.SpendingRow{
						{Label: "Groceries", Total: decimal.RequireFromString("50.00")},
						{Label: "Fuel", Total: decimal.RequireFromString("30.00")},
					}, nil)
			},
			want: []report.SpendingRow{
				{Label: "Groceries", Total: decimal.RequireFromString("50.00")},
				{Label: "Fuel", Total: decimal.RequireFromString("30.00")},
			},
		},
		{
			name:  "SingleDayRangeIsValid",
			start: jan1,
			end:   jan1,
			setupMock: func(m *report.MockRepository) {
				m.EXPECT().
					SpendingByCategory(gomock.Any(), int64(1), jan1, jan1).
					Return(nil, nil)
			},
		},
		{
			name:    "InvertedRange",
			start:   jan31,
			end:     jan1,
			wantErr: report.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := report.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := report.NewService(repo)
			got, err := svc.SpendingByCategory(context.Background(), 1, tt.start, tt.end)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_SpendingByVendor_InvertedRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	svc := report.NewService(repo)

	start := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.SpendingByVendor(context.Background(), 1, start, end)
	assert.ErrorIs(t, err, report.ErrInvalidRange)
}

func TestService_TotalSpending_ZeroWithoutReceipts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().TotalSpending(gomock.Any(), int64(5)).Return(decimal.Zero, nil)

	svc := report.NewService(repo)
	total, err := svc.TotalSpending(context.Background(), 5)

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("0.00")))
}

func TestService_MostUsedCategory_NilWithoutReceipts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	repo.EXPECT().MostUsedCategory(gomock.Any(), int64(5)).Return(nil, nil)

	svc := report.NewService(repo)
	usage, err := svc.MostUsedCategory(context.Background(), 5)

	require.NoError(t, err)
	assert.Nil(t, usage)
}
