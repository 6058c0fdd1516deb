package receipt_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kuittipankki/internal/catalog"
	"kuittipankki/internal/receipt"
)

func TestService_Create(t *testing.T) {
	type args struct {
		userID int64
		params receipt.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *receipt.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				userID: 1,
				params: receipt.CreateParams{
					Description:     "Weekly groceries",
					Amount:          decimal.RequireFromString("50.00"),
					Date:            time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
					CategoryID:      1,
					PaymentMethodID: 1,
					TagIDs:          []int64{3, 4},
				},
			},
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().
					CreateReceipt(gomock.Any(), gomock.Any(), gomock.Any(), []int64{3, 4}).
					DoAndReturn(func(_ context.Context, rc *receipt.Receipt, _ []receipt.Item, _ []int64) error {
						rc.ID = 10
						rc.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "NegativeAmount",
			args: args{
				userID: 1,
				params: receipt.CreateParams{
					Description:     "Bad",
					Amount:          decimal.RequireFromString("-1.00"),
					CategoryID:      1,
					PaymentMethodID: 1,
				},
			},
			wantErr: receipt.ErrNegativeAmount,
		},
		{
			name: "NegativeItemPrice",
			args: args{
				userID: 1,
				params: receipt.CreateParams{
					Description:     "Bad item",
					Amount:          decimal.RequireFromString("5.00"),
					CategoryID:      1,
					PaymentMethodID: 1,
					Items: []receipt.ItemParams{
						{Name: "Milk", Quantity: 1, Price: decimal.RequireFromString("-0.01")},
					},
				},
			},
			wantErr: receipt.ErrNegativeAmount,
		},
		{
			name: "RepoError",
			args: args{
				userID: 1,
				params: receipt.CreateParams{
					Amount:          decimal.RequireFromString("5.00"),
					CategoryID:      1,
					PaymentMethodID: 1,
				},
			},
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().
					CreateReceipt(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := receipt.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := receipt.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.userID, tt.args.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotZero(t, got.ID)
			assert.Equal(t, tt.args.userID, got.UserID)
		})
	}
}

func TestService_Get_OtherUsersReceiptIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	svc := receipt.NewService(repo)

	// The store scopes every lookup by user id, so a receipt owned by
	// someone else resolves exactly like a missing one.
	repo.EXPECT().GetReceipt(gomock.Any(), int64(2), int64(10)).Return(nil, receipt.ErrNotFound)

	got, err := svc.Get(context.Background(), 2, 10)
	assert.ErrorIs(t, err, receipt.ErrNotFound)
	assert.Nil(t, got)
}

func TestService_Update_WholeRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	svc := receipt.NewService(repo)

	params := receipt.UpdateParams{
		Description:     "Corrected",
		Amount:          decimal.RequireFromString("19.90"),
		Date:            time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		CategoryID:      2,
		PaymentMethodID: 1,
	}

	repo.EXPECT().
		UpdateReceipt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rc *receipt.Receipt) error {
			assert.Equal(t, int64(10), rc.ID)
			assert.Equal(t, int64(1), rc.UserID)
			assert.Equal(t, "Corrected", rc.Description)
			assert.Nil(t, rc.VendorID)
			return nil
		})
	repo.EXPECT().
		GetReceipt(gomock.Any(), int64(1), int64(10)).
		Return(&receipt.Receipt{ID: 10, UserID: 1, Description: "Corrected"}, nil)

	got, err := svc.Update(context.Background(), 1, 10, params)
	require.NoError(t, err)
	assert.Equal(t, "Corrected", got.Description)
}

func TestService_ReplaceTags(t *testing.T) {
	type testCase struct {
		name      string
		tagIDs    []int64
		setupMock func(m *receipt.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			tagIDs: []int64{1, 2},
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().ReplaceTags(gomock.Any(), int64(1), int64(10), []int64{1, 2}).Return(nil)
			},
		},
		{
			name:   "EmptySetClearsTags",
			tagIDs: nil,
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().ReplaceTags(gomock.Any(), int64(1), int64(10), nil).Return(nil)
			},
		},
		{
			// Ownership is verified inside the store transaction, so a
			// receipt that vanished or belongs to someone else comes back
			// as not-found rather than a constraint error.
			name:   "NotOwned",
			tagIDs: []int64{1},
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().ReplaceTags(gomock.Any(), int64(1), int64(10), []int64{1}).Return(receipt.ErrNotFound)
			},
			wantErr: receipt.ErrNotFound,
		},
		{
			name:   "UnknownTag",
			tagIDs: []int64{99},
			setupMock: func(m *receipt.MockRepository) {
				m.EXPECT().ReplaceTags(gomock.Any(), int64(1), int64(10), []int64{99}).Return(receipt.ErrInvalidReference)
			},
			wantErr: receipt.ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := receipt.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := receipt.NewService(repo)
			err := svc.ReplaceTags(context.Background(), 1, 10, tt.tagIDs)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_AddTags_EmptySetIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository calls at all: an empty set has nothing to add.
	repo := receipt.NewMockRepository(ctrl)

	svc := receipt.NewService(repo)
	require.NoError(t, svc.AddTags(context.Background(), 1, 10, nil))
}

func TestService_ListTags_OrderedByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	repo.EXPECT().GetReceipt(gomock.Any(), int64(1), int64(10)).Return(&receipt.Receipt{ID: 10, UserID: 1}, nil)
	repo.EXPECT().ListTags(gomock.Any(), int64(10)).Return([]catalog.Tag{
		{ID: 2, Name: "food"},
		{ID: 1, Name: "work"},
	}, nil)

	svc := receipt.NewService(repo)
	tags, err := svc.ListTags(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "food", tags[0].Name)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := receipt.NewMockRepository(ctrl)
	repo.EXPECT().DeleteReceipt(gomock.Any(), int64(1), int64(10)).Return(nil)

	svc := receipt.NewService(repo)
	assert.NoError(t, svc.Delete(context.Background(), 1, 10))
}
