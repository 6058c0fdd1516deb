package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kuittipankki/internal/catalog"
)

func TestService_CreateVendor_ReturnsExistingIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	svc := catalog.NewService(repo)

	// The store resolves a duplicate name to the row that already exists
	// instead of failing; the service hands that identity back.
	repo.EXPECT().
		UpsertVendor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v *catalog.Vendor) error {
			v.ID = 42
			return nil
		}).
		Times(2)

	first, err := svc.CreateVendor(context.Background(), "K-Market", "", "")
	require.NoError(t, err)

	second, err := svc.CreateVendor(context.Background(), "K-Market", "", "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestService_CreateCategory(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *catalog.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *catalog.Category) error {
						c.ID = 1
						return nil
					})
			},
		},
		{
			name: "DuplicateName",
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					Return(catalog.ErrConflict)
			},
			wantErr: catalog.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := catalog.NewService(repo)
			got, err := svc.CreateCategory(context.Background(), "Groceries", "")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotZero(t, got.ID)
		})
	}
}

func TestService_DeleteCategory_InUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().DeleteCategory(gomock.Any(), int64(7)).Return(catalog.ErrInUse)

	svc := catalog.NewService(repo)
	err := svc.DeleteCategory(context.Background(), 7)

	assert.ErrorIs(t, err, catalog.ErrInUse)
}
