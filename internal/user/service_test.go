package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"kuittipankki/internal/user"
)

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						assert.NotEqual(t, "hunter22secret", u.PasswordHash)
						assert.NoError(t, bcrypt.CompareHashAndPassword(
							[]byte(u.PasswordHash), []byte("hunter22secret")))
						u.ID = 1
						return nil
					})
			},
		},
		{
			name: "DuplicateUsername",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(user.ErrUsernameTaken)
			},
			wantErr: user.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo)
			got, err := svc.Register(context.Background(), "matti", "hunter22secret")

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

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &user.User{ID: 1, Username: "matti", PasswordHash: string(hash)}

	type testCase struct {
		name      string
		password  string
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			password: "correct-horse",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByUsername(gomock.Any(), "matti").Return(stored, nil)
			},
		},
		{
			name:     "WrongPassword",
			password: "battery-staple",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByUsername(gomock.Any(), "matti").Return(stored, nil)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name:     "UnknownUserLooksTheSame",
			password: "correct-horse",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByUsername(gomock.Any(), "matti").Return(nil, user.ErrNotFound)
			},
			wantErr: user.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo)
			got, err := svc.Authenticate(context.Background(), "matti", tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), got.ID)
		})
	}
}
