package seed

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, email, password, name string) (*model.Profile, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, string, *model.Profile, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), nil, args.Error(3)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *mockAuthService) RevokeAccessToken(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *mockAuthService) IsAccessTokenRevoked(ctx context.Context, tokenID string) bool {
	return m.Called(ctx, tokenID).Bool(0)
}

type mockRecordService struct {
	mock.Mock
}

func (m *mockRecordService) RecordContribution(ctx context.Context, userID uuid.UUID, plantID int, location string) (*model.Contribution, *model.Profile, error) {
	args := m.Called(ctx, userID, plantID, location)
	return nil, nil, args.Error(2)
}

func (m *mockRecordService) ListContributions(ctx context.Context, userID uuid.UUID) ([]model.Contribution, error) {
	args := m.Called(ctx, userID)
	return nil, args.Error(1)
}

func (m *mockRecordService) RecordDonation(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*model.Donation, *model.Profile, error) {
	args := m.Called(ctx, userID, amount)
	return nil, nil, args.Error(2)
}

func (m *mockRecordService) ListDonations(ctx context.Context, userID uuid.UUID) ([]model.Donation, error) {
	args := m.Called(ctx, userID)
	return nil, args.Error(1)
}

func TestSeeder_Seed(t *testing.T) {
	users := []DemoUser{
		{Name: "Sarah Green", Email: "sarah@example.com", Trees: 3},
		{Name: "Michael Forest", Email: "michael@example.com", Trees: 2},
	}
	sarah := &model.Profile{ID: uuid.New(), Email: "sarah@example.com"}

	authSvc := new(mockAuthService)
	authSvc.On("Register", mock.Anything, "sarah@example.com", "secret1", "Sarah Green").Return(sarah, nil)
	authSvc.On("Register", mock.Anything, "michael@example.com", "secret1", "Michael Forest").Return(nil, apperrors.ErrUserAlreadyExists)

	records := new(mockRecordService)
	records.On("RecordContribution", mock.Anything, sarah.ID, DemoPlantID, DemoLocation).Return(nil, nil, nil).Times(3)

	res, err := NewSeeder(authSvc, records, zerolog.Nop()).Seed(context.Background(), users, "secret1")

	require.NoError(t, err)
	assert.Equal(t, Result{Created: 1, Skipped: 1, Trees: 3}, res)
	authSvc.AssertExpectations(t)
	records.AssertExpectations(t)
}

func TestSeeder_SeedStopsOnFailure(t *testing.T) {
	profile := &model.Profile{ID: uuid.New()}

	authSvc := new(mockAuthService)
	authSvc.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(profile, nil)

	records := new(mockRecordService)
	records.On("RecordContribution", mock.Anything, profile.ID, DemoPlantID, DemoLocation).Return(nil, nil, assert.AnError).Once()

	_, err := NewSeeder(authSvc, records, zerolog.Nop()).Seed(context.Background(), DemoUsers[:2], "secret1")

	assert.ErrorIs(t, err, assert.AnError)
	authSvc.AssertNumberOfCalls(t, "Register", 1)
}

func TestDemoUsers_MatchDemoLeaderboard(t *testing.T) {
	require.Len(t, DemoUsers, 10)
	assert.Equal(t, "Sarah Green", DemoUsers[0].Name)
	assert.Equal(t, 45, DemoUsers[0].Trees)

	emails := map[string]bool{}
	for _, u := range DemoUsers {
		assert.False(t, emails[u.Email], "duplicate email %s", u.Email)
		emails[u.Email] = true
	}
}
