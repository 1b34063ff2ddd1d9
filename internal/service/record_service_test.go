package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rahul-gound/fera-naturehelp/internal/catalog"
	apperrors "github.com/rahul-gound/fera-naturehelp/internal/errors"
	"github.com/rahul-gound/fera-naturehelp/internal/events"
	"github.com/rahul-gound/fera-naturehelp/internal/model"
	"github.com/rahul-gound/fera-naturehelp/internal/repository"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newTestRecordService(t *testing.T, store *MockRecordStore, emitter EventEmitter) *recordService {
	t.Helper()
	c, err := catalog.New()
	require.NoError(t, err)
	s := NewRecordService(store, c, nil, emitter, zerolog.Nop()).(*recordService)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestRecordService_RecordContribution(t *testing.T) {
	userID := uuid.New()
	existing := &model.Profile{ID: userID, TreesPlanted: 2, CO2Absorbed: 55, MoneyDonated: decimal.Zero}

	tests := []struct {
		name          string
		plantID       int
		location      string
		setupMock     func(*MockRecordStore)
		expectedError error
		wantLocation  string
	}{
		{
			name:     "successful contribution",
			plantID:  3,
			location: "  Pune  ",
			setupMock: func(m *MockRecordStore) {
				m.On("WithTransaction", mock.Anything).Return(nil)
				m.On("GetProfileForUpdate", mock.Anything, userID).Return(existing, nil)
				m.On("AppendContribution", mock.Anything, mock.AnythingOfType("*model.Contribution")).Return(nil)
				m.On("PutProfile", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
					return p.TreesPlanted == 3 && p.CO2Absorbed == 100
				})).Return(nil)
			},
			wantLocation: "Pune",
		},
		{
			name:     "empty location defaults",
			plantID:  1,
			location: "",
			setupMock: func(m *MockRecordStore) {
				m.On("WithTransaction", mock.Anything).Return(nil)
				m.On("GetProfileForUpdate", mock.Anything, userID).Return(existing, nil)
				m.On("AppendContribution", mock.Anything, mock.AnythingOfType("*model.Contribution")).Return(nil)
				m.On("PutProfile", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil)
			},
			wantLocation: model.DefaultLocation,
		},
		{
			name:          "unknown plant",
			plantID:       99,
			setupMock:     func(m *MockRecordStore) {},
			expectedError: apperrors.ErrPlantNotFound,
		},
		{
			name:    "missing profile fails loudly",
			plantID: 1,
			setupMock: func(m *MockRecordStore) {
				m.On("WithTransaction", mock.Anything).Return(nil)
				m.On("GetProfileForUpdate", mock.Anything, userID).Return(nil, apperrors.ErrProfileNotFound)
			},
			expectedError: apperrors.ErrMissingProfile,
		},
		{
			name:    "store failure propagates",
			plantID: 1,
			setupMock: func(m *MockRecordStore) {
				m.On("WithTransaction", mock.Anything).Return(nil)
				m.On("GetProfileForUpdate", mock.Anything, userID).Return(existing, nil)
				m.On("AppendContribution", mock.Anything, mock.AnythingOfType("*model.Contribution")).Return(errors.New("disk full"))
			},
			expectedError: errors.New("disk full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockRecordStore)
			tt.setupMock(mockStore)
			emitter := &recordingEmitter{}
			service := newTestRecordService(t, mockStore, emitter)

			contribution, profile, err := service.RecordContribution(context.Background(), userID, tt.plantID, tt.location)

			if tt.expectedError != nil {
				require.Error(t, err)
				if errors.Is(tt.expectedError, apperrors.ErrPlantNotFound) || errors.Is(tt.expectedError, apperrors.ErrMissingProfile) {
					assert.ErrorIs(t, err, tt.expectedError)
				} else {
					assert.EqualError(t, err, tt.expectedError.Error())
				}
				assert.Nil(t, contribution)
				assert.Nil(t, profile)
				assert.Empty(t, emitter.events)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantLocation, contribution.Location)
				assert.Equal(t, fixedNow, contribution.CreatedAt)
				assert.Equal(t, existing.TreesPlanted+1, profile.TreesPlanted)
				assert.Equal(t, 2, existing.TreesPlanted, "input profile must not be mutated")
				require.Len(t, emitter.events, 1)
				assert.Equal(t, events.TypeContributionRecorded, emitter.events[0].EventType)
			}

			mockStore.AssertExpectations(t)
		})
	}
}

func TestRecordService_RecordContribution_SnapshotsCatalog(t *testing.T) {
	userID := uuid.New()
	mockStore := new(MockRecordStore)
	mockStore.On("WithTransaction", mock.Anything).Return(nil)
	mockStore.On("GetProfileForUpdate", mock.Anything, userID).Return(&model.Profile{ID: userID}, nil)
	mockStore.On("AppendContribution", mock.Anything, mock.MatchedBy(func(c *model.Contribution) bool {
		return c.PlantID == 10 && c.PlantName == "Tulsi Plant" && c.CO2PerYear == 5
	})).Return(nil)
	mockStore.On("PutProfile", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil)

	service := newTestRecordService(t, mockStore, nil)
	_, profile, err := service.RecordContribution(context.Background(), userID, 10, "Delhi")
	require.NoError(t, err)
	assert.Equal(t, 5.0, profile.CO2Absorbed)
	mockStore.AssertExpectations(t)
}

func TestRecordService_RecordDonation(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		amount        decimal.Decimal
		setupMock     func(*MockRecordStore)
		expectedError error
	}{
		{
			name:   "successful donation",
			amount: decimal.RequireFromString("12.50"),
			setupMock: func(m *MockRecordStore) {
				m.On("WithTransaction", mock.Anything).Return(nil)
				m.On("GetProfileForUpdate", mock.Anything, userID).Return(&model.Profile{ID: userID, MoneyDonated: decimal.NewFromInt(40)}, nil)
				m.On("AppendDonation", mock.Anything, mock.AnythingOfType("*model.Donation")).Return(nil)
				m.On("PutProfile", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
					return p.MoneyDonated.Equal(decimal.RequireFromString("52.5"))
				})).Return(nil)
			},
		},
		{
			name:          "zero amount",
			amount:        decimal.Zero,
			setupMock:     func(m *MockRecordStore) {},
			expectedError: apperrors.ErrInvalidAmount,
		},
		{
			name:          "negative amount",
			amount:        decimal.NewFromInt(-5),
			setupMock:     func(m *MockRecordStore) {},
			expectedError: apperrors.ErrInvalidAmount,
		},
		{
			name:          "fractional cents",
			amount:        decimal.RequireFromString("10.005"),
			setupMock:     func(m *MockRecordStore) {},
			expectedError: apperrors.ErrInvalidAmount,
		},
		{
			name:          "above maximum",
			amount:        decimal.RequireFromString("1e30"),
			setupMock:     func(m *MockRecordStore) {},
			expectedError: apperrors.ErrInvalidAmount,
		},
		{
			name:   "trailing zeros accepted",
			amount: decimal.RequireFromString("7.500"),
			setupMock: func(m *MockRecordStore) {
				m.On("WithTransaction", mock.Anything).Return(nil)
				m.On("GetProfileForUpdate", mock.Anything, userID).Return(&model.Profile{ID: userID}, nil)
				m.On("AppendDonation", mock.Anything, mock.MatchedBy(func(d *model.Donation) bool {
					return d.Amount.String() == "7.5"
				})).Return(nil)
				m.On("PutProfile", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
					return p.MoneyDonated.Equal(decimal.RequireFromString("7.5"))
				})).Return(nil)
			},
		},
		{
			name:   "put failure rolls back",
			amount: decimal.NewFromInt(10),
			setupMock: func(m *MockRecordStore) {
				m.On("WithTransaction", mock.Anything).Return(nil)
				m.On("GetProfileForUpdate", mock.Anything, userID).Return(&model.Profile{ID: userID}, nil)
				m.On("AppendDonation", mock.Anything, mock.AnythingOfType("*model.Donation")).Return(nil)
				m.On("PutProfile", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(assert.AnError)
			},
			expectedError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockRecordStore)
			tt.setupMock(mockStore)
			emitter := &recordingEmitter{}
			service := newTestRecordService(t, mockStore, emitter)

			donation, profile, err := service.RecordDonation(context.Background(), userID, tt.amount)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, donation)
				assert.Nil(t, profile)
				assert.Empty(t, emitter.events)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.amount.Equal(donation.Amount))
				require.Len(t, emitter.events, 1)
				assert.Equal(t, events.TypeDonationRecorded, emitter.events[0].EventType)
			}

			mockStore.AssertExpectations(t)
		})
	}
}

// serialStore is a single-profile RecordStore that records how many
// transactions overlap.
type serialStore struct {
	repository.RecordStore
	mu       sync.Mutex
	profile  model.Profile
	inFlight int
	maxSeen  int
}

func (s *serialStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, store repository.RecordStore) error) error {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > s.maxSeen {
		s.maxSeen = s.inFlight
	}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()
	return fn(ctx, s)
}

func (s *serialStore) GetProfileForUpdate(context.Context, uuid.UUID) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.profile
	return &cp, nil
}

func (s *serialStore) AppendDonation(context.Context, *model.Donation) error {
	time.Sleep(time.Millisecond)
	return nil
}

func (s *serialStore) PutProfile(_ context.Context, p *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = *p
	return nil
}

func TestRecordService_SerializesWritesPerUser(t *testing.T) {
	userID := uuid.New()
	store := &serialStore{profile: model.Profile{ID: userID, MoneyDonated: decimal.Zero}}

	c, err := catalog.New()
	require.NoError(t, err)
	service := NewRecordService(store, c, nil, nil, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := service.RecordDonation(context.Background(), userID, decimal.NewFromInt(10))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.maxSeen)
	assert.True(t, decimal.NewFromInt(200).Equal(store.profile.MoneyDonated))
}

func TestPreviewDonation(t *testing.T) {
	preview, err := PreviewDonation(decimal.NewFromInt(25))
	require.NoError(t, err)
	assert.Equal(t, 2, preview.Trees)
	assert.Equal(t, 50.0, preview.CO2)
	assert.Equal(t, 146.0, preview.Oxygen)

	preview, err = PreviewDonation(decimal.NewFromInt(9))
	require.NoError(t, err)
	assert.Equal(t, 0, preview.Trees)

	preview, err = PreviewDonation(MaxDonationAmount)
	require.NoError(t, err)
	assert.Equal(t, 100_000_000, preview.Trees)
	assert.Equal(t, 2.5e9, preview.CO2)

	for _, bad := range []string{"0", "-1", "0.001", "1000000000.01", "1e30"} {
		_, err = PreviewDonation(decimal.RequireFromString(bad))
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, "amount=%s", bad)
	}
}
