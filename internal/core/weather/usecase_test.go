package weather

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/mocks"
	"weatherdash.app/pkg/errors"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetCurrentWeather(ctx context.Context, lat, lon float64, city string) (*CurrentWeather, error) {
	args := m.Called(ctx, lat, lon, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CurrentWeather), args.Error(1)
}

func (m *mockClient) GetHourlyForecast(ctx context.Context, lat, lon float64, city string) ([]HourlyForecast, error) {
	args := m.Called(ctx, lat, lon, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]HourlyForecast), args.Error(1)
}

func (m *mockClient) GetDailyForecast(ctx context.Context, lat, lon float64, city string) ([]DailyForecast, error) {
	args := m.Called(ctx, lat, lon, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DailyForecast), args.Error(1)
}

func (m *mockClient) GetAlerts(ctx context.Context, lat, lon float64, city string) ([]Alert, error) {
	args := m.Called(ctx, lat, lon, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Alert), args.Error(1)
}

func newTestLogger(t *testing.T) *mocks.Logger {
	logger := mocks.NewLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return logger
}

func newUseCase(t *testing.T, client Client, store *Store, discardStale bool) *UseCase {
	uc, err := NewUseCase(UseCaseDependencies{
		Client:       client,
		Store:        store,
		Logger:       newTestLogger(t),
		DiscardStale: discardStale,
	})
	require.NoError(t, err)
	return uc
}

func TestNewUseCase_RequiresDependencies(t *testing.T) {
	_, err := NewUseCase(UseCaseDependencies{Store: NewStore()})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestUseCase_Refresh_Success(t *testing.T) {
	client := &mockClient{}
	beijing := city.Beijing()
	current := validCurrent()
	hourly := []HourlyForecast{{City: "Beijing", Time: "2024-01-01T10:00:00"}}
	daily := []DailyForecast{{City: "Beijing", Date: "2024-01-01"}}
	alerts := []Alert{{City: "Beijing", Event: "Wind"}}

	client.On("GetCurrentWeather", mock.Anything, beijing.Lat, beijing.Lon, "Beijing").Return(&current, nil)
	client.On("GetHourlyForecast", mock.Anything, beijing.Lat, beijing.Lon, "Beijing").Return(hourly, nil)
	client.On("GetDailyForecast", mock.Anything, beijing.Lat, beijing.Lon, "Beijing").Return(daily, nil)
	client.On("GetAlerts", mock.Anything, beijing.Lat, beijing.Lon, "Beijing").Return(alerts, nil)

	store := NewStore()
	var sawLoading bool
	store.Subscribe(func(s State) {
		if s.Loading {
			sawLoading = true
		}
	})

	err := newUseCase(t, client, store, false).Refresh(context.Background(), beijing)
	require.NoError(t, err)

	state := store.State()
	require.NotNil(t, state.CurrentWeather)
	assert.Equal(t, 20.5, state.CurrentWeather.Temp)
	assert.Equal(t, hourly, state.HourlyForecast)
	assert.Equal(t, daily, state.DailyForecast)
	assert.Equal(t, alerts, state.Alerts)
	assert.False(t, state.Loading)
	assert.False(t, state.HasError())
	assert.True(t, sawLoading)
	client.AssertExpectations(t)
}

func TestUseCase_Refresh_PartialFailureRecordsError(t *testing.T) {
	client := &mockClient{}
	alerts := []Alert{{City: "Atlantis", Event: "Flood"}}

	client.On("GetCurrentWeather", mock.Anything, mock.Anything, mock.Anything, "Atlantis").
		Return(nil, errors.NewApplicationError(1, "city not found"))
	client.On("GetHourlyForecast", mock.Anything, mock.Anything, mock.Anything, "Atlantis").Return([]HourlyForecast{}, nil)
	client.On("GetDailyForecast", mock.Anything, mock.Anything, mock.Anything, "Atlantis").Return([]DailyForecast{}, nil)
	client.On("GetAlerts", mock.Anything, mock.Anything, mock.Anything, "Atlantis").Return(alerts, nil)

	store := NewStore()
	err := newUseCase(t, client, store, false).Refresh(context.Background(), city.City{Name: "Atlantis", Country: "XX"})

	require.Error(t, err)
	assert.True(t, errors.IsApplicationError(err))
	state := store.State()
	assert.Equal(t, "city not found", state.Error)
	assert.False(t, state.Loading)
	assert.Nil(t, state.CurrentWeather)
	assert.Equal(t, alerts, state.Alerts)
}

func TestUseCase_Refresh_ClearsPreviousError(t *testing.T) {
	client := &mockClient{}
	current := validCurrent()
	client.On("GetCurrentWeather", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&current, nil)

	store := NewStore()
	store.SetError("Network error, please check your connection")

	err := newUseCase(t, client, store, false).RefreshCurrent(context.Background(), city.Beijing())
	require.NoError(t, err)
	assert.False(t, store.State().HasError())
}

// blockingClient releases the current weather of each city only when told to.
type blockingClient struct {
	mockClient
	mu      sync.Mutex
	release map[string]chan struct{}
}

func (b *blockingClient) gate(city string) chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.release == nil {
		b.release = make(map[string]chan struct{})
	}
	if _, ok := b.release[city]; !ok {
		b.release[city] = make(chan struct{})
	}
	return b.release[city]
}

func (b *blockingClient) GetCurrentWeather(ctx context.Context, lat, lon float64, name string) (*CurrentWeather, error) {
	<-b.gate(name)
	w := validCurrent()
	w.City = name
	return &w, nil
}

func TestUseCase_RefreshCurrent_StaleResult(t *testing.T) {
	tests := []struct {
		name         string
		discardStale bool
		wantCity     string
	}{
		{name: "LastToResolveWinsByDefault", discardStale: false, wantCity: "Beijing"},
		{name: "DiscardStaleKeepsLatestIssued", discardStale: true, wantCity: "Tokyo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &blockingClient{}
			store := NewStore()
			uc := newUseCase(t, client, store, tt.discardStale)
			tokyo := city.City{Name: "Tokyo", Country: "JP", Lat: 35.6762, Lon: 139.6503}

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = uc.RefreshCurrent(context.Background(), city.Beijing())
			}()
			// wait for the first refresh to be in flight before issuing the second
			assert.Eventually(t, func() bool { return store.State().Loading }, timeout, tick)

			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = uc.RefreshCurrent(context.Background(), tokyo)
			}()

			close(client.gate("Tokyo"))
			assert.Eventually(t, func() bool {
				cw := store.State().CurrentWeather
				return cw != nil && cw.City == "Tokyo"
			}, timeout, tick)
			close(client.gate("Beijing"))
			wg.Wait()

			state := store.State()
			require.NotNil(t, state.CurrentWeather)
			assert.Equal(t, tt.wantCity, state.CurrentWeather.City)
			assert.False(t, state.Loading)
		})
	}
}

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)
