package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/attribution-api/internal/config"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing/mocks"
	"go.uber.org/mock/gomock"
)

func newTestConfig(patterns ...string) *config.Config {
	return &config.Config{
		DailyComparison: config.DailyComparison{
			CronSchedule: "0 7 * * *",
			Patterns:     patterns,
			Enabled:      false,
		},
	}
}

func TestNewDailyComparisonService(t *testing.T) {
	service, err := NewDailyComparisonService(nil, newTestConfig())
	require.NoError(t, err)
	assert.Equal(t, domain.AllPatterns, service.config.Patterns)

	service, err = NewDailyComparisonService(nil, newTestConfig("week", "day"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Pattern{domain.PatternWeek, domain.PatternDay}, service.config.Patterns)

	_, err = NewDailyComparisonService(nil, newTestConfig("month"))
	assert.Error(t, err)
}

func TestDailyComparisonService_runComparison(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAttributor := mocks.NewMockAttributor(ctrl)

	anchor := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	reports := &domain.PatternReports{
		Anchor:  anchor,
		Reports: []*domain.ComparisonReport{{ID: "r1", Label: domain.PatternDay.Label()}},
		Skipped: []domain.PatternFailure{{Pattern: domain.PatternTwoWeek, Reason: "no data"}},
	}

	tests := []struct {
		name     string
		setup    func(service *DailyComparisonService)
		validate func(t *testing.T, service *DailyComparisonService)
	}{
		{
			name: "guarda o último resultado",
			setup: func(service *DailyComparisonService) {
				mockAttributor.EXPECT().
					ComparePatterns(gomock.Any(), time.Time{}, domain.AllPatterns).
					Return(reports, nil)
			},
			validate: func(t *testing.T, service *DailyComparisonService) {
				assert.Equal(t, reports, service.LastReports())

				status := service.GetStatus()
				assert.Equal(t, false, status["sync_running"])
				assert.Equal(t, "", status["last_error"])
				assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
			},
		},
		{
			name: "erro mantém o resultado anterior",
			setup: func(service *DailyComparisonService) {
				service.lastReports = reports
				mockAttributor.EXPECT().
					ComparePatterns(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database down"))
			},
			validate: func(t *testing.T, service *DailyComparisonService) {
				assert.Equal(t, reports, service.LastReports())
				assert.Equal(t, "database down", service.GetStatus()["last_error"])
			},
		},
		{
			name: "execução sobreposta é ignorada",
			setup: func(service *DailyComparisonService) {
				service.syncRunning = true
			},
			validate: func(t *testing.T, service *DailyComparisonService) {
				assert.Nil(t, service.LastReports())
				assert.False(t, service.TriggerManualSync())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewDailyComparisonService(mockAttributor, newTestConfig())
			require.NoError(t, err)

			tt.setup(service)
			service.runComparison()
			tt.validate(t, service)
		})
	}
}

func TestDailyComparisonService_TriggerManualSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAttributor := mocks.NewMockAttributor(ctrl)

	done := make(chan struct{})
	mockAttributor.EXPECT().
		ComparePatterns(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, anchor time.Time, patterns []domain.Pattern) (*domain.PatternReports, error) {
			defer close(done)
			return &domain.PatternReports{}, nil
		})

	service, err := NewDailyComparisonService(mockAttributor, newTestConfig())
	require.NoError(t, err)

	assert.True(t, service.TriggerManualSync())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("comparação manual não executada")
	}

	assert.Eventually(t, func() bool {
		return service.LastReports() != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDailyComparisonService_ConcurrentTriggers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAttributor := mocks.NewMockAttributor(ctrl)

	release := make(chan struct{})
	mockAttributor.EXPECT().
		ComparePatterns(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, anchor time.Time, patterns []domain.Pattern) (*domain.PatternReports, error) {
			<-release
			return &domain.PatternReports{}, nil
		}).
		Times(1)

	service, err := NewDailyComparisonService(mockAttributor, newTestConfig())
	require.NoError(t, err)

	const callers = 20
	var accepted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if service.TriggerManualSync() {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Equal(t, true, service.GetStatus()["sync_running"])

	close(release)
	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDailyComparisonService_StartDisabled(t *testing.T) {
	service, err := NewDailyComparisonService(nil, newTestConfig())
	require.NoError(t, err)

	assert.NoError(t, service.Start(context.Background()))
	assert.False(t, service.scheduler.IsRunning())
}
