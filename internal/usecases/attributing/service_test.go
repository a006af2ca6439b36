package attributing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/attribution-api/infrastructure/repository/mocks"
	"github.com/vfg2006/attribution-api/internal/config"
	"github.com/vfg2006/attribution-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(repo *mocks.MockAdRecordRepository) *Service {
	cfg := &config.Config{Attribution: config.Attribution{MaxRangeDays: 366}}
	s := NewService(cfg, repo).(*Service)
	s.generateID = func() (string, error) { return "abc123", nil }
	return s
}

// dailyRecords gera um registro por canal por dia no intervalo
func dailyRecords(start, end string, channels ...string) []domain.AdRecord {
	records := make([]domain.AdRecord, 0)
	for d := day(start); !d.After(day(end)); d = d.AddDate(0, 0, 1) {
		for i, channel := range channels {
			records = append(records, domain.AdRecord{
				Channel:     channel,
				Date:        d,
				Impressions: 1000,
				Clicks:      50,
				Cost:        units(int64(100 * (i + 1))),
				Conversions: int64(5 + d.Day()%3),
			})
		}
	}
	return records
}

func TestService_Compare(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAdRecordRepository(ctrl)
	service := newTestService(mockRepo)

	before := domain.Period{Start: day("2024-05-01"), End: day("2024-05-07")}
	after := domain.Period{Start: day("2024-05-08"), End: day("2024-05-14")}

	tests := []struct {
		name     string
		before   domain.Period
		after    domain.Period
		setup    func()
		validate func(t *testing.T, report *domain.ComparisonReport, err error)
	}{
		{
			name:   "carrega o intervalo total uma única vez",
			before: before,
			after:  after,
			setup: func() {
				mockRepo.EXPECT().
					ListByDateRange(gomock.Any(), day("2024-05-01"), day("2024-05-14")).
					Return(dailyRecords("2024-05-01", "2024-05-14", "google", "meta"), nil).
					Times(1)
			},
			validate: func(t *testing.T, report *domain.ComparisonReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, "abc123", report.ID)
				assert.Equal(t, CustomLabel, report.Label)
				assert.Len(t, report.Channels, 2)
				assert.Empty(t, report.UnmatchedChannels)
			},
		},
		{
			name:   "erro do repositório vira AttributionError",
			before: before,
			after:  after,
			setup: func() {
				mockRepo.EXPECT().
					ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, report *domain.ComparisonReport, err error) {
				assert.Nil(t, report)

				var attrErr *AttributionError
				require.ErrorAs(t, err, &attrErr)
				assert.Equal(t, "SRV_002", attrErr.Code)
				assert.ErrorIs(t, err, ErrDatabaseOperation)
			},
		},
		{
			name:   "período sem dados",
			before: before,
			after:  after,
			setup: func() {
				mockRepo.EXPECT().
					ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(dailyRecords("2024-05-08", "2024-05-14", "google"), nil)
			},
			validate: func(t *testing.T, report *domain.ComparisonReport, err error) {
				var missing *MissingDataError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, SideBefore, missing.Side)
			},
		},
		{
			name:   "período inválido não consulta o repositório",
			before: domain.Period{Start: day("2024-05-07"), End: day("2024-05-01")},
			after:  after,
			setup:  func() {},
			validate: func(t *testing.T, report *domain.ComparisonReport, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
			},
		},
		{
			name:   "intervalo acima do limite",
			before: domain.Period{Start: day("2022-01-01"), End: day("2022-01-07")},
			after:  after,
			setup:  func() {},
			validate: func(t *testing.T, report *domain.ComparisonReport, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			report, err := service.Compare(context.Background(), tt.before, tt.after)
			tt.validate(t, report, err)
		})
	}
}

func TestService_ComparePatterns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAdRecordRepository(ctrl)
	service := newTestService(mockRepo)

	anchor := day("2024-05-31")

	tests := []struct {
		name     string
		anchor   time.Time
		patterns []domain.Pattern
		setup    func()
		validate func(t *testing.T, result *domain.PatternReports, err error)
	}{
		{
			name:     "todos os padrões com dados completos",
			anchor:   anchor,
			patterns: nil,
			setup: func() {
				mockRepo.EXPECT().
					ListByDateRange(gomock.Any(), day("2024-05-06"), day("2024-05-31")).
					Return(dailyRecords("2024-05-06", "2024-05-31", "google", "meta"), nil)
			},
			validate: func(t *testing.T, result *domain.PatternReports, err error) {
				require.NoError(t, err)
				assert.Equal(t, anchor, result.Anchor)
				require.Len(t, result.Reports, 3)
				assert.Empty(t, result.Skipped)

				assert.Equal(t, domain.PatternDay.Label(), result.Reports[0].Label)
				assert.Equal(t, domain.PatternWeek.Label(), result.Reports[1].Label)
				assert.Equal(t, domain.PatternTwoWeek.Label(), result.Reports[2].Label)
				for _, report := range result.Reports {
					assert.Equal(t, "abc123", report.ID)
				}
			},
		},
		{
			name:     "padrão sem dados é listado em skipped",
			anchor:   anchor,
			patterns: []domain.Pattern{domain.PatternDay, domain.PatternTwoWeek},
			setup: func() {
				mockRepo.EXPECT().
					ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(dailyRecords("2024-05-19", "2024-05-31", "google"), nil)
			},
			validate: func(t *testing.T, result *domain.PatternReports, err error) {
				require.NoError(t, err)
				require.Len(t, result.Reports, 1)
				assert.Equal(t, domain.PatternDay.Label(), result.Reports[0].Label)

				require.Len(t, result.Skipped, 1)
				assert.Equal(t, domain.PatternTwoWeek, result.Skipped[0].Pattern)
				assert.Contains(t, result.Skipped[0].Reason, "before")
			},
		},
		{
			name:     "âncora zero usa a data mais recente",
			anchor:   time.Time{},
			patterns: []domain.Pattern{domain.PatternDay},
			setup: func() {
				latest := day("2024-05-31")
				mockRepo.EXPECT().LatestDate(gomock.Any()).Return(&latest, nil)
				mockRepo.EXPECT().
					ListByDateRange(gomock.Any(), day("2024-05-30"), day("2024-05-31")).
					Return(dailyRecords("2024-05-30", "2024-05-31", "google"), nil)
			},
			validate: func(t *testing.T, result *domain.PatternReports, err error) {
				require.NoError(t, err)
				assert.Equal(t, day("2024-05-31"), result.Anchor)
				assert.Len(t, result.Reports, 1)
			},
		},
		{
			name:     "repositório sem registros",
			anchor:   time.Time{},
			patterns: nil,
			setup: func() {
				mockRepo.EXPECT().LatestDate(gomock.Any()).Return(nil, nil)
			},
			validate: func(t *testing.T, result *domain.PatternReports, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrMissingData)
				assert.Equal(t, "DATA_001", ErrorCode(err))
			},
		},
		{
			name:     "erro ao buscar registros",
			anchor:   anchor,
			patterns: nil,
			setup: func() {
				mockRepo.EXPECT().
					ListByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, result *domain.PatternReports, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrDatabaseOperation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			result, err := service.ComparePatterns(context.Background(), tt.anchor, tt.patterns)
			tt.validate(t, result, err)
		})
	}
}

func TestService_CompareRecords(t *testing.T) {
	service := newTestService(nil)

	records := []domain.AdRecord{
		{Channel: "A", Date: day("2024-05-01"), Cost: units(1000), Conversions: 100},
		{Channel: "A", Date: day("2024-05-02"), Cost: units(1800), Conversions: 150},
	}

	report, err := service.CompareRecords(records, domain.SingleDay(day("2024-05-01")), domain.SingleDay(day("2024-05-02")))
	require.NoError(t, err)
	assert.Equal(t, "abc123", report.ID)
	assert.Equal(t, int64(50), report.Overall.ConversionDelta)
	assert.InDelta(t, 20.0, report.Overall.CPARatioPct.Value(), 1e-9)

	generateErr := errors.New("sem entropia")
	service.generateID = func() (string, error) { return "", generateErr }
	_, err = service.CompareRecords(records, domain.SingleDay(day("2024-05-01")), domain.SingleDay(day("2024-05-02")))
	assert.ErrorIs(t, err, ErrGenerateID)
}

func TestService_Snapshots(t *testing.T) {
	service := newTestService(nil)

	records := dailyRecords("2024-05-06", "2024-05-19", "google")

	snapshots := service.Snapshots(records, domain.GroupByChannelWeek)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "2024-05-06/2024-05-12", snapshots[0].Bucket)
	assert.Equal(t, "2024-05-13/2024-05-19", snapshots[1].Bucket)
}
