package repository

import (
	"context"
	"sort"
	"time"

	"github.com/vfg2006/attribution-api/internal/domain"
)

type memoryAdRecordRepository struct {
	records []domain.AdRecord
}

// NewMemoryAdRecordRepository serve registros já carregados (ex.: arquivo informado na CLI)
func NewMemoryAdRecordRepository(records []domain.AdRecord) AdRecordRepository {
	sorted := make([]domain.AdRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	return &memoryAdRecordRepository{records: sorted}
}

func (r *memoryAdRecordRepository) ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]domain.AdRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	period := domain.Period{Start: domain.TruncateDay(startDate), End: domain.TruncateDay(endDate)}

	records := make([]domain.AdRecord, 0)
	for _, record := range r.records {
		if period.Contains(record.Date) {
			records = append(records, record)
		}
	}

	return records, nil
}

func (r *memoryAdRecordRepository) LatestDate(ctx context.Context) (*time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(r.records) == 0 {
		return nil, nil
	}

	latest := domain.TruncateDay(r.records[len(r.records)-1].Date)
	return &latest, nil
}
