package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/attribution-api/internal/domain"
)

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuildListByDateRangeQuery(t *testing.T) {
	query, args, err := buildListByDateRangeQuery(date("2024-05-01"), date("2024-05-14"))
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT r.channel, r.date, r.impressions, r.clicks, r.cost_micros, r.conversions "+
			"FROM ad_daily_records r WHERE r.date >= $1 AND r.date <= $2 ORDER BY r.date ASC, r.channel ASC",
		query)
	assert.Equal(t, []interface{}{"2024-05-01", "2024-05-14"}, args)
}

func TestWrapQueryError(t *testing.T) {
	pqErr := &pq.Error{Code: "42P01", Message: "relation does not exist"}

	err := wrapQueryError(pqErr)
	assert.Contains(t, err.Error(), "42P01")

	var target *pq.Error
	assert.True(t, errors.As(err, &target))

	err = wrapQueryError(errors.New("connection reset"))
	assert.Contains(t, err.Error(), "erro ao executar a query")
}

func TestMemoryAdRecordRepository(t *testing.T) {
	records := []domain.AdRecord{
		{Channel: "Search", Date: date("2024-05-03"), Conversions: 3},
		{Channel: "Search", Date: date("2024-05-01"), Conversions: 1},
		{Channel: "Display", Date: date("2024-05-02"), Conversions: 2},
	}
	repo := NewMemoryAdRecordRepository(records)
	ctx := context.Background()

	t.Run("filtra o intervalo fechado", func(t *testing.T) {
		got, err := repo.ListByDateRange(ctx, date("2024-05-01"), date("2024-05-02"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].Conversions)
		assert.Equal(t, int64(2), got[1].Conversions)
	})

	t.Run("data mais recente", func(t *testing.T) {
		latest, err := repo.LatestDate(ctx)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.True(t, date("2024-05-03").Equal(*latest))
	})

	t.Run("sem registros", func(t *testing.T) {
		latest, err := NewMemoryAdRecordRepository(nil).LatestDate(ctx)
		require.NoError(t, err)
		assert.Nil(t, latest)
	})

	t.Run("contexto cancelado", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.ListByDateRange(cancelled, date("2024-05-01"), date("2024-05-02"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
