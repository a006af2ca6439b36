package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/attribution-api/infrastructure/database/postgres"
	"github.com/vfg2006/attribution-api/internal/domain"
)

const (
	adRecordsTable = "ad_daily_records r"
)

//go:generate mockgen -source=ad_record.go -destination=mocks/mock_ad_record.go -package=mocks

// AdRecordRepository é a fonte somente leitura dos registros diários por canal
type AdRecordRepository interface {
	ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]domain.AdRecord, error)
	LatestDate(ctx context.Context) (*time.Time, error)
}

type adRecordRepository struct {
	conn postgres.Queryer
}

func NewAdRecordRepository(conn postgres.Queryer) AdRecordRepository {
	return &adRecordRepository{
		conn: conn,
	}
}

func (r *adRecordRepository) ListByDateRange(ctx context.Context, startDate, endDate time.Time) ([]domain.AdRecord, error) {
	query, args, err := buildListByDateRangeQuery(startDate, endDate)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	records := make([]domain.AdRecord, 0)
	if err := r.conn.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, wrapQueryError(err)
	}

	return records, nil
}

func (r *adRecordRepository) LatestDate(ctx context.Context) (*time.Time, error) {
	query, args, err := squirrel.
		Select("MAX(r.date)").
		From(adRecordsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	var latest sql.NullTime
	if err := r.conn.GetContext(ctx, &latest, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapQueryError(err)
	}

	if !latest.Valid {
		return nil, nil
	}

	date := domain.TruncateDay(latest.Time)
	return &date, nil
}

func buildListByDateRangeQuery(startDate, endDate time.Time) (string, []interface{}, error) {
	return squirrel.
		Select("r.channel, r.date, r.impressions, r.clicks, r.cost_micros, r.conversions").
		From(adRecordsTable).
		Where(squirrel.GtOrEq{"r.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"r.date": endDate.Format(time.DateOnly)}).
		OrderBy("r.date ASC", "r.channel ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func wrapQueryError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return errors.Wrapf(pqErr, "erro no banco de dados (código: %s)", pqErr.Code)
	}
	return errors.Wrap(err, "erro ao executar a query")
}
