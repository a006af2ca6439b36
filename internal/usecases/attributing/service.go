package attributing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/infrastructure/repository"
	"github.com/vfg2006/attribution-api/internal/config"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
	"github.com/vfg2006/attribution-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// CustomLabel é o rótulo de comparações com períodos informados pelo usuário
const CustomLabel = "custom"

type Service struct {
	cfg              *config.Config
	recordRepository repository.AdRecordRepository
	generateID       func() (string, error)
}

func NewService(cfg *config.Config, recordRepository repository.AdRecordRepository) Attributor {
	return &Service{
		cfg:              cfg,
		recordRepository: recordRepository,
		generateID:       utils.GenerateID,
	}
}

func (s *Service) Compare(ctx context.Context, before, after domain.Period) (*domain.ComparisonReport, error) {
	if err := s.validatePeriods(before, after); err != nil {
		return nil, err
	}

	union := before.Union(after)
	records, err := s.loadRecords(ctx, union)
	if err != nil {
		return nil, err
	}

	report, err := BuildReport(CustomLabel, records, before, after)
	if err != nil {
		return nil, err
	}

	if err := s.assignID(report); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"report_id":        report.ID,
		"before":           before.String(),
		"after":            after.String(),
		"channels":         len(report.Channels),
		"unmatched":        len(report.UnmatchedChannels),
		"conversion_delta": report.Overall.ConversionDelta,
	}).Info("Comparação entre períodos concluída")

	return report, nil
}

func (s *Service) ComparePatterns(ctx context.Context, anchor time.Time, patterns []domain.Pattern) (*domain.PatternReports, error) {
	if len(patterns) == 0 {
		patterns = domain.AllPatterns
	}

	if anchor.IsZero() {
		latest, err := s.recordRepository.LatestDate(ctx)
		if err != nil {
			return nil, NewAttributionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
		}
		if latest == nil {
			return nil, NewAttributionError(ErrMissingData, apiErrors.ErrMissingData, "nenhum registro disponível")
		}
		anchor = *latest
	}
	anchor = domain.TruncateDay(anchor)

	type window struct {
		pattern domain.Pattern
		before  domain.Period
		after   domain.Period
	}

	windows := make([]window, 0, len(patterns))
	var union domain.Period
	for i, pattern := range patterns {
		before, after, err := pattern.Windows(anchor)
		if err != nil {
			return nil, NewAttributionError(domain.ErrInvalidPeriod, apiErrors.ErrInvalidPeriod, err.Error())
		}
		windows = append(windows, window{pattern: pattern, before: before, after: after})

		if i == 0 {
			union = before.Union(after)
		} else {
			union = union.Union(before).Union(after)
		}
	}

	records, err := s.loadRecords(ctx, union)
	if err != nil {
		return nil, err
	}

	reports := make([]*domain.ComparisonReport, len(windows))
	failures := make([]*domain.PatternFailure, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range windows {
		i, w := i, w
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			report, err := BuildReport(w.pattern.Label(), records, w.before, w.after)
			if err != nil {
				var missing *MissingDataError
				if errors.As(err, &missing) {
					failures[i] = &domain.PatternFailure{
						Pattern: w.pattern,
						Before:  w.before,
						After:   w.after,
						Reason:  missing.Error(),
					}
					return nil
				}
				return fmt.Errorf("padrão %s: %w", w.pattern, err)
			}

			if err := s.assignID(report); err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &domain.PatternReports{
		Anchor:  anchor,
		Reports: make([]*domain.ComparisonReport, 0, len(windows)),
		Skipped: make([]domain.PatternFailure, 0),
	}
	for i := range windows {
		if reports[i] != nil {
			result.Reports = append(result.Reports, reports[i])
		}
		if failures[i] != nil {
			result.Skipped = append(result.Skipped, *failures[i])
		}
	}

	logrus.WithFields(logrus.Fields{
		"anchor":   anchor.Format(time.DateOnly),
		"patterns": len(patterns),
		"reports":  len(result.Reports),
		"skipped":  len(result.Skipped),
	}).Info("Comparação por padrões concluída")

	return result, nil
}

func (s *Service) CompareRecords(records []domain.AdRecord, before, after domain.Period) (*domain.ComparisonReport, error) {
	if err := s.validatePeriods(before, after); err != nil {
		return nil, err
	}

	report, err := BuildReport(CustomLabel, records, before, after)
	if err != nil {
		return nil, err
	}

	if err := s.assignID(report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *Service) Snapshots(records []domain.AdRecord, key domain.GroupKey) []domain.MetricSnapshot {
	return Aggregate(records, key)
}

func (s *Service) validatePeriods(before, after domain.Period) error {
	if err := before.Validate(); err != nil {
		return err
	}
	if err := after.Validate(); err != nil {
		return err
	}

	maxDays := s.cfg.Attribution.MaxRangeDays
	if maxDays > 0 && before.Union(after).Days() > maxDays {
		return fmt.Errorf("%w: intervalo total maior que %d dias", domain.ErrInvalidPeriod, maxDays)
	}

	return nil
}

func (s *Service) loadRecords(ctx context.Context, period domain.Period) ([]domain.AdRecord, error) {
	records, err := s.recordRepository.ListByDateRange(ctx, period.Start, period.End)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"start_date": period.Start.Format(time.DateOnly),
			"end_date":   period.End.Format(time.DateOnly),
		}).Error("Erro ao buscar registros de anúncios no banco de dados")

		return nil, NewAttributionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"start_date": period.Start.Format(time.DateOnly),
		"end_date":   period.End.Format(time.DateOnly),
		"records":    len(records),
	}).Debug("Registros de anúncios carregados")

	return records, nil
}

func (s *Service) assignID(report *domain.ComparisonReport) error {
	id, err := s.generateID()
	if err != nil {
		return NewAttributionError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}
	report.ID = id
	return nil
}
