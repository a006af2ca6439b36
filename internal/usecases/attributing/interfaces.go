package attributing

import (
	"context"
	"time"

	"github.com/vfg2006/attribution-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_attributor.go -package=mocks

// Attributor define as operações de comparação entre períodos
type Attributor interface {
	// Compare compara dois períodos usando os registros do repositório
	Compare(ctx context.Context, before, after domain.Period) (*domain.ComparisonReport, error)

	// ComparePatterns executa os padrões informados para a data âncora.
	// Âncora zero usa a data mais recente disponível.
	ComparePatterns(ctx context.Context, anchor time.Time, patterns []domain.Pattern) (*domain.PatternReports, error)

	// CompareRecords compara dois períodos usando registros enviados pelo chamador
	CompareRecords(records []domain.AdRecord, before, after domain.Period) (*domain.ComparisonReport, error)

	// Snapshots agrega os registros pela chave informada
	Snapshots(records []domain.AdRecord, key domain.GroupKey) []domain.MetricSnapshot
}
