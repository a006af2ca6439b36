package attributing

import (
	"sort"
	"time"

	"github.com/vfg2006/attribution-api/internal/domain"
)

type groupID struct {
	channel string
	bucket  string
}

// Aggregate soma impressões, cliques, custo e conversões por grupo.
// Entrada vazia gera resultado vazio. A saída é ordenada por canal e bucket,
// mas quem apresenta os dados não deve depender dessa ordem.
func Aggregate(records []domain.AdRecord, key domain.GroupKey) []domain.MetricSnapshot {
	groups := make(map[groupID]*domain.MetricSnapshot)

	for _, record := range records {
		id := groupID{channel: record.Channel, bucket: key.Bucket(record.Date)}

		snapshot, ok := groups[id]
		if !ok {
			snapshot = &domain.MetricSnapshot{Channel: id.channel, Bucket: id.bucket}
			groups[id] = snapshot
		}
		snapshot.Add(record)
	}

	snapshots := make([]domain.MetricSnapshot, 0, len(groups))
	for _, snapshot := range groups {
		snapshots = append(snapshots, *snapshot)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].Channel != snapshots[j].Channel {
			return snapshots[i].Channel < snapshots[j].Channel
		}
		return snapshots[i].Bucket < snapshots[j].Bucket
	})

	return snapshots
}

// CompareOverall compara os totais de conversões e CPA entre "antes" e "depois".
// Denominadores zero geram valores indefinidos; apenas lados vazios geram erro.
func CompareOverall(before, after []domain.MetricSnapshot) (domain.ComparisonResult, error) {
	if err := requireData(before, after); err != nil {
		return domain.ComparisonResult{}, err
	}

	totalBefore := domain.Total(before)
	totalAfter := domain.Total(after)

	cpaBefore := totalBefore.CPA()
	cpaAfter := totalAfter.CPA()

	return domain.ComparisonResult{
		ConversionsBefore:  totalBefore.Conversions,
		ConversionsAfter:   totalAfter.Conversions,
		CostBefore:         totalBefore.Cost,
		CostAfter:          totalAfter.Cost,
		CPABefore:          cpaBefore,
		CPAAfter:           cpaAfter,
		ConversionDelta:    totalAfter.Conversions - totalBefore.Conversions,
		ConversionRatioPct: domain.ChangePct(domain.Defined(float64(totalBefore.Conversions)), domain.Defined(float64(totalAfter.Conversions))),
		CPADelta:           cpaAfter.Sub(cpaBefore),
		CPARatioPct:        domain.ChangePct(cpaBefore, cpaAfter),
	}, nil
}

// CompareByChannel distribui a variação agregada entre os canais presentes nos dois lados.
// Canais presentes em apenas um lado são descartados (ver UnmatchedChannels).
func CompareByChannel(before, after []domain.MetricSnapshot, overall domain.ComparisonResult) ([]domain.ChannelContribution, error) {
	if err := requireData(before, after); err != nil {
		return nil, err
	}

	beforeByChannel := rollup(before)
	afterByChannel := rollup(after)

	joined := make([]string, 0, len(beforeByChannel))
	var totalCostBefore domain.Micros
	for channel, snapshot := range beforeByChannel {
		if _, ok := afterByChannel[channel]; !ok {
			continue
		}
		joined = append(joined, channel)
		totalCostBefore += snapshot.Cost
	}
	sort.Strings(joined)

	overallConversionDelta := domain.Defined(float64(overall.ConversionDelta))
	hundred := domain.Defined(100)

	contributions := make([]domain.ChannelContribution, 0, len(joined))
	for _, channel := range joined {
		b := beforeByChannel[channel]
		a := afterByChannel[channel]

		cpaBefore := b.CPA()
		cpaAfter := a.CPA()
		cpaDelta := cpaAfter.Sub(cpaBefore)
		conversionDelta := a.Conversions - b.Conversions
		costShare := domain.Ratio(b.Cost.Float64(), totalCostBefore.Float64())

		contributions = append(contributions, domain.ChannelContribution{
			Channel:                   channel,
			ConversionsBefore:         b.Conversions,
			ConversionsAfter:          a.Conversions,
			CostBefore:                b.Cost,
			CostAfter:                 a.Cost,
			CPABefore:                 cpaBefore,
			CPAAfter:                  cpaAfter,
			ConversionDelta:           conversionDelta,
			CPADelta:                  cpaDelta,
			CostShare:                 costShare,
			ConversionContributionPct: domain.Defined(float64(conversionDelta)).Div(overallConversionDelta).Mul(hundred),
			CPAContributionPct:        cpaDelta.Div(overall.CPADelta).Mul(costShare).Mul(hundred),
		})
	}

	return contributions, nil
}

// UnmatchedChannels retorna, ordenados, os canais presentes em apenas um dos lados
func UnmatchedChannels(before, after []domain.MetricSnapshot) []string {
	beforeByChannel := rollup(before)
	afterByChannel := rollup(after)

	unmatched := make([]string, 0)
	for channel := range beforeByChannel {
		if _, ok := afterByChannel[channel]; !ok {
			unmatched = append(unmatched, channel)
		}
	}
	for channel := range afterByChannel {
		if _, ok := beforeByChannel[channel]; !ok {
			unmatched = append(unmatched, channel)
		}
	}

	sort.Strings(unmatched)
	return unmatched
}

// FilterPeriod retorna os registros cuja data pertence ao período
func FilterPeriod(records []domain.AdRecord, period domain.Period) []domain.AdRecord {
	filtered := make([]domain.AdRecord, 0, len(records))
	for _, record := range records {
		if period.Contains(record.Date) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// BuildReport filtra os registros nas duas janelas, agrega por canal e executa as comparações
func BuildReport(label string, records []domain.AdRecord, before, after domain.Period) (*domain.ComparisonReport, error) {
	if err := before.Validate(); err != nil {
		return nil, err
	}
	if err := after.Validate(); err != nil {
		return nil, err
	}

	beforeSnapshots := Aggregate(FilterPeriod(records, before), domain.GroupByChannel)
	afterSnapshots := Aggregate(FilterPeriod(records, after), domain.GroupByChannel)

	overall, err := CompareOverall(beforeSnapshots, afterSnapshots)
	if err != nil {
		return nil, withPeriods(err, before, after)
	}

	channels, err := CompareByChannel(beforeSnapshots, afterSnapshots, overall)
	if err != nil {
		return nil, withPeriods(err, before, after)
	}

	return &domain.ComparisonReport{
		Label:             label,
		Before:            before,
		After:             after,
		BeforeSnapshots:   beforeSnapshots,
		AfterSnapshots:    afterSnapshots,
		BeforeTotal:       domain.Total(beforeSnapshots),
		AfterTotal:        domain.Total(afterSnapshots),
		Overall:           overall,
		Channels:          channels,
		UnmatchedChannels: UnmatchedChannels(beforeSnapshots, afterSnapshots),
		ContributionSum:   domain.SumContributions(channels),
		GeneratedAt:       time.Now().UTC(),
	}, nil
}

func requireData(before, after []domain.MetricSnapshot) error {
	if len(before) == 0 {
		return &MissingDataError{Side: SideBefore}
	}
	if len(after) == 0 {
		return &MissingDataError{Side: SideAfter}
	}
	return nil
}

// rollup agrupa por canal, somando linhas repetidas do mesmo canal
func rollup(snapshots []domain.MetricSnapshot) map[string]domain.MetricSnapshot {
	byChannel := make(map[string]domain.MetricSnapshot, len(snapshots))
	for _, s := range snapshots {
		acc := byChannel[s.Channel]
		acc.Channel = s.Channel
		acc.Merge(s)
		byChannel[s.Channel] = acc
	}
	return byChannel
}

func withPeriods(err error, before, after domain.Period) error {
	if missing, ok := err.(*MissingDataError); ok {
		return missing.withPeriod(before, after)
	}
	return err
}
