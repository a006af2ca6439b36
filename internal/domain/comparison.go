package domain

import "time"

// ComparisonResult é a comparação agregada entre o período "antes" (A) e "depois" (B)
type ComparisonResult struct {
	ConversionsBefore  int64  `json:"conversions_before"`
	ConversionsAfter   int64  `json:"conversions_after"`
	CostBefore         Micros `json:"cost_before"`
	CostAfter          Micros `json:"cost_after"`
	CPABefore          Number `json:"cpa_before"`
	CPAAfter           Number `json:"cpa_after"`
	ConversionDelta    int64  `json:"conversion_delta"`
	ConversionRatioPct Number `json:"conversion_ratio_pct"`
	CPADelta           Number `json:"cpa_delta"`
	CPARatioPct        Number `json:"cpa_ratio_pct"`
}

// ChannelContribution é a contribuição estimada de um canal para a variação agregada.
// As contribuições são uma ponderação heurística e não somam necessariamente 100%.
type ChannelContribution struct {
	Channel                   string `json:"channel"`
	ConversionsBefore         int64  `json:"conversions_before"`
	ConversionsAfter          int64  `json:"conversions_after"`
	CostBefore                Micros `json:"cost_before"`
	CostAfter                 Micros `json:"cost_after"`
	CPABefore                 Number `json:"cpa_before"`
	CPAAfter                  Number `json:"cpa_after"`
	ConversionDelta           int64  `json:"conversion_delta"`
	CPADelta                  Number `json:"cpa_delta"`
	CostShare                 Number `json:"cost_share"`
	ConversionContributionPct Number `json:"conversion_contribution_pct"`
	CPAContributionPct        Number `json:"cpa_contribution_pct"`
}

// ContributionSum soma as colunas de contribuição (linha "Total" da tabela de canais)
type ContributionSum struct {
	ConversionContributionPct Number `json:"conversion_contribution_pct"`
	CPAContributionPct        Number `json:"cpa_contribution_pct"`
}

// SumContributions soma as contribuições; um valor indefinido torna a soma indefinida
func SumContributions(contributions []ChannelContribution) ContributionSum {
	sum := ContributionSum{
		ConversionContributionPct: Defined(0),
		CPAContributionPct:        Defined(0),
	}
	for _, c := range contributions {
		sum.ConversionContributionPct = sum.ConversionContributionPct.Add(c.ConversionContributionPct)
		sum.CPAContributionPct = sum.CPAContributionPct.Add(c.CPAContributionPct)
	}
	return sum
}

// ComparisonReport reúne tudo o que um apresentador precisa para uma comparação
type ComparisonReport struct {
	ID                string                `json:"id"`
	Label             string                `json:"label"`
	Before            Period                `json:"before"`
	After             Period                `json:"after"`
	BeforeSnapshots   []MetricSnapshot      `json:"before_snapshots"`
	AfterSnapshots    []MetricSnapshot      `json:"after_snapshots"`
	BeforeTotal       MetricSnapshot        `json:"before_total"`
	AfterTotal        MetricSnapshot        `json:"after_total"`
	Overall           ComparisonResult      `json:"overall"`
	Channels          []ChannelContribution `json:"channels"`
	UnmatchedChannels []string              `json:"unmatched_channels"`
	ContributionSum   ContributionSum       `json:"contribution_sum"`
	GeneratedAt       time.Time             `json:"generated_at"`
}

// PatternFailure registra um padrão que não pôde ser calculado
type PatternFailure struct {
	Pattern Pattern `json:"pattern"`
	Before  Period  `json:"before"`
	After   Period  `json:"after"`
	Reason  string  `json:"reason"`
}

// PatternReports é o resultado da execução de vários padrões para uma âncora
type PatternReports struct {
	Anchor  time.Time           `json:"anchor"`
	Reports []*ComparisonReport `json:"reports"`
	Skipped []PatternFailure    `json:"skipped"`
}
