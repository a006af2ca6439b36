package domain

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TotalChannel é o rótulo da linha de totais
const TotalChannel = "Total"

// MetricSnapshot representa as métricas agregadas de um canal em um período
// (ou em um bucket diário/semanal do período)
type MetricSnapshot struct {
	Channel     string `json:"channel"`
	Bucket      string `json:"bucket,omitempty"`
	Impressions int64  `json:"impressions"`
	Clicks      int64  `json:"clicks"`
	Cost        Micros `json:"cost"`
	Conversions int64  `json:"conversions"`
}

// Add acumula as métricas de um registro
func (s *MetricSnapshot) Add(record AdRecord) {
	s.Impressions += record.Impressions
	s.Clicks += record.Clicks
	s.Cost += record.Cost
	s.Conversions += record.Conversions
}

// Merge acumula as métricas de outro snapshot
func (s *MetricSnapshot) Merge(other MetricSnapshot) {
	s.Impressions += other.Impressions
	s.Clicks += other.Clicks
	s.Cost += other.Cost
	s.Conversions += other.Conversions
}

// CTR = clicks / impressions * 100
func (s MetricSnapshot) CTR() Number {
	return Ratio(float64(s.Clicks)*100, float64(s.Impressions))
}

// CPC = cost / clicks
func (s MetricSnapshot) CPC() Number {
	return Ratio(s.Cost.Float64(), float64(s.Clicks))
}

// CVR = conversions / clicks * 100
func (s MetricSnapshot) CVR() Number {
	return Ratio(float64(s.Conversions)*100, float64(s.Clicks))
}

// CPA = cost / conversions
func (s MetricSnapshot) CPA() Number {
	return Ratio(s.Cost.Float64(), float64(s.Conversions))
}

// IsEmpty indica um snapshot sem nenhuma métrica
func (s MetricSnapshot) IsEmpty() bool {
	return s.Impressions == 0 && s.Clicks == 0 && s.Cost == 0 && s.Conversions == 0
}

func (s MetricSnapshot) MarshalJSON() ([]byte, error) {
	type snapshot MetricSnapshot

	return json.Marshal(struct {
		snapshot
		CTR Number `json:"ctr"`
		CPC Number `json:"cpc"`
		CVR Number `json:"cvr"`
		CPA Number `json:"cpa"`
	}{
		snapshot: snapshot(s),
		CTR:      s.CTR(),
		CPC:      s.CPC(),
		CVR:      s.CVR(),
		CPA:      s.CPA(),
	})
}

// Total soma todos os snapshots em uma linha "Total"
func Total(snapshots []MetricSnapshot) MetricSnapshot {
	total := MetricSnapshot{Channel: TotalChannel}
	for _, s := range snapshots {
		total.Merge(s)
	}
	return total
}
