package domain

import (
	"fmt"
	"time"
)

// AdRecord representa uma linha diária de entrega de anúncios por canal (mídia)
type AdRecord struct {
	Channel     string    `json:"channel" db:"channel"`
	Date        time.Time `json:"date" db:"date"`
	Impressions int64     `json:"impressions" db:"impressions"`
	Clicks      int64     `json:"clicks" db:"clicks"`
	Cost        Micros    `json:"cost" db:"cost_micros"`
	Conversions int64     `json:"conversions" db:"conversions"`
}

// RawRecord é uma linha ainda não normalizada, com os campos como texto
// (ex.: "1,234", "¥5,000")
type RawRecord struct {
	Channel     string `json:"channel"`
	Date        string `json:"date"`
	Impressions string `json:"impressions"`
	Clicks      string `json:"clicks"`
	Cost        string `json:"cost"`
	Conversions string `json:"conversions"`
}

// GroupKey define a granularidade da agregação
type GroupKey string

const (
	GroupByChannel     GroupKey = "channel"
	GroupByChannelDate GroupKey = "channel_date"
	GroupByChannelWeek GroupKey = "channel_week"
)

func (k GroupKey) IsValid() bool {
	switch k {
	case GroupByChannel, GroupByChannelDate, GroupByChannelWeek:
		return true
	}
	return false
}

// ParseGroupKey converte o parâmetro de agrupamento; vazio equivale a GroupByChannel
func ParseGroupKey(s string) (GroupKey, error) {
	if s == "" {
		return GroupByChannel, nil
	}

	key := GroupKey(s)
	if !key.IsValid() {
		return "", fmt.Errorf("agrupamento inválido: %s", s)
	}
	return key, nil
}

// Bucket retorna o rótulo do grupo temporal do registro para a chave informada
func (k GroupKey) Bucket(date time.Time) string {
	switch k {
	case GroupByChannelDate:
		return date.Format(time.DateOnly)
	case GroupByChannelWeek:
		start := WeekStart(date)
		return start.Format(time.DateOnly) + "/" + start.AddDate(0, 0, 6).Format(time.DateOnly)
	default:
		return ""
	}
}

// WeekStart retorna a segunda-feira da semana da data
func WeekStart(date time.Time) time.Time {
	d := TruncateDay(date)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// TruncateDay remove a parte de horário mantendo o fuso
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
