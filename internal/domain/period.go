package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidPeriod = errors.New("período inválido")

// Period é um intervalo fechado de datas [Start, End]
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod cria um período normalizado para o início de cada dia
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: TruncateDay(start), End: TruncateDay(end)}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// SingleDay cria um período de um único dia
func SingleDay(date time.Time) Period {
	d := TruncateDay(date)
	return Period{Start: d, End: d}
}

// ParsePeriod aceita "2024-05-01:2024-05-07" ou apenas "2024-05-01"
func ParsePeriod(s string) (Period, error) {
	startStr, endStr, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		endStr = startStr
	}

	start, err := time.Parse(time.DateOnly, strings.TrimSpace(startStr))
	if err != nil {
		return Period{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, s)
	}
	end, err := time.Parse(time.DateOnly, strings.TrimSpace(endStr))
	if err != nil {
		return Period{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, s)
	}

	return NewPeriod(start, end)
}

func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("%w: datas de início e fim são obrigatórias", ErrInvalidPeriod)
	}
	if p.Start.After(p.End) {
		return fmt.Errorf("%w: início %s posterior ao fim %s", ErrInvalidPeriod,
			p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
	}
	return nil
}

// Contains compara apenas a parte de data
func (p Period) Contains(date time.Time) bool {
	d := TruncateDay(date).Format(time.DateOnly)
	return d >= p.Start.Format(time.DateOnly) && d <= p.End.Format(time.DateOnly)
}

// Days retorna o número de dias do período, inclusive
func (p Period) Days() int {
	return int(TruncateDay(p.End).Sub(TruncateDay(p.Start)).Hours()/24) + 1
}

// Union retorna o menor período que cobre os dois
func (p Period) Union(other Period) Period {
	union := p
	if other.Start.Before(union.Start) {
		union.Start = other.Start
	}
	if other.End.After(union.End) {
		union.End = other.End
	}
	return union
}

func (p Period) String() string {
	if p.Start.Equal(p.End) {
		return p.Start.Format(time.DateOnly)
	}
	return p.Start.Format(time.DateOnly) + ":" + p.End.Format(time.DateOnly)
}

// Pattern é um padrão de comparação com janelas derivadas de uma data âncora
type Pattern string

const (
	PatternDay     Pattern = "day"
	PatternWeek    Pattern = "week"
	PatternTwoWeek Pattern = "two_week"
)

// AllPatterns na ordem em que são apresentados
var AllPatterns = []Pattern{PatternDay, PatternWeek, PatternTwoWeek}

var patternLabels = map[Pattern]string{
	PatternDay:     "day over day",
	PatternWeek:    "week over week",
	PatternTwoWeek: "two weeks over two weeks",
}

func (p Pattern) Label() string {
	if label, ok := patternLabels[p]; ok {
		return label
	}
	return string(p)
}

func (p Pattern) IsValid() bool {
	_, ok := patternLabels[p]
	return ok
}

// Windows resolve as janelas "antes" e "depois" a partir da âncora:
//
//	day:      d-1        vs d
//	week:     d-13..d-7  vs d-6..d
//	two_week: d-25..d-13 vs d-12..d
func (p Pattern) Windows(anchor time.Time) (before, after Period, err error) {
	d := TruncateDay(anchor)

	switch p {
	case PatternDay:
		return SingleDay(d.AddDate(0, 0, -1)), SingleDay(d), nil
	case PatternWeek:
		return Period{Start: d.AddDate(0, 0, -13), End: d.AddDate(0, 0, -7)},
			Period{Start: d.AddDate(0, 0, -6), End: d}, nil
	case PatternTwoWeek:
		return Period{Start: d.AddDate(0, 0, -25), End: d.AddDate(0, 0, -13)},
			Period{Start: d.AddDate(0, 0, -12), End: d}, nil
	default:
		return Period{}, Period{}, fmt.Errorf("padrão de comparação desconhecido: %s", p)
	}
}

// ParsePatterns converte uma lista separada por vírgulas; vazio retorna todos os padrões
func ParsePatterns(s string) ([]Pattern, error) {
	if strings.TrimSpace(s) == "" {
		return AllPatterns, nil
	}

	seen := make(map[Pattern]bool)
	patterns := make([]Pattern, 0, len(AllPatterns))
	for _, part := range strings.Split(s, ",") {
		p := Pattern(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		if !p.IsValid() {
			return nil, fmt.Errorf("padrão de comparação desconhecido: %s", p)
		}
		if !seen[p] {
			seen[p] = true
			patterns = append(patterns, p)
		}
	}

	if len(patterns) == 0 {
		return AllPatterns, nil
	}
	return patterns, nil
}
