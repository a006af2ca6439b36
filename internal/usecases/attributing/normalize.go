package attributing

import (
	"errors"
	"strings"
	"time"

	"github.com/vfg2006/attribution-api/internal/domain"
)

// Formatos de data aceitos nas linhas de entrada
var recordDateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	time.RFC3339,
}

// NormalizeRecords converte linhas em texto para registros tipados.
// Campos inválidos são reunidos em um único *InputValidationError; as linhas
// válidas são sempre retornadas para que o chamador decida se prossegue.
func NormalizeRecords(raw []domain.RawRecord) ([]domain.AdRecord, error) {
	records := make([]domain.AdRecord, 0, len(raw))
	validation := &InputValidationError{}

	for i, row := range raw {
		record, fieldErrors := normalizeRecord(i, row)
		if len(fieldErrors) > 0 {
			validation.Fields = append(validation.Fields, fieldErrors...)
			continue
		}
		records = append(records, record)
	}

	if len(validation.Fields) > 0 {
		return records, validation
	}
	return records, nil
}

func normalizeRecord(row int, raw domain.RawRecord) (domain.AdRecord, []FieldError) {
	var fieldErrors []FieldError
	reject := func(field, value, reason string) {
		fieldErrors = append(fieldErrors, FieldError{Row: row, Field: field, Value: value, Reason: reason})
	}

	record := domain.AdRecord{Channel: strings.TrimSpace(raw.Channel)}
	if record.Channel == "" {
		reject("channel", raw.Channel, "canal é obrigatório")
	}

	date, err := parseRecordDate(raw.Date)
	if err != nil {
		reject("date", raw.Date, err.Error())
	}
	record.Date = date

	counters := []struct {
		field string
		value string
		dest  *int64
	}{
		{"impressions", raw.Impressions, &record.Impressions},
		{"clicks", raw.Clicks, &record.Clicks},
		{"conversions", raw.Conversions, &record.Conversions},
	}
	for _, c := range counters {
		n, err := domain.ParseCount(c.value)
		if err != nil {
			reject(c.field, c.value, err.Error())
			continue
		}
		*c.dest = n
	}

	cost, err := domain.ParseMicros(raw.Cost)
	if err != nil {
		reject("cost", raw.Cost, err.Error())
	}
	record.Cost = cost

	return record, fieldErrors
}

func parseRecordDate(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, errors.New("data é obrigatória")
	}

	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.TruncateDay(t), nil
		}
	}

	return time.Time{}, errors.New("formato de data não reconhecido, use YYYY-MM-DD")
}
