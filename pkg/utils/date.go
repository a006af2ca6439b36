package utils

import (
	"strings"
	"time"
)

// ParseDate converte uma data YYYY-MM-DD; vazio retorna a data zero
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.DateOnly, dateStr)
}
