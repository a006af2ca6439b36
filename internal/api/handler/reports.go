package handler

import (
	"net/http"

	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
)

// ReportSource fornece o último resultado da comparação agendada
type ReportSource interface {
	LastReports() *domain.PatternReports
}

// LatestReports retorna os relatórios da última comparação diária concluída
func LatestReports(source ReportSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports := source.LastReports()
		if reports == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingData, "Nenhuma comparação diária concluída até o momento", nil)
			return
		}

		writeJSON(w, http.StatusOK, reports)
	}
}
