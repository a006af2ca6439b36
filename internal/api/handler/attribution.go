package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/internal/usecases/attributing"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
	"github.com/vfg2006/attribution-api/pkg/log"
	"github.com/vfg2006/attribution-api/pkg/utils"
)

// CompareRecordsRequest compara registros enviados no corpo da requisição.
// Os períodos usam o formato "2024-05-01:2024-05-07" ou "2024-05-01".
type CompareRecordsRequest struct {
	Records     []domain.RawRecord `json:"records"`
	Before      string             `json:"before"`
	After       string             `json:"after"`
	SkipInvalid bool               `json:"skip_invalid"`
}

type CompareRecordsResponse struct {
	Report   *domain.ComparisonReport `json:"report"`
	Rejected []attributing.FieldError `json:"rejected,omitempty"`
}

type SnapshotsRequest struct {
	Records     []domain.RawRecord `json:"records"`
	GroupBy     string             `json:"group_by"`
	SkipInvalid bool               `json:"skip_invalid"`
}

type SnapshotsResponse struct {
	GroupBy   domain.GroupKey          `json:"group_by"`
	Snapshots []domain.MetricSnapshot  `json:"snapshots"`
	Total     domain.MetricSnapshot    `json:"total"`
	Rejected  []attributing.FieldError `json:"rejected,omitempty"`
}

// CompareFromRepository compara dois períodos lidos da base de registros
func CompareFromRepository(service attributing.Attributor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		before, err := periodFromQuery(query.Get("before_start"), query.Get("before_end"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Período 'before' inválido", err.Error())
			return
		}

		after, err := periodFromQuery(query.Get("after_start"), query.Get("after_end"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Período 'after' inválido", err.Error())
			return
		}

		report, err := service.Compare(r.Context(), before, after)
		if err != nil {
			writeAttributionError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// ComparePatterns executa os padrões de comparação (dia, semana, duas semanas)
func ComparePatterns(service attributing.Attributor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		anchor, err := utils.ParseDate(query.Get("date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Data inválida, use YYYY-MM-DD", err.Error())
			return
		}

		patterns, err := domain.ParsePatterns(query.Get("patterns"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Padrão de comparação inválido", err.Error())
			return
		}

		result, err := service.ComparePatterns(r.Context(), anchor, patterns)
		if err != nil {
			writeAttributionError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// CompareRecords compara registros enviados pelo cliente
func CompareRecords(service attributing.Attributor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CompareRecordsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		before, err := domain.ParsePeriod(req.Before)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Período 'before' inválido", err.Error())
			return
		}

		after, err := domain.ParsePeriod(req.After)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Período 'after' inválido", err.Error())
			return
		}

		records, rejected, ok := normalizeRequestRecords(w, r, req.Records, req.SkipInvalid)
		if !ok {
			return
		}

		report, err := service.CompareRecords(records, before, after)
		if err != nil {
			writeAttributionError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, CompareRecordsResponse{Report: report, Rejected: rejected})
	}
}

// Snapshots agrega registros enviados pelo cliente por canal, dia ou semana
func Snapshots(service attributing.Attributor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SnapshotsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		key, err := domain.ParseGroupKey(req.GroupBy)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Agrupamento inválido", err.Error())
			return
		}

		records, rejected, ok := normalizeRequestRecords(w, r, req.Records, req.SkipInvalid)
		if !ok {
			return
		}

		snapshots := service.Snapshots(records, key)

		writeJSON(w, http.StatusOK, SnapshotsResponse{
			GroupBy:   key,
			Snapshots: snapshots,
			Total:     domain.Total(snapshots),
			Rejected:  rejected,
		})
	}
}

// normalizeRequestRecords converte as linhas recebidas. Com skipInvalid as linhas
// rejeitadas são devolvidas para a resposta; sem ele a requisição é recusada.
func normalizeRequestRecords(w http.ResponseWriter, r *http.Request, raw []domain.RawRecord, skipInvalid bool) ([]domain.AdRecord, []attributing.FieldError, bool) {
	records, err := attributing.NormalizeRecords(raw)
	if err == nil {
		return records, nil, true
	}

	var validation *attributing.InputValidationError
	if skipInvalid && errors.As(err, &validation) {
		log.ForContext(r.Context()).WithFields(log.Fields{
			"rejected_rows": len(validation.Rows()),
			"accepted_rows": len(records),
		}).Warn("attribution: linhas inválidas ignoradas")
		return records, validation.Fields, true
	}

	writeAttributionError(w, r, err)
	return nil, nil, false
}

func periodFromQuery(start, end string) (domain.Period, error) {
	if end == "" {
		end = start
	}
	return domain.ParsePeriod(start + ":" + end)
}

// writeAttributionError converte erros do caso de uso na resposta padronizada
func writeAttributionError(w http.ResponseWriter, r *http.Request, err error) {
	code := attributing.ErrorCode(err)
	logger := log.ForContext(r.Context()).WithError(err)

	var details any
	var missing *attributing.MissingDataError
	var validation *attributing.InputValidationError

	switch {
	case errors.As(err, &missing):
		details = map[string]any{"side": missing.Side, "period": missing.Period}
		logger.Warn("attribution: período sem dados")
	case errors.As(err, &validation):
		details = validation.Fields
		logger.Warn("attribution: registros inválidos")
	case apiErrors.StatusFor(code) >= http.StatusInternalServerError:
		logrus.WithError(err).WithField("code", code).Error("attribution: erro ao processar comparação")
		apiErrors.WriteError(w, code, "Erro ao processar comparação", nil)
		return
	default:
		logger.Warn("attribution: requisição rejeitada")
	}

	apiErrors.WriteError(w, code, err.Error(), details)
}
