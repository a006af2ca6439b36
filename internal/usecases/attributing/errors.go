package attributing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/attribution-api/internal/domain"
	"github.com/vfg2006/attribution-api/pkg/apiErrors"
)

// Lados de uma comparação
const (
	SideBefore = "before"
	SideAfter  = "after"
)

var (
	ErrMissingData       = errors.New("sem dados para o período solicitado")
	ErrInvalidInput      = errors.New("registros de entrada inválidos")
	ErrDatabaseOperation = errors.New("erro na operação de banco de dados")
	ErrGenerateID        = errors.New("erro ao gerar o ID do relatório")
)

// MissingDataError indica que um dos lados da comparação não possui linhas.
// É diferente de um snapshot presente com métricas zeradas.
type MissingDataError struct {
	Side   string
	Period *domain.Period
}

func (e *MissingDataError) Error() string {
	if e.Period != nil {
		return fmt.Sprintf("%s: período %s %s", ErrMissingData.Error(), e.Side, e.Period.String())
	}
	return fmt.Sprintf("%s: período %s", ErrMissingData.Error(), e.Side)
}

func (e *MissingDataError) Unwrap() error {
	return ErrMissingData
}

// withPeriod retorna uma cópia com o período informado
func (e *MissingDataError) withPeriod(before, after domain.Period) *MissingDataError {
	period := before
	if e.Side == SideAfter {
		period = after
	}
	return &MissingDataError{Side: e.Side, Period: &period}
}

// FieldError identifica um campo inválido de uma linha de entrada
type FieldError struct {
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("linha %d, campo %s (%q): %s", f.Row, f.Field, f.Value, f.Reason)
}

// InputValidationError reúne todos os campos rejeitados de um lote de registros
type InputValidationError struct {
	Fields []FieldError
}

func (e *InputValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}

	const maxListed = 5
	parts := make([]string, 0, maxListed)
	for i, f := range e.Fields {
		if i == maxListed {
			parts = append(parts, fmt.Sprintf("e mais %d", len(e.Fields)-maxListed))
			break
		}
		parts = append(parts, f.String())
	}

	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

func (e *InputValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Rows retorna os índices distintos das linhas rejeitadas
func (e *InputValidationError) Rows() []int {
	seen := make(map[int]bool)
	rows := make([]int, 0, len(e.Fields))
	for _, f := range e.Fields {
		if !seen[f.Row] {
			seen[f.Row] = true
			rows = append(rows, f.Row)
		}
	}
	return rows
}

// AttributionError é um erro com contexto adicional para a API
type AttributionError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *AttributionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AttributionError) Unwrap() error {
	return e.Err
}

func NewAttributionError(err error, code string, details string) *AttributionError {
	return &AttributionError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// ErrorCode mapeia um erro do caso de uso para o código da API
func ErrorCode(err error) string {
	var attrErr *AttributionError
	var missingErr *MissingDataError
	var inputErr *InputValidationError

	switch {
	case errors.As(err, &attrErr):
		return attrErr.Code
	case errors.As(err, &missingErr):
		return apiErrors.ErrMissingData
	case errors.As(err, &inputErr):
		return apiErrors.ErrInvalidFormat
	case errors.Is(err, domain.ErrInvalidPeriod):
		return apiErrors.ErrInvalidPeriod
	default:
		return apiErrors.ErrInternalServer
	}
}
