package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MicrosPerUnit é o número de micros em uma unidade monetária
const MicrosPerUnit = 1_000_000

var (
	ErrEmptyAmount    = errors.New("valor vazio")
	ErrNegativeAmount = errors.New("valor negativo")
	ErrInvalidAmount  = errors.New("valor não numérico")
)

// Símbolos removidos antes da conversão. "R$" precisa vir antes de "$".
var currencySymbols = []string{"R$", "¥", "￥", "$", "€", "£"}

// Micros representa um custo em micro-unidades (1 unidade = 1.000.000 micros).
// A soma em inteiros torna a agregação independente da ordem das linhas.
type Micros int64

// MicrosFromFloat converte um valor em unidades para micros
func MicrosFromFloat(v float64) Micros {
	return Micros(math.Round(v * MicrosPerUnit))
}

// Float64 retorna o valor em unidades
func (m Micros) Float64() float64 {
	return float64(m) / MicrosPerUnit
}

func (m Micros) String() string {
	return strconv.FormatFloat(m.Float64(), 'f', 2, 64)
}

func (m Micros) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Float64(), 'f', -1, 64)), nil
}

func (m *Micros) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("micros: %w", err)
	}
	*m = MicrosFromFloat(v)
	return nil
}

// ParseMicros converte um valor monetário formatado (ex.: "¥1,234.5") em micros.
// Casas decimais além da sexta são arredondadas.
func ParseMicros(raw string) (Micros, error) {
	s := normalizeNumeric(raw)
	for _, symbol := range currencySymbols {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.TrimSpace(s)

	if s == "" {
		return 0, ErrEmptyAmount
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeAmount
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (hasFrac && !isDigits(fracPart)) {
		return 0, ErrInvalidAmount
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || units > math.MaxInt64/MicrosPerUnit {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if hasFrac && fracPart != "" {
		roundUp := len(fracPart) > 6 && fracPart[6] >= '5'
		if len(fracPart) > 6 {
			fracPart = fracPart[:6]
		}
		fracPart += strings.Repeat("0", 6-len(fracPart))

		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		if roundUp {
			frac++
		}
	}

	if units > (math.MaxInt64-frac)/MicrosPerUnit {
		return 0, ErrInvalidAmount
	}

	return Micros(units*MicrosPerUnit + frac), nil
}

// ParseCount converte um contador formatado (ex.: "1,234") em inteiro não negativo.
// Valores com parte decimal nula ("12.0") são aceitos.
func ParseCount(raw string) (int64, error) {
	s := strings.TrimSpace(normalizeNumeric(raw))
	if s == "" {
		return 0, ErrEmptyAmount
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeAmount
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if !isDigits(intPart) || (hasFrac && strings.Trim(fracPart, "0") != "") {
		return 0, ErrInvalidAmount
	}

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	return n, nil
}

func normalizeNumeric(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, " ", "")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
