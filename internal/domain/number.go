package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Number é um valor numérico que pode estar indefinido (ex.: divisão por zero).
// Valores indefinidos são serializados como null e nunca como Inf/NaN.
type Number struct {
	value   float64
	defined bool
}

// Defined cria um Number definido. NaN e ±Inf viram Undefined.
func Defined(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined()
	}
	return Number{value: v, defined: true}
}

// Undefined cria um Number indefinido
func Undefined() Number {
	return Number{}
}

// Ratio divide num por den; indefinido quando den é zero
func Ratio(num, den float64) Number {
	if den == 0 {
		return Undefined()
	}
	return Defined(num / den)
}

func (n Number) IsDefined() bool {
	return n.defined
}

// Float64 retorna o valor e se ele está definido
func (n Number) Float64() (float64, bool) {
	return n.value, n.defined
}

// Value retorna o valor, ou zero quando indefinido
func (n Number) Value() float64 {
	if !n.defined {
		return 0
	}
	return n.value
}

// IsZero indica um valor definido igual a zero
func (n Number) IsZero() bool {
	return n.defined && n.value == 0
}

// Sub retorna n - other, indefinido se qualquer lado for indefinido
func (n Number) Sub(other Number) Number {
	if !n.defined || !other.defined {
		return Undefined()
	}
	return Defined(n.value - other.value)
}

// Mul retorna n * other, indefinido se qualquer lado for indefinido
func (n Number) Mul(other Number) Number {
	if !n.defined || !other.defined {
		return Undefined()
	}
	return Defined(n.value * other.value)
}

// Div retorna n / other; indefinido se other for indefinido ou zero
func (n Number) Div(other Number) Number {
	if !n.defined || !other.defined || other.value == 0 {
		return Undefined()
	}
	return Defined(n.value / other.value)
}

// ChangePct calcula a variação relativa ((after/before) - 1) * 100
func ChangePct(before, after Number) Number {
	return after.Div(before).Sub(Defined(1)).Mul(Defined(100))
}

// Add soma dois valores; indefinido propaga
func (n Number) Add(other Number) Number {
	if !n.defined || !other.defined {
		return Undefined()
	}
	return Defined(n.value + other.value)
}

func (n Number) String() string {
	if !n.defined {
		return "undefined"
	}
	return strconv.FormatFloat(n.value, 'f', 2, 64)
}

// Format aplica o layout informado, ou retorna fallback quando indefinido
func (n Number) Format(layout, fallback string) string {
	if !n.defined {
		return fallback
	}
	return fmt.Sprintf(layout, n.value)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.defined {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*n = Undefined()
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("number: valor inválido %q: %w", s, err)
	}

	*n = Defined(v)
	return nil
}
