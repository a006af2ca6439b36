package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		result   Number
		expected float64
		defined  bool
	}{
		{name: "divisão", result: Defined(10).Div(Defined(4)), expected: 2.5, defined: true},
		{name: "divisão por zero", result: Defined(10).Div(Defined(0)), defined: false},
		{name: "divisão por indefinido", result: Defined(10).Div(Undefined()), defined: false},
		{name: "subtração com indefinido", result: Undefined().Sub(Defined(1)), defined: false},
		{name: "multiplicação", result: Defined(3).Mul(Defined(-2)), expected: -6, defined: true},
		{name: "soma com indefinido", result: Defined(3).Add(Undefined()), defined: false},
		{name: "razão com denominador zero", result: Ratio(1, 0), defined: false},
		{name: "NaN vira indefinido", result: Defined(math.NaN()), defined: false},
		{name: "infinito vira indefinido", result: Defined(math.Inf(1)), defined: false},
		{name: "variação percentual", result: ChangePct(Defined(100), Defined(150)), expected: 50, defined: true},
		{name: "variação com base zero", result: ChangePct(Defined(0), Defined(150)), defined: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := tt.result.Float64()
			assert.Equal(t, tt.defined, ok)
			assert.Equal(t, tt.defined, tt.result.IsDefined())
			if tt.defined {
				assert.InDelta(t, tt.expected, v, 1e-9)
			} else {
				assert.Equal(t, 0.0, tt.result.Value())
			}
		})
	}
}

func TestNumber_Format(t *testing.T) {
	assert.Equal(t, "undefined", Undefined().String())
	assert.Equal(t, "12.35", Defined(12.346).String())
	assert.Equal(t, "-", Undefined().Format("%.1f%%", "-"))
	assert.Equal(t, "20.0%", Defined(20).Format("%.1f%%", "-"))
}

func TestNumber_JSON(t *testing.T) {
	type payload struct {
		A Number `json:"a"`
		B Number `json:"b"`
	}

	raw, err := json.Marshal(payload{A: Defined(1.5), B: Undefined()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":null}`, string(raw))

	var decoded payload
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, Defined(1.5), decoded.A)
	assert.False(t, decoded.B.IsDefined())
}
