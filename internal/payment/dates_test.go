package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddDays(t *testing.T) {
	base := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 15, 15, 30, 0, 0, time.UTC), AddDays(base, 5))
	assert.Equal(t, base, AddDays(base, 0))

	// Month rollover
	endOfMonth := time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), AddDays(endOfMonth, 5))
}

func TestFormatDateBR(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/03/2024", FormatDateBR(d))
}

func TestFormatAmountBRL(t *testing.T) {
	assert.Equal(t, "R$ 2000,00", FormatAmountBRL(2000))
	assert.Equal(t, "R$ 0,00", FormatAmountBRL(0))
	assert.Equal(t, "R$ 1000,00", FormatAmountBRL(1000))
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		value string
		want  Method
	}{
		{"Cartão de Crédito", MethodCard},
		{"Pix", MethodPix},
		{"Boleto", MethodBoleto},
		{"Cash", MethodUnknown},
		{"pix", MethodUnknown},
		{"", MethodUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseMethod(tt.value), "value %q", tt.value)
	}
}
