package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountString(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		want   string
	}{
		{"pounds and pence", Amount{Currency: "GBP", MinorUnits: 1250}, "GBP 12.50"},
		{"whole units", Amount{Currency: "EUR", MinorUnits: 5000}, "EUR 50.00"},
		{"sub-unit", Amount{Currency: "GBP", MinorUnits: 7}, "GBP 0.07"},
		{"zero", Amount{Currency: "USD", MinorUnits: 0}, "USD 0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.amount.String())
		})
	}
}

func TestAmountCovers(t *testing.T) {
	tests := []struct {
		name string
		a, b Amount
		want bool
	}{
		{"larger covers smaller", Amount{"GBP", 5000}, Amount{"GBP", 1250}, true},
		{"equal covers", Amount{"GBP", 1250}, Amount{"GBP", 1250}, true},
		{"smaller does not cover", Amount{"GBP", 500}, Amount{"GBP", 1250}, false},
		{"currency mismatch never covers", Amount{"USD", 5000}, Amount{"GBP", 1250}, false},
		{"zero value does not cover", Amount{}, Amount{"GBP", 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Covers(tt.b))
		})
	}
}

func TestAmountSameCurrency(t *testing.T) {
	assert.True(t, Amount{"GBP", 1}.SameCurrency(Amount{"GBP", 2}))
	assert.False(t, Amount{"GBP", 1}.SameCurrency(Amount{"EUR", 1}))
}

func TestAmountIsZero(t *testing.T) {
	assert.True(t, Amount{}.IsZero())
	assert.False(t, Amount{Currency: "GBP"}.IsZero())
	assert.False(t, Amount{MinorUnits: 1}.IsZero())
}
