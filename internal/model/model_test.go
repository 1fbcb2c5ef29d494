package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

func TestGenreValid(t *testing.T) {
	for _, g := range model.Genres {
		assert.True(t, g.Valid(), "declared genre %q must be valid", g)
	}
	assert.False(t, model.Genre("WESTERN").Valid())
	assert.False(t, model.Genre("").Valid())
	// Genre values are stored uppercase; lookup is case-sensitive.
	assert.False(t, model.Genre("action").Valid())
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range model.PaymentMethods {
		assert.True(t, m.Valid(), "declared method %q must be valid", m)
	}
	assert.False(t, model.PaymentMethod("CASH").Valid())
	assert.False(t, model.PaymentMethod("").Valid())
}

func TestTotalPriceArithmetic(t *testing.T) {
	// seats × price must be exact; binary floats would drift here.
	price := decimal.RequireFromString("12.99")
	total := price.Mul(decimal.NewFromInt(3))
	assert.Equal(t, "38.97", total.StringFixed(2))

	price = decimal.RequireFromString("0.10")
	total = price.Mul(decimal.NewFromInt(3))
	assert.True(t, total.Equal(decimal.RequireFromString("0.30")))
}
