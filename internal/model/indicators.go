package model

import "github.com/shopspring/decimal"

// IndicatorSet holds technical indicators. Each field is independently optional:
// an invalid NullDecimal means the upstream could not compute it, not zero.
type IndicatorSet struct {
	Symbol string              `json:"symbol"`
	SMA20  decimal.NullDecimal `json:"sma_20"`
	SMA50  decimal.NullDecimal `json:"sma_50"`
	EMA12  decimal.NullDecimal `json:"ema_12"`
	EMA26  decimal.NullDecimal `json:"ema_26"`
	RSI    decimal.NullDecimal `json:"rsi"`
}

// Present returns a valid NullDecimal holding v.
func Present(v decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: v, Valid: true}
}
