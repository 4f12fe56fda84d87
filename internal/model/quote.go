package model

import "github.com/shopspring/decimal"

// Quote is the latest price summary for a symbol.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Volume        int64           `json:"volume"`
	Timestamp     string          `json:"timestamp"`
}

// ChartPoint is one daily close in a price history.
type ChartPoint struct {
	Date   string          `json:"date"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume,omitempty"`
}

// ChartSeries holds closes in the order the server sent them (chronological ascending).
type ChartSeries struct {
	Symbol string       `json:"symbol"`
	Points []ChartPoint `json:"data"`
}

// Len returns the number of points in the series.
func (c ChartSeries) Len() int { return len(c.Points) }

// Closes returns the close prices as float64, preserving order.
func (c ChartSeries) Closes() []float64 {
	closes := make([]float64, len(c.Points))
	for i, p := range c.Points {
		closes[i] = p.Close.InexactFloat64()
	}
	return closes
}
