package view

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"StockAnalyzer/internal/model"
)

// Direction is the colour hint for a value: up, down, or flat.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// RSIZone classifies an RSI reading.
type RSIZone string

const (
	ZoneNone       RSIZone = ""
	ZoneNeutral    RSIZone = "neutral"
	ZoneOverbought RSIZone = "overbought"
	ZoneOversold   RSIZone = "oversold"
)

var (
	rsiOverbought = decimal.NewFromInt(70)
	rsiOversold   = decimal.NewFromInt(30)
)

// ClassifyRSI applies exclusive thresholds: above 70 is overbought, below 30 oversold.
func ClassifyRSI(rsi decimal.Decimal) RSIZone {
	switch {
	case rsi.GreaterThan(rsiOverbought):
		return ZoneOverbought
	case rsi.LessThan(rsiOversold):
		return ZoneOversold
	default:
		return ZoneNeutral
	}
}

// DisplayModel is a snapshot with every value formatted for display.
type DisplayModel struct {
	Seq        uint64
	Symbol     string
	Price      string
	Change     string
	Direction  Direction
	Volume     string
	Timestamp  string
	Chart      ChartData
	Prediction PredictionView
	Indicators []IndicatorRow
}

// ChartData is the price history in upstream order.
type ChartData struct {
	Labels []string
	Values []float64
}

func (c ChartData) Len() int { return len(c.Values) }

type PredictionView struct {
	Current    string // empty when the upstream omitted it
	Predicted  string
	Trend      string
	TrendHint  Direction
	Confidence string
}

// IndicatorRow is one line of the technical indicators panel.
type IndicatorRow struct {
	Key   string
	Label string
	Value string
	Zone  RSIZone
}

// Assemble maps a snapshot to its display model. It has no side effects.
func Assemble(s model.Snapshot) DisplayModel {
	dm := DisplayModel{
		Seq:        s.Seq,
		Symbol:     s.Symbol,
		Price:      Currency(s.Quote.Price),
		Change:     SignedChange(s.Quote.Change, s.Quote.ChangePercent),
		Direction:  DirectionUp,
		Volume:     humanize.Comma(s.Quote.Volume),
		Timestamp:  s.Quote.Timestamp,
		Chart:      assembleChart(s.Chart),
		Prediction: assemblePrediction(s.Prediction),
		Indicators: assembleIndicators(s.Indicators),
	}
	if s.Quote.Change.IsNegative() {
		dm.Direction = DirectionDown
	}
	return dm
}

// Currency formats v as dollars with two decimals.
func Currency(v decimal.Decimal) string { return "$" + v.StringFixed(2) }

// SignedChange renders "+1.25 (0.67%)"; negative changes carry their own sign.
func SignedChange(change, pct decimal.Decimal) string {
	s := change.StringFixed(2)
	if !change.IsNegative() {
		s = "+" + s
	}
	return s + " (" + pct.StringFixed(2) + "%)"
}

func assembleChart(c model.ChartSeries) ChartData {
	cd := ChartData{
		Labels: make([]string, len(c.Points)),
		Values: make([]float64, len(c.Points)),
	}
	for i, p := range c.Points {
		cd.Labels[i] = p.Date
		cd.Values[i] = p.Close.InexactFloat64()
	}
	return cd
}

func assemblePrediction(p model.Prediction) PredictionView {
	pv := PredictionView{
		Predicted:  Currency(p.PredictedPrice),
		Trend:      string(p.Trend),
		TrendHint:  TrendDirection(p.Trend),
		Confidence: p.Confidence.Title(),
	}
	if p.CurrentPrice.Valid {
		pv.Current = Currency(p.CurrentPrice.Decimal)
	}
	return pv
}

// TrendDirection maps bullish to up, bearish to down and anything else to flat.
func TrendDirection(t model.Trend) Direction {
	switch t {
	case model.TrendBullish:
		return DirectionUp
	case model.TrendBearish:
		return DirectionDown
	default:
		return DirectionFlat
	}
}

func assembleIndicators(ind model.IndicatorSet) []IndicatorRow {
	var rows []IndicatorRow
	price := func(key, label string, v decimal.NullDecimal) {
		if v.Valid {
			rows = append(rows, IndicatorRow{Key: key, Label: label, Value: Currency(v.Decimal)})
		}
	}
	price("sma_20", "SMA (20)", ind.SMA20)
	price("sma_50", "SMA (50)", ind.SMA50)
	price("ema_12", "EMA (12)", ind.EMA12)
	price("ema_26", "EMA (26)", ind.EMA26)
	if ind.RSI.Valid {
		rows = append(rows, IndicatorRow{
			Key:   "rsi",
			Label: "RSI (14)",
			Value: ind.RSI.Decimal.StringFixed(2),
			Zone:  ClassifyRSI(ind.RSI.Decimal),
		})
	}
	return rows
}
