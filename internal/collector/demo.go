package collector

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
)

// DefaultDemoDays is the length of a generated price history.
const DefaultDemoDays = 60

// DemoFetcher serves deterministic synthetic data so the dashboard works
// without a backend. The same symbol always yields the same series.
type DemoFetcher struct {
	Days int
	Now  func() time.Time
}

// NewDemoFetcher creates a demo fetcher producing DefaultDemoDays of history.
func NewDemoFetcher() *DemoFetcher {
	return &DemoFetcher{Days: DefaultDemoDays, Now: time.Now}
}

func (d *DemoFetcher) Name() string { return "demo" }

func (d *DemoFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	if err := ctx.Err(); err != nil {
		return model.Quote{}, &model.NetworkError{Endpoint: EndpointQuote, Err: err}
	}
	points := d.series(symbol)
	last := points[len(points)-1]
	prev := points[len(points)-2]
	change := last.Close.Sub(prev.Close)
	pct := decimal.Zero
	if !prev.Close.IsZero() {
		pct = change.Div(prev.Close).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return model.Quote{
		Symbol:        symbol,
		Price:         last.Close,
		Change:        change,
		ChangePercent: pct,
		Volume:        last.Volume,
		Timestamp:     d.now().UTC().Format(time.RFC3339),
	}, nil
}

func (d *DemoFetcher) FetchChart(ctx context.Context, symbol string) (model.ChartSeries, error) {
	if err := ctx.Err(); err != nil {
		return model.ChartSeries{}, &model.NetworkError{Endpoint: EndpointChart, Err: err}
	}
	return model.ChartSeries{Symbol: symbol, Points: d.series(symbol)}, nil
}

func (d *DemoFetcher) FetchPrediction(ctx context.Context, symbol string) (model.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return model.Prediction{}, &model.NetworkError{Endpoint: EndpointPrediction, Err: err}
	}
	points := d.series(symbol)
	closes := model.ChartSeries{Points: points}.Closes()
	f, err := calculator.PredictNext(closes)
	if err != nil {
		return model.Prediction{}, &model.DecodeError{Endpoint: EndpointPrediction, Err: err}
	}
	return model.Prediction{
		Symbol:         symbol,
		CurrentPrice:   model.Present(points[len(points)-1].Close),
		PredictedPrice: decimal.NewFromFloat(f.Price).Round(2),
		Trend:          model.Trend(f.Trend),
		Confidence:     model.Confidence(f.Confidence),
	}, nil
}

func (d *DemoFetcher) FetchIndicators(ctx context.Context, symbol string) (model.IndicatorSet, error) {
	if err := ctx.Err(); err != nil {
		return model.IndicatorSet{}, &model.NetworkError{Endpoint: EndpointIndicators, Err: err}
	}
	closes := model.ChartSeries{Points: d.series(symbol)}.Closes()
	return model.IndicatorSet{
		Symbol: symbol,
		SMA20:  indicator(calculator.CalculateSMA(closes, 20)),
		SMA50:  indicator(calculator.CalculateSMA(closes, 50)),
		EMA12:  indicator(calculator.CalculateEMA(closes, 12)),
		EMA26:  indicator(calculator.CalculateEMA(closes, 26)),
		RSI:    indicator(calculator.CalculateRSI(closes, 14)),
	}, nil
}

// indicator maps a calculator result to an optional value; any error means "not computable".
func indicator(v float64, err error) decimal.NullDecimal {
	if err != nil {
		return decimal.NullDecimal{}
	}
	return model.Present(decimal.NewFromFloat(v).Round(4))
}

func (d *DemoFetcher) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// series generates a random walk of weekday closes ending at the current day.
func (d *DemoFetcher) series(symbol string) []model.ChartPoint {
	days := d.Days
	if days < 2 {
		days = DefaultDemoDays
	}

	h := fnv.New64a()
	h.Write([]byte(symbol))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	dates := make([]time.Time, days)
	day := d.now()
	for i := days - 1; i >= 0; i-- {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, -1)
		}
		dates[i] = day
		day = day.AddDate(0, 0, -1)
	}

	price := 20 + float64(seed%480)
	points := make([]model.ChartPoint, days)
	for i := range points {
		price *= 1 + rng.NormFloat64()*0.02
		price = math.Max(price, 1)
		points[i] = model.ChartPoint{
			Date:   dates[i].Format("2006-01-02"),
			Close:  decimal.NewFromFloat(price).Round(2),
			Volume: 1_000_000 + rng.Int64N(49_000_000),
		}
	}
	return points
}
