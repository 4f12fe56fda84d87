package collector

import (
	"context"

	"StockAnalyzer/internal/model"
)

// Endpoint names used in errors and logs.
const (
	EndpointQuote      = "quote"
	EndpointChart      = "chart"
	EndpointPrediction = "predict"
	EndpointIndicators = "indicators"
)

// Fetcher retrieves the four parts of a snapshot for one symbol.
// Implementations must honour ctx cancellation.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (model.Quote, error)
	FetchChart(ctx context.Context, symbol string) (model.ChartSeries, error)
	FetchPrediction(ctx context.Context, symbol string) (model.Prediction, error)
	FetchIndicators(ctx context.Context, symbol string) (model.IndicatorSet, error)
	Name() string
}
