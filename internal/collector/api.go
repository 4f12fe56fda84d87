package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"StockAnalyzer/internal/model"
)

const maxErrorBody = 512

// APIFetcher implements Fetcher against the stock analysis REST API.
type APIFetcher struct {
	client *resty.Client
}

// NewAPIFetcher creates a fetcher with optional proxy support.
// The client timeout is a backstop; per-request deadlines come from ctx.
func NewAPIFetcher(baseURL, proxyURL string) *APIFetcher {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &APIFetcher{client: client}
}

func (f *APIFetcher) Name() string { return "api" }

type quotePayload struct {
	Symbol        string           `json:"symbol"`
	Price         *decimal.Decimal `json:"price"`
	Change        *decimal.Decimal `json:"change"`
	ChangePercent *decimal.Decimal `json:"change_percent"`
	Volume        *int64           `json:"volume"`
	Timestamp     string           `json:"timestamp"`
}

type chartPointPayload struct {
	Date   *string          `json:"date"`
	Close  *decimal.Decimal `json:"close"`
	Volume *int64           `json:"volume"`
}

type chartPayload struct {
	Symbol string               `json:"symbol"`
	Data   *[]chartPointPayload `json:"data"`
}

type predictionPayload struct {
	Symbol         string              `json:"symbol"`
	CurrentPrice   decimal.NullDecimal `json:"current_price"`
	PredictedPrice *decimal.Decimal    `json:"predicted_price"`
	Trend          *string             `json:"trend"`
	Confidence     *string             `json:"confidence"`
}

type indicatorsPayload struct {
	Symbol string              `json:"symbol"`
	SMA20  decimal.NullDecimal `json:"sma_20"`
	SMA50  decimal.NullDecimal `json:"sma_50"`
	EMA12  decimal.NullDecimal `json:"ema_12"`
	EMA26  decimal.NullDecimal `json:"ema_26"`
	RSI    decimal.NullDecimal `json:"rsi"`
}

var errMissingField = errors.New("missing required field")

func missing(field string) error { return fmt.Errorf("%w %q", errMissingField, field) }

func (f *APIFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	var p quotePayload
	if err := f.get(ctx, EndpointQuote, "/api/stocks/{symbol}", symbol, &p); err != nil {
		return model.Quote{}, err
	}
	switch {
	case p.Price == nil:
		return model.Quote{}, &model.DecodeError{Endpoint: EndpointQuote, Err: missing("price")}
	case p.Change == nil:
		return model.Quote{}, &model.DecodeError{Endpoint: EndpointQuote, Err: missing("change")}
	case p.ChangePercent == nil:
		return model.Quote{}, &model.DecodeError{Endpoint: EndpointQuote, Err: missing("change_percent")}
	case p.Volume == nil:
		return model.Quote{}, &model.DecodeError{Endpoint: EndpointQuote, Err: missing("volume")}
	case *p.Volume < 0:
		return model.Quote{}, &model.DecodeError{Endpoint: EndpointQuote, Err: fmt.Errorf("negative volume %d", *p.Volume)}
	}
	q := model.Quote{
		Symbol:        p.Symbol,
		Price:         *p.Price,
		Change:        *p.Change,
		ChangePercent: *p.ChangePercent,
		Volume:        *p.Volume,
		Timestamp:     p.Timestamp,
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	return q, nil
}

func (f *APIFetcher) FetchChart(ctx context.Context, symbol string) (model.ChartSeries, error) {
	var p chartPayload
	if err := f.get(ctx, EndpointChart, "/api/stocks/{symbol}/chart", symbol, &p); err != nil {
		return model.ChartSeries{}, err
	}
	if p.Data == nil {
		return model.ChartSeries{}, &model.DecodeError{Endpoint: EndpointChart, Err: missing("data")}
	}
	series := model.ChartSeries{Symbol: p.Symbol, Points: make([]model.ChartPoint, 0, len(*p.Data))}
	for i, pt := range *p.Data {
		if pt.Date == nil || pt.Close == nil {
			return model.ChartSeries{}, &model.DecodeError{
				Endpoint: EndpointChart,
				Err:      fmt.Errorf("point %d: %w", i, missing("date/close")),
			}
		}
		cp := model.ChartPoint{Date: *pt.Date, Close: *pt.Close}
		if pt.Volume != nil {
			cp.Volume = *pt.Volume
		}
		series.Points = append(series.Points, cp)
	}
	return series, nil
}

func (f *APIFetcher) FetchPrediction(ctx context.Context, symbol string) (model.Prediction, error) {
	var p predictionPayload
	if err := f.get(ctx, EndpointPrediction, "/api/stocks/{symbol}/predict", symbol, &p); err != nil {
		return model.Prediction{}, err
	}
	switch {
	case p.PredictedPrice == nil:
		return model.Prediction{}, &model.DecodeError{Endpoint: EndpointPrediction, Err: missing("predicted_price")}
	case p.Trend == nil:
		return model.Prediction{}, &model.DecodeError{Endpoint: EndpointPrediction, Err: missing("trend")}
	case p.Confidence == nil:
		return model.Prediction{}, &model.DecodeError{Endpoint: EndpointPrediction, Err: missing("confidence")}
	}
	trend, err := model.ParseTrend(*p.Trend)
	if err != nil {
		return model.Prediction{}, &model.DecodeError{Endpoint: EndpointPrediction, Err: err}
	}
	conf, err := model.ParseConfidence(*p.Confidence)
	if err != nil {
		return model.Prediction{}, &model.DecodeError{Endpoint: EndpointPrediction, Err: err}
	}
	return model.Prediction{
		Symbol:         p.Symbol,
		CurrentPrice:   p.CurrentPrice,
		PredictedPrice: *p.PredictedPrice,
		Trend:          trend,
		Confidence:     conf,
	}, nil
}

var (
	rsiMin = decimal.Zero
	rsiMax = decimal.NewFromInt(100)
)

func (f *APIFetcher) FetchIndicators(ctx context.Context, symbol string) (model.IndicatorSet, error) {
	var p indicatorsPayload
	if err := f.get(ctx, EndpointIndicators, "/api/stocks/{symbol}/indicators", symbol, &p); err != nil {
		return model.IndicatorSet{}, err
	}
	if p.RSI.Valid && (p.RSI.Decimal.LessThan(rsiMin) || p.RSI.Decimal.GreaterThan(rsiMax)) {
		return model.IndicatorSet{}, &model.DecodeError{
			Endpoint: EndpointIndicators,
			Err:      fmt.Errorf("rsi %s out of range [0, 100]", p.RSI.Decimal),
		}
	}
	return model.IndicatorSet{
		Symbol: p.Symbol,
		SMA20:  p.SMA20,
		SMA50:  p.SMA50,
		EMA12:  p.EMA12,
		EMA26:  p.EMA26,
		RSI:    p.RSI,
	}, nil
}

// get issues one GET and decodes a 2xx body into out. The raw body is
// decoded by hand so malformed payloads surface as DecodeError.
func (f *APIFetcher) get(ctx context.Context, endpoint, path, symbol string, out any) error {
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		Get(path)
	if err != nil {
		return &model.NetworkError{Endpoint: endpoint, Err: err}
	}
	if !resp.IsSuccess() {
		return &model.HTTPError{Endpoint: endpoint, Status: resp.StatusCode(), Body: errorDetail(resp.Body())}
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &model.DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// errorDetail extracts the upstream {"detail": "..."} message, falling back to the raw body.
func errorDetail(body []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &e) == nil && e.Detail != "" {
		return e.Detail
	}
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		n := maxErrorBody
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n]
	}
	return s
}
