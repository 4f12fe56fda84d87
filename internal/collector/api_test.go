package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"StockAnalyzer/internal/model"
)

type apiFixture struct {
	quote, chart, predict, indicators string
	status                            map[string]int
}

func newAPIServer(t *testing.T, fx apiFixture) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handle := func(pattern, endpoint, body string) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if code, ok := fx.status[endpoint]; ok {
				w.WriteHeader(code)
			}
			w.Write([]byte(body))
		})
	}
	handle("GET /api/stocks/{symbol}", EndpointQuote, fx.quote)
	handle("GET /api/stocks/{symbol}/chart", EndpointChart, fx.chart)
	handle("GET /api/stocks/{symbol}/predict", EndpointPrediction, fx.predict)
	handle("GET /api/stocks/{symbol}/indicators", EndpointIndicators, fx.indicators)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func goodFixture() apiFixture {
	return apiFixture{
		quote:      `{"symbol":"AAPL","price":187.42,"change":1.25,"change_percent":0.67,"volume":52345678,"timestamp":"2024-05-01T16:00:00"}`,
		chart:      `{"symbol":"AAPL","data":[{"date":"2024-04-29","close":185.1,"volume":100},{"date":"2024-04-30","close":186.17}]}`,
		predict:    `{"symbol":"AAPL","current_price":187.42,"predicted_price":189.1,"trend":"bullish","confidence":"Medium"}`,
		indicators: `{"symbol":"AAPL","sma_20":183.5,"sma_50":180.25,"ema_12":184.9,"ema_26":null,"rsi":62.3}`,
	}
}

func TestAPIFetcherDecodes(t *testing.T) {
	srv := newAPIServer(t, goodFixture())
	f := NewAPIFetcher(srv.URL+"/", "")
	ctx := context.Background()

	q, err := f.FetchQuote(ctx, "AAPL")
	if err != nil {
		t.Fatalf("FetchQuote: %v", err)
	}
	if q.Price.String() != "187.42" || q.Volume != 52345678 {
		t.Errorf("quote = %+v", q)
	}

	c, err := f.FetchChart(ctx, "AAPL")
	if err != nil {
		t.Fatalf("FetchChart: %v", err)
	}
	if c.Len() != 2 || c.Points[0].Date != "2024-04-29" || c.Points[1].Volume != 0 {
		t.Errorf("chart = %+v", c)
	}

	p, err := f.FetchPrediction(ctx, "AAPL")
	if err != nil {
		t.Fatalf("FetchPrediction: %v", err)
	}
	if p.Trend != model.TrendBullish || p.Confidence != model.ConfidenceMedium || !p.CurrentPrice.Valid {
		t.Errorf("prediction = %+v", p)
	}

	ind, err := f.FetchIndicators(ctx, "AAPL")
	if err != nil {
		t.Fatalf("FetchIndicators: %v", err)
	}
	if ind.EMA26.Valid {
		t.Error("null ema_26 must decode as absent")
	}
	if !ind.SMA20.Valid || !ind.RSI.Valid {
		t.Error("present indicators must decode as valid")
	}
}

func TestAPIFetcherHTTPError(t *testing.T) {
	fx := goodFixture()
	fx.indicators = `{"detail":"Insufficient data for indicators"}`
	fx.status = map[string]int{EndpointIndicators: http.StatusNotFound}
	srv := newAPIServer(t, fx)

	_, err := NewAPIFetcher(srv.URL, "").FetchIndicators(context.Background(), "AAPL")
	var he *model.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", he.Status)
	}
	if he.Body != "Insufficient data for indicators" {
		t.Errorf("body = %q", he.Body)
	}
}

func TestErrorDetailTruncatesOnRuneBoundary(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"short body kept", "bad gateway", len("bad gateway")},
		{"ascii cut at limit", strings.Repeat("a", maxErrorBody+10), maxErrorBody},
		{"rune straddling limit dropped", strings.Repeat("a", maxErrorBody-1) + "é" + "tail", maxErrorBody - 1},
		{"multibyte runes", strings.Repeat("€", maxErrorBody), maxErrorBody - maxErrorBody%3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorDetail([]byte(tt.body))
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncated body is not valid UTF-8: %q", got[len(got)-4:])
			}
		})
	}
}

func TestAPIFetcherDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		patch func(*apiFixture)
		call  func(*APIFetcher) error
	}{
		{
			name:  "malformed quote",
			patch: func(fx *apiFixture) { fx.quote = `{"price":` },
			call:  func(f *APIFetcher) error { _, err := f.FetchQuote(context.Background(), "AAPL"); return err },
		},
		{
			name:  "missing price",
			patch: func(fx *apiFixture) { fx.quote = `{"symbol":"AAPL","change":1,"change_percent":1,"volume":1}` },
			call:  func(f *APIFetcher) error { _, err := f.FetchQuote(context.Background(), "AAPL"); return err },
		},
		{
			name:  "missing chart data",
			patch: func(fx *apiFixture) { fx.chart = `{"symbol":"AAPL"}` },
			call:  func(f *APIFetcher) error { _, err := f.FetchChart(context.Background(), "AAPL"); return err },
		},
		{
			name:  "unknown trend",
			patch: func(fx *apiFixture) { fx.predict = `{"predicted_price":1,"trend":"sideways","confidence":"low"}` },
			call:  func(f *APIFetcher) error { _, err := f.FetchPrediction(context.Background(), "AAPL"); return err },
		},
		{
			name:  "rsi out of range",
			patch: func(fx *apiFixture) { fx.indicators = `{"rsi":150}` },
			call:  func(f *APIFetcher) error { _, err := f.FetchIndicators(context.Background(), "AAPL"); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := goodFixture()
			tt.patch(&fx)
			srv := newAPIServer(t, fx)
			err := tt.call(NewAPIFetcher(srv.URL, ""))
			var de *model.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
		})
	}
}

func TestAPIFetcherNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAPIFetcher(url, "").FetchQuote(context.Background(), "AAPL")
	var ne *model.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}
