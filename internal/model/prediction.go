package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Trend is the categorical direction of a prediction.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// ParseTrend maps an upstream trend label to a Trend.
func ParseTrend(s string) (Trend, error) {
	switch t := Trend(strings.ToLower(strings.TrimSpace(s))); t {
	case TrendBullish, TrendBearish, TrendNeutral:
		return t, nil
	default:
		return "", fmt.Errorf("unknown trend %q", s)
	}
}

// Confidence is the upstream model's self-reported confidence.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ParseConfidence maps a confidence label to a Confidence, ignoring case.
func ParseConfidence(s string) (Confidence, error) {
	switch c := Confidence(strings.ToLower(strings.TrimSpace(s))); c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return c, nil
	default:
		return "", fmt.Errorf("unknown confidence %q", s)
	}
}

// Title returns the label with its first letter upper-cased ("medium" -> "Medium").
func (c Confidence) Title() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Prediction is the next-day forecast produced by the upstream service.
type Prediction struct {
	Symbol         string              `json:"symbol"`
	CurrentPrice   decimal.NullDecimal `json:"current_price"`
	PredictedPrice decimal.Decimal     `json:"predicted_price"`
	Trend          Trend               `json:"trend"`
	Confidence     Confidence          `json:"confidence"`
}
