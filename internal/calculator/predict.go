package calculator

// Forecast is a next-day price estimate with a coarse trend label.
type Forecast struct {
	Price      float64
	Trend      string
	Confidence string
}

// minForecastPoints is the shortest series a regression is fitted to.
const minForecastPoints = 10

// PredictNext fits a least-squares line through the closes and extrapolates
// one step. The trend comes from the change over the last five closes:
// beyond +/-1% is bullish/bearish with medium confidence, otherwise neutral/low.
// Short series return the last close, neutral, low.
func PredictNext(prices []float64) (Forecast, error) {
	if len(prices) == 0 {
		return Forecast{}, ErrInsufficientData
	}
	last := prices[len(prices)-1]
	if len(prices) < minForecastPoints {
		return Forecast{Price: last, Trend: "neutral", Confidence: "low"}, nil
	}

	n := float64(len(prices))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range prices {
		x := float64(i)
		sumX += x
		sumY += p
		sumXY += x * p
		sumXX += x * x
	}
	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / n
	f := Forecast{Price: intercept + slope*n}

	base := prices[len(prices)-5]
	recent := 0.0
	if base != 0 {
		recent = (last - base) / base * 100
	}
	switch {
	case recent > 1:
		f.Trend, f.Confidence = "bullish", "medium"
	case recent < -1:
		f.Trend, f.Confidence = "bearish", "medium"
	default:
		f.Trend, f.Confidence = "neutral", "low"
	}
	return f, nil
}
