package model

// Snapshot is the four-part result of one fetch batch for one symbol.
// It is only ever built from a fully settled, fully successful batch.
type Snapshot struct {
	Seq        uint64
	Symbol     string
	Quote      Quote
	Chart      ChartSeries
	Prediction Prediction
	Indicators IndicatorSet
}
