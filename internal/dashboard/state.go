package dashboard

import (
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/view"
)

// Kind is the dashboard state tag.
type Kind int

const (
	Idle Kind = iota
	Loading
	Loaded
	Failed
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is what a renderer draws from. Snapshot and View are set only when
// Kind is Loaded; Reason only when Kind is Failed. The pointed-to values are
// never modified after a state is published.
type State struct {
	Kind     Kind
	Symbol   string
	Snapshot *model.Snapshot
	View     *view.DisplayModel
	Reason   string
}

// FailureMessage is the single user-facing notice for a failed load.
func FailureMessage(symbol string) string {
	return "Failed to load data for " + symbol
}
