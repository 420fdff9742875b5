package core

import "time"

// Bar represents one OHLCV candlestick.
type Bar struct {
	Symbol   string
	Interval string // "1m", "5m", "1h", "1d"
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
	Time     time.Time
}

// Series is a chronologically ordered sequence of bars for one
// symbol/interval. Every consumer treats it as immutable.
type Series []Bar

// IsOrdered reports whether timestamps are strictly increasing.
func (s Series) IsOrdered() bool {
	for i := 1; i < len(s); i++ {
		if !s[i].Time.After(s[i-1].Time) {
			return false
		}
	}
	return true
}

// Closes extracts the closing prices in order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Lows extracts the low prices in order.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the traded volumes in order.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}
	return out
}

// LastClose returns the most recent closing price, or 0 for an empty series.
func (s Series) LastClose() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Close
}

// Action is the suggested move for a proposed deal.
type Action string

const (
	ActionEnter Action = "enter"
	ActionWait  Action = "wait"
	ActionAvoid Action = "avoid"
)

// Divergence classifies price/oscillator disagreement.
type Divergence string

const (
	DivergencePositive Divergence = "positive"
	DivergenceNegative Divergence = "negative"
	DivergenceNone     Divergence = "none"
)
