package core

import (
	"testing"
	"time"
)

func testSeries() Series {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return Series{
		{Symbol: "ETH-USD", Close: 100, Low: 99, Volume: 10, Time: base},
		{Symbol: "ETH-USD", Close: 110, Low: 105, Volume: 20, Time: base.Add(time.Hour)},
		{Symbol: "ETH-USD", Close: 105, Low: 101, Volume: 30, Time: base.Add(2 * time.Hour)},
	}
}

func TestSeries_IsOrdered(t *testing.T) {
	s := testSeries()
	if !s.IsOrdered() {
		t.Error("expected ordered series")
	}

	s[2].Time = s[0].Time // duplicate timestamp
	if s.IsOrdered() {
		t.Error("expected unordered series after duplicating a timestamp")
	}
}

func TestSeries_Extractors(t *testing.T) {
	s := testSeries()

	closes := s.Closes()
	if len(closes) != 3 || closes[1] != 110 {
		t.Errorf("Closes() = %v", closes)
	}

	lows := s.Lows()
	if len(lows) != 3 || lows[0] != 99 {
		t.Errorf("Lows() = %v", lows)
	}

	vols := s.Volumes()
	if len(vols) != 3 || vols[2] != 30 {
		t.Errorf("Volumes() = %v", vols)
	}
}

func TestSeries_LastClose(t *testing.T) {
	if got := testSeries().LastClose(); got != 105 {
		t.Errorf("LastClose() = %f, want 105", got)
	}
	if got := (Series{}).LastClose(); got != 0 {
		t.Errorf("LastClose() on empty = %f, want 0", got)
	}
}
