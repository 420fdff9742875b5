package analysis

import (
	"math/rand"
	"testing"
)

func constantSeriesForecast(t *testing.T, target float64) Forecast {
	t.Helper()
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 42000
	}
	f := NewForecaster(rand.NewSource(1))
	return f.Forecast(seriesFromCloses(closes), ForecastConfig{
		Days:        30,
		Simulations: 5000,
		Target:      target,
	})
}

func TestForecast_ConstantSeriesIsDeterministic(t *testing.T) {
	fc := constantSeriesForecast(t, 50000)

	// Zero historical variance means sigma is treated as exactly zero:
	// every simulated terminal price equals the starting price.
	if fc.Bull != 42000 || fc.Base != 42000 || fc.Bear != 42000 {
		t.Errorf("expected all scenarios at 42000, got bull=%f base=%f bear=%f", fc.Bull, fc.Base, fc.Bear)
	}
	if fc.DailySigma != 0 {
		t.Errorf("expected sigma 0, got %f", fc.DailySigma)
	}
	if fc.Probability != 0 {
		t.Errorf("target above start: expected probability 0, got %f", fc.Probability)
	}
}

func TestForecast_ConstantSeriesBelowTarget(t *testing.T) {
	fc := constantSeriesForecast(t, 40000)

	if fc.Probability != 100 {
		t.Errorf("target below start: expected probability 100, got %f", fc.Probability)
	}
}

func TestForecast_ZeroTargetAlwaysExceeded(t *testing.T) {
	closes := make([]float64, 100)
	price := 100.0
	rng := rand.New(rand.NewSource(7))
	for i := range closes {
		price *= 1 + 0.01*rng.NormFloat64()
		closes[i] = price
	}

	f := NewForecaster(rand.NewSource(2))
	fc := f.Forecast(seriesFromCloses(closes), ForecastConfig{Days: 10, Simulations: 1000, Target: 0})

	if fc.Probability != 100 {
		t.Errorf("expected probability 100 against target 0, got %f", fc.Probability)
	}
}

func TestForecast_ScenariosOrdered(t *testing.T) {
	closes := make([]float64, 200)
	price := 100.0
	rng := rand.New(rand.NewSource(11))
	for i := range closes {
		price *= 1 + 0.02*rng.NormFloat64()
		closes[i] = price
	}

	f := NewForecaster(rand.NewSource(3))
	fc := f.Forecast(seriesFromCloses(closes), ForecastConfig{Days: 30, Simulations: 2000, Target: price})

	if !(fc.Bear <= fc.Base && fc.Base <= fc.Bull) {
		t.Errorf("scenarios out of order: bear=%f base=%f bull=%f", fc.Bear, fc.Base, fc.Bull)
	}
	if fc.Probability < 0 || fc.Probability > 100 {
		t.Errorf("probability out of range: %f", fc.Probability)
	}
	if fc.DailySigma <= 0 {
		t.Errorf("expected positive sigma, got %f", fc.DailySigma)
	}
}

func TestForecast_SigmaFloor(t *testing.T) {
	// Near-zero but non-zero variance gets clamped to the 1e-4 floor so
	// paths still spread out instead of collapsing onto the start price.
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 42000
	}
	closes[25] = 42000.0001 // a single infinitesimal wiggle

	f := NewForecaster(rand.NewSource(4))
	fc := f.Forecast(seriesFromCloses(closes), ForecastConfig{Days: 30, Simulations: 1000, Target: 42000})

	if fc.DailySigma != 1e-4 {
		t.Errorf("expected clamped sigma 1e-4, got %g", fc.DailySigma)
	}
	if fc.Bull == fc.Bear {
		t.Errorf("expected spread between bull and bear, got both %f", fc.Bull)
	}
}

func TestForecast_SeededRunsAreReproducible(t *testing.T) {
	closes := make([]float64, 100)
	price := 100.0
	rng := rand.New(rand.NewSource(5))
	for i := range closes {
		price *= 1 + 0.01*rng.NormFloat64()
		closes[i] = price
	}
	series := seriesFromCloses(closes)
	cfg := ForecastConfig{Days: 15, Simulations: 500, Target: 100}

	a := NewForecaster(rand.NewSource(99)).Forecast(series, cfg)
	b := NewForecaster(rand.NewSource(99)).Forecast(series, cfg)

	if a != b {
		t.Errorf("same seed produced different forecasts:\n%+v\n%+v", a, b)
	}
}
