package app_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdp7/nexo-dual-investment/internal/analysis"
	"github.com/fdp7/nexo-dual-investment/internal/app"
	"github.com/fdp7/nexo-dual-investment/internal/config"
	"github.com/fdp7/nexo-dual-investment/internal/core"
	"github.com/fdp7/nexo-dual-investment/internal/deal"
	"github.com/fdp7/nexo-dual-investment/internal/metrics"
)

type fakeCollector struct {
	series core.Series
	err    error
	calls  int

	lastSymbol   string
	lastInterval string
	lastLookback int
}

func (f *fakeCollector) Name() string { return "fake" }

func (f *fakeCollector) FetchSeries(ctx context.Context, symbol, interval string, lookbackDays int) (core.Series, error) {
	f.calls++
	f.lastSymbol = symbol
	f.lastInterval = interval
	f.lastLookback = lookbackDays
	return f.series, f.err
}

func syntheticSeries(n int) core.Series {
	rng := rand.New(rand.NewSource(17))
	series := make(core.Series, n)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 1800.0
	for i := range series {
		price *= 1 + 0.005*rng.NormFloat64()
		series[i] = core.Bar{
			Symbol:   "ETH-USD",
			Interval: "1h",
			Open:     price,
			High:     price * 1.01,
			Low:      price * 0.99,
			Close:    price,
			Volume:   1000 + 100*rng.Float64(),
			Time:     base.Add(time.Duration(i) * time.Hour),
		}
	}
	return series
}

func newTestApp(source *fakeCollector, reg *metrics.Registry) *app.App {
	cfg := config.Defaults()
	cfg.Analysis.Simulations = 500
	analyzer := analysis.New(analysis.NewForecaster(rand.NewSource(1)), nil)
	return app.New(cfg, source, analyzer, reg, nil)
}

func validParams() deal.Params {
	return deal.Params{
		Amount:     1000,
		AnnualRate: 57,
		TermDays:   3,
		DealPrice:  1800,
		Symbol:     "ETH-USD",
	}
}

func TestEvaluateDeal_EndToEnd(t *testing.T) {
	source := &fakeCollector{series: syntheticSeries(400)}
	a := newTestApp(source, metrics.NewRegistry())

	evaluation, err := a.EvaluateDeal(context.Background(), validParams(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls, "the series is fetched exactly once")
	assert.Equal(t, "ETH-USD", source.lastSymbol)
	assert.Equal(t, "1h", source.lastInterval)

	assert.NotEmpty(t, evaluation.Report.ID)
	assert.GreaterOrEqual(t, evaluation.Decision.Score, 0.0)
	assert.LessOrEqual(t, evaluation.Decision.Score, evaluation.Decision.MaxScore)
	assert.Contains(t, []core.Action{core.ActionEnter, core.ActionWait, core.ActionAvoid},
		evaluation.Decision.SuggestedAction)

	// The net gain is derived from the forecast base case.
	assert.Equal(t, evaluation.Report.Forecast.Base, evaluation.Gain.PredictedPrice)
}

func TestEvaluateDeal_LookbackFloor(t *testing.T) {
	source := &fakeCollector{series: syntheticSeries(400)}
	a := newTestApp(source, nil)

	// Twice a 3-day term is below the 7-day minimum lookback.
	_, err := a.EvaluateDeal(context.Background(), validParams(), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, source.lastLookback)

	// A 30-day term doubles past the floor.
	p := validParams()
	p.TermDays = 30
	_, err = a.EvaluateDeal(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, 60, source.lastLookback)
}

func TestEvaluateDeal_InvalidParamsSkipFetch(t *testing.T) {
	source := &fakeCollector{series: syntheticSeries(400)}
	a := newTestApp(source, nil)

	p := validParams()
	p.Amount = 0
	_, err := a.EvaluateDeal(context.Background(), p, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
	assert.Zero(t, source.calls, "invalid params must be rejected before any fetch")
}

func TestEvaluateDeal_CollectorFailureIsFatal(t *testing.T) {
	source := &fakeCollector{err: core.WrapError(core.ErrCollectorFailed, errors.New("boom"))}
	a := newTestApp(source, metrics.NewRegistry())

	_, err := a.EvaluateDeal(context.Background(), validParams(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrCollectorFailed))
}

func TestEvaluateDeal_ExplicitCurrentPrice(t *testing.T) {
	source := &fakeCollector{series: syntheticSeries(400)}
	a := newTestApp(source, nil)

	current := 1234.5
	evaluation, err := a.EvaluateDeal(context.Background(), validParams(), &current)
	require.NoError(t, err)

	// The explicit price feeds the scorer; the net gain still uses the
	// forecast base case.
	assert.Equal(t, evaluation.Report.Forecast.Base, evaluation.Gain.PredictedPrice)
}
