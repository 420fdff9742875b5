package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	families, err := r.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metrics")
	}
}

func TestRecordEvaluation(t *testing.T) {
	r := NewRegistry()

	r.RecordEvaluation("enter")
	r.RecordEvaluation("enter")
	r.RecordEvaluation("avoid")

	if got := testutil.ToFloat64(r.evaluationsTotal.WithLabelValues("enter")); got != 2 {
		t.Errorf("enter count = %f, want 2", got)
	}
	if got := testutil.ToFloat64(r.evaluationsTotal.WithLabelValues("avoid")); got != 1 {
		t.Errorf("avoid count = %f, want 1", got)
	}
}

func TestRecordCollectorError(t *testing.T) {
	r := NewRegistry()

	r.RecordCollectorError()

	if got := testutil.ToFloat64(r.collectorErrors); got != 1 {
		t.Errorf("collector errors = %f, want 1", got)
	}
}

func TestRecordAnalysisDuration(t *testing.T) {
	r := NewRegistry()

	// Histograms have no simple value accessor; just make sure
	// observing doesn't blow up and the family is gathered.
	r.RecordAnalysisDuration(0.5)

	count, err := testutil.GatherAndCount(r, "dualinvest_analysis_duration_seconds")
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 metric family entry, got %d", count)
	}
}
