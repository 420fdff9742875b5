package analysis

import (
	"github.com/fdp7/nexo-dual-investment/internal/core"
)

// spikeWindow is how many recent bars the spike detector scans.
const spikeWindow = 10

// VolumeProfile compares recent volume to its trailing moving average.
// Both percentages may be negative; degenerate averages yield 0.
type VolumeProfile struct {
	AboveAveragePct float64 // latest volume vs its moving average
	SpikePct        float64 // recent max volume vs recent average of the MA
}

// AnalyzeVolume computes the moving-average comparison over the last
// window bars, using a sub-window of window/3 for the moving average.
func AnalyzeVolume(series core.Series, window int) VolumeProfile {
	vols := tail(series.Volumes(), window)
	if len(vols) == 0 {
		return VolumeProfile{}
	}
	sub := window / 3
	if sub < 1 {
		sub = 1
	}

	// Rolling MA aligned with vols: ma[i] covers vols[i-sub+1 .. i],
	// NaN-free by leaving positions without a full window unset.
	ma := make([]float64, len(vols))
	valid := make([]bool, len(vols))
	var sum float64
	for i, v := range vols {
		sum += v
		if i >= sub {
			sum -= vols[i-sub]
		}
		if i >= sub-1 {
			ma[i] = sum / float64(sub)
			valid[i] = true
		}
	}

	var profile VolumeProfile

	current := vols[len(vols)-1]
	if valid[len(vols)-1] && ma[len(vols)-1] > 0 {
		currentMA := ma[len(vols)-1]
		profile.AboveAveragePct = 100 * (current - currentMA) / currentMA
	}

	start := len(vols) - spikeWindow
	if start < 0 {
		start = 0
	}
	var maxVol, maSum float64
	maCount := 0
	for i := start; i < len(vols); i++ {
		if vols[i] > maxVol {
			maxVol = vols[i]
		}
		if valid[i] {
			maSum += ma[i]
			maCount++
		}
	}
	if maCount > 0 {
		maMean := maSum / float64(maCount)
		if maMean > 0 {
			profile.SpikePct = 100 * (maxVol - maMean) / maMean
		}
	}

	return profile
}
