package audit

import (
	"math"
	"sort"
	"time"
)

const (
	cadenceMinMessages = 8
	cadenceMinMeanGap  = 10.0
	cadenceMaxMeanGap  = 86400.0
	cadenceMaxCV       = 0.08
)

// detectCadence flags users whose inter-message gaps are mechanically
// regular. Parsed instants are re-sorted chronologically here, independent
// of the group's raw-string order, so the gaps are real durations. The
// coefficient of variation of the gaps is the regularity signal: below 0.08
// with a mean gap between 10s and one day reads as bot-like.
func detectCadence(groups *Grouping) Cadence {
	var findings []CadenceFinding

	for _, uid := range groups.Order {
		records := groups.ByUser[uid]
		if len(records) < cadenceMinMessages {
			continue
		}

		var times []time.Time
		for _, m := range records {
			if t, ok := parseTimestamp(m.Timestamp); ok {
				times = append(times, t)
			}
		}
		if len(times) < cadenceMinMessages {
			continue
		}
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

		gaps := make([]float64, 0, len(times)-1)
		for i := 1; i < len(times); i++ {
			gaps = append(gaps, times[i].Sub(times[i-1]).Seconds())
		}

		var sum float64
		for _, g := range gaps {
			sum += g
		}
		mean := sum / float64(len(gaps))

		// Population variance: divide by the count, not count-1.
		var variance float64
		for _, g := range gaps {
			variance += (g - mean) * (g - mean)
		}
		variance /= float64(len(gaps))
		std := math.Sqrt(variance)

		cv := 0.0
		if mean > 0 {
			cv = std / mean
		}

		if mean >= cadenceMinMeanGap && mean <= cadenceMaxMeanGap && cv < cadenceMaxCV {
			findings = append(findings, CadenceFinding{
				UserID:     uid,
				MeanGapSec: roundTo(mean, 1),
				CV:         roundTo(cv, 4),
				Samples:    len(gaps),
			})
		}
	}

	// Most suspicious first.
	sort.SliceStable(findings, func(i, j int) bool { return findings[i].CV < findings[j].CV })

	return Cadence{SuspiciousUsers: capped(findings, cadenceFindingsCap)}
}
