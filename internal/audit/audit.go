// Package audit is the analysis engine: a set of independent, stateless
// detectors that each scan one normalized corpus snapshot and surface one
// category of anomaly. The engine only classifies and counts, it never
// mutates the corpus, and given the same corpus in the same order it
// produces byte-identical reports.
package audit

import (
	"sync"
	"time"

	"corpus-audit/internal/message"
)

// Analyze runs every detector over the corpus and assembles the report.
// Detectors share the grouping but have no data dependency on each other,
// so each runs in its own goroutine writing a distinct report section; the
// assembler is the barrier. The evaluation clock is a parameter because
// far-future detection and yearless date candidates depend on it.
//
// An empty corpus is valid degenerate input and yields an all-zero report.
func Analyze(msgs []message.Record, now time.Time) Report {
	groups := GroupByUser(msgs)

	var report Report
	var wg sync.WaitGroup
	section := func(fill func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fill()
		}()
	}

	section(func() { report.Totals, report.TopWords = summarizeLexical(msgs, groups) })
	section(func() { report.Names = detectNameAnomalies(msgs, groups) })
	section(func() { report.Encoding = detectEncodingAnomalies(msgs) })
	section(func() { report.Timestamps = detectTimestampAnomalies(groups, now) })
	section(func() { report.Duplicates = detectDuplicates(msgs, groups) })
	section(func() { report.PIISamples = detectPII(msgs) })
	section(func() { report.Integrity = checkIntegrity(msgs) })
	section(func() { report.PIICrossUserReuse = detectPIIReuse(msgs) })
	section(func() { report.Contradictions = detectContradictions(groups, now) })
	section(func() { report.Cadence = detectCadence(groups) })
	section(func() { report.Language = detectLanguageShift(groups) })

	wg.Wait()
	return report
}
