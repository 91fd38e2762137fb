package audit

import "time"

const (
	farFutureWindow = 365 * 24 * time.Hour
	farPastYear     = 2010
)

// Accepted ISO-8601 shapes. RFC3339Nano covers the trailing-Z and explicit
// offset forms; the rest parse naive timestamps as UTC. Fractional seconds
// are optional in every layout.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// detectTimestampAnomalies walks each group in its lexicographic order and
// compares every parsed instant against the running maximum, which flags
// exactly the groups whose parsed sequence is not non-decreasing.
// Unparsable timestamps become count increments, never failures.
func detectTimestampAnomalies(groups *Grouping, now time.Time) Timestamps {
	var ts Timestamps
	farFuture := now.Add(farFutureWindow)

	for _, uid := range groups.Order {
		var maxSeen time.Time
		seenAny := false
		outOfOrder := false

		for _, m := range groups.ByUser[uid] {
			t, ok := parseTimestamp(m.Timestamp)
			if !ok {
				ts.Unparsable++
				continue
			}
			if t.After(farFuture) {
				ts.FarFuture++
			}
			if t.Year() < farPastYear {
				ts.FarPast++
			}
			if seenAny && t.Before(maxSeen) {
				outOfOrder = true
			}
			if !seenAny || t.After(maxSeen) {
				maxSeen = t
			}
			seenAny = true
		}

		if outOfOrder {
			ts.OutOfOrderUserCount++
		}
	}

	return ts
}
