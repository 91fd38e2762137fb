package audit

import (
	"sort"

	"corpus-audit/internal/message"
)

// Grouping partitions the corpus by user id. Order holds user ids in
// first-seen corpus order so every detector walks users deterministically.
type Grouping struct {
	Order  []string
	ByUser map[string][]message.Record
}

// GroupByUser sorts each user's records ascending by the raw timestamp
// string. The lexicographic sort is only chronologically correct while all
// timestamps share one fixed-width ISO-8601 representation; mixed formats
// silently skew the out-of-order walk, so the cadence detector re-sorts
// parsed instants on its own. Ties keep their original relative order. An
// empty user id forms its own group rather than being dropped.
func GroupByUser(msgs []message.Record) *Grouping {
	g := &Grouping{ByUser: make(map[string][]message.Record)}
	for _, m := range msgs {
		if _, seen := g.ByUser[m.UserID]; !seen {
			g.Order = append(g.Order, m.UserID)
		}
		g.ByUser[m.UserID] = append(g.ByUser[m.UserID], m)
	}

	for _, records := range g.ByUser {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Timestamp < records[j].Timestamp
		})
	}

	return g
}
