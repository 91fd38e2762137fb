package audit

import (
	"sort"

	"corpus-audit/internal/message"
	"corpus-audit/internal/textnorm"
)

func detectDuplicates(msgs []message.Record, groups *Grouping) Duplicates {
	var perUser []UserDuplicates
	for _, uid := range groups.Order {
		counts := make(map[string]int)
		var order []string
		for _, m := range groups.ByUser[uid] {
			key := textnorm.NormalizeText(m.Message)
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}

		var dups []TextCount
		for _, text := range order {
			if counts[text] > 1 {
				dups = append(dups, TextCount{Text: text, Count: counts[text]})
			}
		}
		if len(dups) == 0 {
			continue
		}
		sort.SliceStable(dups, func(i, j int) bool { return dups[i].Count > dups[j].Count })
		perUser = append(perUser, UserDuplicates{
			UserID:   uid,
			Examples: capped(dups, perUserDuplicateTextsCap),
		})
	}

	textUsers := make(map[string]map[string]struct{})
	var textOrder []string
	for _, m := range msgs {
		key := textnorm.NormalizeText(m.Message)
		if _, seen := textUsers[key]; !seen {
			textUsers[key] = make(map[string]struct{})
			textOrder = append(textOrder, key)
		}
		textUsers[key][m.UserID] = struct{}{}
	}

	var crossUser []CrossUserText
	for _, text := range textOrder {
		if text == "" {
			continue
		}
		if users := textUsers[text]; len(users) > 1 {
			crossUser = append(crossUser, CrossUserText{Text: text, UserCount: len(users)})
		}
	}
	sort.SliceStable(crossUser, func(i, j int) bool { return crossUser[i].UserCount > crossUser[j].UserCount })

	idCounts := make(map[string]int)
	var idOrder []string
	for _, m := range msgs {
		if idCounts[m.ID] == 0 {
			idOrder = append(idOrder, m.ID)
		}
		idCounts[m.ID]++
	}

	// An id seen more than once is an upstream ingestion defect, not a user
	// behaviour signal.
	var dupIDs []string
	for _, id := range idOrder {
		if idCounts[id] > 1 {
			dupIDs = append(dupIDs, id)
		}
	}

	return Duplicates{
		PerUserExamples:     capped(perUser, perUserDuplicateUsersCap),
		CrossUserTexts:      capped(crossUser, crossUserDuplicatesCap),
		DuplicateIDCount:    len(dupIDs),
		DuplicateIDExamples: capped(dupIDs, duplicateIDExamplesCap),
	}
}
