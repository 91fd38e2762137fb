package audit

import (
	"sort"
	"strings"

	"corpus-audit/internal/message"
	"corpus-audit/internal/textnorm"
)

func detectNameAnomalies(msgs []message.Record, groups *Grouping) Names {
	var multiName []MultiNameUser
	for _, uid := range groups.Order {
		distinct := make(map[string]struct{})
		for _, m := range groups.ByUser[uid] {
			if m.UserName != "" {
				distinct[m.UserName] = struct{}{}
			}
		}
		if len(distinct) > 1 {
			names := make([]string, 0, len(distinct))
			for n := range distinct {
				names = append(names, n)
			}
			sort.Strings(names)
			multiName = append(multiName, MultiNameUser{UserID: uid, Names: names})
		}
	}

	fullNameIDs := make(map[string]map[string]struct{})
	firstNameIDs := make(map[string]map[string]struct{})
	var fullOrder, firstOrder []string
	for _, m := range msgs {
		if m.UserName == "" {
			continue
		}
		if _, seen := fullNameIDs[m.UserName]; !seen {
			fullNameIDs[m.UserName] = make(map[string]struct{})
			fullOrder = append(fullOrder, m.UserName)
		}
		fullNameIDs[m.UserName][m.UserID] = struct{}{}

		normalized := textnorm.NormalizeName(m.UserName)
		if normalized == "" {
			continue
		}
		first := strings.SplitN(normalized, " ", 2)[0]
		if _, seen := firstNameIDs[first]; !seen {
			firstNameIDs[first] = make(map[string]struct{})
			firstOrder = append(firstOrder, first)
		}
		firstNameIDs[first][m.UserID] = struct{}{}
	}

	var fullCollisions []FullNameCollision
	for _, name := range fullOrder {
		ids := fullNameIDs[name]
		if len(ids) <= 1 {
			continue
		}
		sorted := make([]string, 0, len(ids))
		for id := range ids {
			sorted = append(sorted, id)
		}
		sort.Strings(sorted)
		fullCollisions = append(fullCollisions, FullNameCollision{UserName: name, UserIDs: sorted})
	}

	var firstCollisions []FirstNameCollision
	for _, first := range firstOrder {
		if ids := firstNameIDs[first]; len(ids) > 1 {
			firstCollisions = append(firstCollisions, FirstNameCollision{First: first, UserCount: len(ids)})
		}
	}
	sort.SliceStable(firstCollisions, func(i, j int) bool {
		return firstCollisions[i].UserCount > firstCollisions[j].UserCount
	})

	return Names{
		MultiNameUserCount:    len(multiName),
		MultiNameUserExamples: capped(multiName, multiNameExamplesCap),
		FullNameCollisions:    len(fullCollisions),
		FullNameExamples:      capped(fullCollisions, fullNameCollisionsCap),
		FirstNameCollisions:   capped(firstCollisions, firstNameCollisionsCap),
	}
}
