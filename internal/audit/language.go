package audit

import "unicode/utf8"

const (
	scriptShiftMinBelow = 0.6
	scriptShiftMaxAbove = 0.95
)

func asciiRatio(s string) float64 {
	total := utf8.RuneCountInString(s)
	if total == 0 {
		return 0
	}
	ascii := 0
	for _, r := range s {
		if r < 128 {
			ascii++
		}
	}
	return float64(ascii) / float64(total)
}

// detectLanguageShift uses the ASCII ratio as a coarse script signal: a user
// whose messages swing from heavily non-ASCII to purely ASCII at different
// points in the timeline gets flagged.
func detectLanguageShift(groups *Grouping) Language {
	var shifts []ScriptShift

	for _, uid := range groups.Order {
		minRatio, maxRatio := 0.0, 0.0
		seenAny := false
		for _, m := range groups.ByUser[uid] {
			if m.Message == "" {
				continue
			}
			ratio := asciiRatio(m.Message)
			if !seenAny {
				minRatio, maxRatio = ratio, ratio
				seenAny = true
				continue
			}
			if ratio < minRatio {
				minRatio = ratio
			}
			if ratio > maxRatio {
				maxRatio = ratio
			}
		}
		if !seenAny {
			continue
		}
		if minRatio < scriptShiftMinBelow && maxRatio > scriptShiftMaxAbove {
			shifts = append(shifts, ScriptShift{
				UserID:        uid,
				MinASCIIRatio: roundTo(minRatio, 3),
				MaxASCIIRatio: roundTo(maxRatio, 3),
			})
		}
	}

	return Language{ScriptShiftUsers: capped(shifts, languageShiftCap)}
}
