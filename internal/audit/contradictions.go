package audit

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"corpus-audit/internal/textnorm"
)

const (
	prefAisle  = "prefer aisle"
	prefWindow = "prefer window"
)

// cityGazetteer is matched as a normalized substring against message text.
// A fixed list is deliberately crude; it can be swapped for a richer source
// without touching the report shape.
var cityGazetteer = []string{
	"amsterdam", "bangkok", "barcelona", "berlin", "dubai", "hong kong",
	"london", "los angeles", "milan", "monaco", "monte carlo", "new york",
	"nyc", "paris", "prague", "rome", "san francisco", "seoul", "serengeti",
	"singapore", "sydney", "tokyo", "venice", "vienna",
}

var (
	isoDateRe   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	slashDateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	monthDateRe = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,\s*(\d{4}))?\b`)
)

var monthIndex = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// parseSlashDate reads D/M/Y-style candidates month-first, swapping to
// day-first when the leading field cannot be a month. Two-digit years below
// 70 land in 20xx.
func parseSlashDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(parts[0])
	day, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])

	if month > 12 && day <= 12 {
		month, day = day, month
	}
	if year < 100 {
		if year < 70 {
			year += 2000
		} else {
			year += 1900
		}
	}
	return makeDate(year, time.Month(month), day)
}

// extractDates pulls calendar dates out of free text via the three pattern
// families and returns them as ISO strings, deduplicated in match order.
// Month-name candidates with no year resolve against the evaluation clock.
func extractDates(text string, now time.Time) []string {
	var found []string
	seen := make(map[string]struct{})
	add := func(t time.Time) {
		iso := t.Format("2006-01-02")
		if _, dup := seen[iso]; dup {
			return
		}
		seen[iso] = struct{}{}
		found = append(found, iso)
	}

	for _, candidate := range isoDateRe.FindAllString(text, -1) {
		if t, err := time.Parse("2006-01-02", candidate); err == nil {
			add(t)
		}
	}
	for _, candidate := range slashDateRe.FindAllString(text, -1) {
		if t, ok := parseSlashDate(candidate); ok {
			add(t)
		}
	}
	for _, groupsMatch := range monthDateRe.FindAllStringSubmatch(text, -1) {
		month := monthIndex[strings.ToLower(groupsMatch[1])]
		day, _ := strconv.Atoi(groupsMatch[2])
		year := now.Year()
		if groupsMatch[3] != "" {
			year, _ = strconv.Atoi(groupsMatch[3])
		}
		if t, ok := makeDate(year, month, day); ok {
			add(t)
		}
	}

	return found
}

func extractCities(text string) []string {
	normalized := textnorm.NormalizeText(text)
	var hits []string
	for _, city := range cityGazetteer {
		if strings.Contains(normalized, city) {
			hits = append(hits, city)
		}
	}
	return hits
}

func detectContradictions(groups *Grouping, now time.Time) Contradictions {
	var flips []SeatPreferenceFlip
	var multiCity []MultiCityDay

	for _, uid := range groups.Order {
		aisle := false
		window := false
		dateCities := make(map[string]map[string]struct{})
		var dateOrder []string

		for _, m := range groups.ByUser[uid] {
			text := strings.ToLower(m.Message)
			if strings.Contains(text, prefAisle) {
				aisle = true
			}
			if strings.Contains(text, prefWindow) {
				window = true
			}

			dates := extractDates(text, now)
			if len(dates) == 0 {
				continue
			}
			cities := extractCities(text)
			for _, date := range dates {
				if _, seen := dateCities[date]; !seen {
					dateCities[date] = make(map[string]struct{})
					dateOrder = append(dateOrder, date)
				}
				for _, city := range cities {
					dateCities[date][city] = struct{}{}
				}
			}
		}

		if aisle && window {
			flips = append(flips, SeatPreferenceFlip{UserID: uid, Type: "seat_preference_flip"})
		}
		for _, date := range dateOrder {
			cities := dateCities[date]
			if len(cities) <= 1 {
				continue
			}
			sorted := make([]string, 0, len(cities))
			for city := range cities {
				sorted = append(sorted, city)
			}
			sort.Strings(sorted)
			multiCity = append(multiCity, MultiCityDay{UserID: uid, Date: date, Cities: sorted})
		}
	}

	return Contradictions{
		SeatPreferenceFlips: capped(flips, contradictionsCap),
		SameDayMultiCity:    capped(multiCity, contradictionsCap),
	}
}
