package audit

import (
	"sort"
	"strings"
	"unicode/utf8"

	"corpus-audit/internal/message"
	"corpus-audit/internal/textnorm"
)

var stopwords = buildStopwords("a an the is are was were am i you he she it we they of to in on for with and or as at by from that this these those what when how many does do did have has had my me your our their")

func buildStopwords(list string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(list) {
		words[w] = struct{}{}
	}
	return words
}

// summarizeLexical produces the corpus totals and the stopword-filtered top
// words. Ties between equal counts break by ascending word text so the
// ranking is reproducible.
func summarizeLexical(msgs []message.Record, groups *Grouping) (Totals, []WordCount) {
	totals := Totals{Messages: len(msgs), Users: len(groups.ByUser)}

	var lengthSum int
	for i, m := range msgs {
		length := utf8.RuneCountInString(m.Message)
		lengthSum += length
		if i == 0 || length < totals.MinMessageLength {
			totals.MinMessageLength = length
		}
		if length > totals.MaxMessageLength {
			totals.MaxMessageLength = length
		}
	}
	if len(msgs) > 0 {
		totals.AvgMessageLength = roundTo(float64(lengthSum)/float64(len(msgs)), 2)
	}

	counts := make(map[string]int)
	var order []string
	for _, m := range msgs {
		for _, word := range strings.Fields(textnorm.NormalizeText(m.Message)) {
			if _, stop := stopwords[word]; stop {
				continue
			}
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	topWords := make([]WordCount, 0, len(order))
	for _, word := range order {
		topWords = append(topWords, WordCount{Word: word, Count: counts[word]})
	}
	sort.Slice(topWords, func(i, j int) bool {
		if topWords[i].Count != topWords[j].Count {
			return topWords[i].Count > topWords[j].Count
		}
		return topWords[i].Word < topWords[j].Word
	})

	return totals, capped(topWords, topWordsCap)
}
