package audit

import (
	"sort"
	"strings"

	"corpus-audit/internal/message"
)

// replacementChar marks upstream decoding failures.
const replacementChar = "�"

func detectEncodingAnomalies(msgs []message.Record) Encoding {
	badNames := make(map[string]struct{})
	var badSamples []BadMessageSample
	for _, m := range msgs {
		if strings.Contains(m.UserName, replacementChar) {
			badNames[m.UserName] = struct{}{}
		}
		if strings.Contains(m.Message, replacementChar) && len(badSamples) < badMessageSamplesCap {
			badSamples = append(badSamples, BadMessageSample{
				ID:       m.ID,
				UserID:   m.UserID,
				UserName: m.UserName,
				Snippet:  snippet(m.Message),
			})
		}
	}

	names := make([]string, 0, len(badNames))
	for n := range badNames {
		names = append(names, n)
	}
	sort.Strings(names)

	return Encoding{
		BadNameCount:      len(names),
		BadNameExamples:   capped(names, badNameExamplesCap),
		SampleBadMessages: capped(badSamples, badMessageSamplesCap),
	}
}
