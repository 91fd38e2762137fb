package audit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus-audit/internal/message"
)

func sampleCorpus() []message.Record {
	return []message.Record{
		rec("6f1c9f7e-0000-4000-8000-000000000001", "0b2d4c6e-0000-4000-8000-0000000000aa", "Alex Kim", "2024-01-01T10:00:00Z", "Booked a table, call me at +1 415 555 0199"),
		rec("6f1c9f7e-0000-4000-8000-000000000002", "0b2d4c6e-0000-4000-8000-0000000000aa", "Alex Kim", "2024-01-02T10:00:00Z", "Hello there"),
		rec("6f1c9f7e-0000-4000-8000-000000000003", "0b2d4c6e-0000-4000-8000-0000000000bb", "Alex Kim", "2024-01-01T11:00:00Z", "hello   there"),
		rec("not-a-uuid", "0b2d4c6e-0000-4000-8000-0000000000cc", "J�rgen", "broken-timestamp", "the caf� was closed �"),
		rec("6f1c9f7e-0000-4000-8000-000000000005", "", "", "", ""),
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	corpus := sampleCorpus()

	var first, second bytes.Buffer
	require.NoError(t, Analyze(corpus, evalTime).WriteJSON(&first))
	require.NoError(t, Analyze(corpus, evalTime).WriteJSON(&second))

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	report := Analyze(nil, evalTime)

	assert.Equal(t, 0, report.Totals.Messages)
	assert.Equal(t, 0, report.Totals.Users)
	assert.Equal(t, 0.0, report.Totals.AvgMessageLength)
	assert.Empty(t, report.TopWords)
	assert.Empty(t, report.Names.MultiNameUserExamples)
	assert.Empty(t, report.Cadence.SuspiciousUsers)

	// Empty categories serialize as [] rather than null.
	var out bytes.Buffer
	require.NoError(t, report.WriteJSON(&out))
	assert.NotContains(t, out.String(), "null")
}

func TestAnalyzeReportSections(t *testing.T) {
	report := Analyze(sampleCorpus(), evalTime)

	assert.Equal(t, 5, report.Totals.Messages)
	assert.Equal(t, 4, report.Totals.Users)

	// Two distinct users share the exact display name.
	require.Len(t, report.Names.FullNameExamples, 1)
	assert.Equal(t, "Alex Kim", report.Names.FullNameExamples[0].UserName)
	assert.Len(t, report.Names.FullNameExamples[0].UserIDs, 2)

	assert.Equal(t, 1, report.Encoding.BadNameCount)
	assert.Contains(t, report.Encoding.BadNameExamples, "J�rgen")
	require.Len(t, report.Encoding.SampleBadMessages, 1)
	assert.Equal(t, "not-a-uuid", report.Encoding.SampleBadMessages[0].ID)

	assert.Equal(t, 2, report.Timestamps.Unparsable, "the broken and the empty timestamp")

	require.Len(t, report.Duplicates.CrossUserTexts, 1)
	assert.Equal(t, "hello there", report.Duplicates.CrossUserTexts[0].Text)

	require.Len(t, report.PIISamples.PhoneLike, 1)

	assert.Equal(t, 1, report.Integrity.InvalidMessageIDCount)
	assert.Equal(t, 1, report.Integrity.InvalidUserIDCount, "empty user_id fails the uuid shape")
	assert.Equal(t, 1, report.Integrity.MissingFields.UserID)
	assert.Equal(t, 1, report.Integrity.MissingFields.UserName)
	assert.Equal(t, 1, report.Integrity.MissingFields.Timestamp)
	assert.Equal(t, 1, report.Integrity.MissingFields.Message)
}

func TestAnalyzePreservesNonASCIIInJSON(t *testing.T) {
	corpus := []message.Record{
		rec("m1", "u1", "Zoé", "2024-01-01T00:00:00Z", "café & croissants <3"),
		rec("m2", "u1", "Zoe", "2024-01-02T00:00:00Z", "plain"),
	}

	var out bytes.Buffer
	require.NoError(t, Analyze(corpus, evalTime).WriteJSON(&out))

	assert.Contains(t, out.String(), "Zoé")
	assert.NotContains(t, out.String(), "\\u00e9")
	assert.NotContains(t, out.String(), "\\u0026", "HTML escaping must stay off")
}

func TestDetectLanguageShift(t *testing.T) {
	msgs := []message.Record{
		rec("m1", "u1", "A", "2024-01-01T00:00:00Z", "明日の予約をお願いします"),
		rec("m2", "u1", "A", "2024-01-02T00:00:00Z", "please confirm the booking"),
		rec("m3", "u2", "B", "2024-01-01T00:00:00Z", "always plain ascii"),
		rec("m4", "u2", "B", "2024-01-02T00:00:00Z", "still plain ascii"),
	}

	language := detectLanguageShift(GroupByUser(msgs))

	require.Len(t, language.ScriptShiftUsers, 1)
	shift := language.ScriptShiftUsers[0]
	assert.Equal(t, "u1", shift.UserID)
	assert.Less(t, shift.MinASCIIRatio, 0.6)
	assert.Greater(t, shift.MaxASCIIRatio, 0.95)
}

func TestDetectLanguageShiftIgnoresEmptyMessages(t *testing.T) {
	msgs := []message.Record{
		rec("m1", "u1", "A", "2024-01-01T00:00:00Z", ""),
		rec("m2", "u1", "A", "2024-01-02T00:00:00Z", "ascii only"),
	}

	language := detectLanguageShift(GroupByUser(msgs))
	assert.Empty(t, language.ScriptShiftUsers)
}

func TestSummarizeLexical(t *testing.T) {
	msgs := []message.Record{
		rec("m1", "u1", "A", "", "the booking for tomorrow"),
		rec("m2", "u2", "B", "", "booking confirmed"),
		rec("m3", "u2", "B", "", ""),
	}

	totals, topWords := summarizeLexical(msgs, GroupByUser(msgs))

	assert.Equal(t, 3, totals.Messages)
	assert.Equal(t, 2, totals.Users)
	assert.Equal(t, 0, totals.MinMessageLength)
	assert.Equal(t, 24, totals.MaxMessageLength)
	assert.Equal(t, 13.67, totals.AvgMessageLength)

	require.NotEmpty(t, topWords)
	assert.Equal(t, WordCount{Word: "booking", Count: 2}, topWords[0])
	for _, wc := range topWords {
		assert.NotEqual(t, "the", wc.Word, "stopwords are filtered")
		assert.NotEqual(t, "for", wc.Word, "stopwords are filtered")
	}
}

func TestSummarizeLexicalTieBreakAscending(t *testing.T) {
	msgs := []message.Record{
		rec("m1", "u1", "A", "", "zebra apple"),
	}

	_, topWords := summarizeLexical(msgs, GroupByUser(msgs))

	require.Len(t, topWords, 2)
	assert.Equal(t, "apple", topWords[0].Word)
	assert.Equal(t, "zebra", topWords[1].Word)
}

func TestSnippetTruncatesRunes(t *testing.T) {
	long := strings.Repeat("é", 200)
	assert.Equal(t, 160, len([]rune(snippet(long))))
	assert.Equal(t, "short", snippet("short"))
}
