package audit

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus-audit/internal/message"
)

func cadenceCorpus(uid string, start time.Time, gaps []time.Duration) []message.Record {
	msgs := []message.Record{rec("m0", uid, "Bot", start.Format(time.RFC3339), "tick")}
	at := start
	for i, gap := range gaps {
		at = at.Add(gap)
		msgs = append(msgs, rec(fmt.Sprintf("m%d", i+1), uid, "Bot", at.Format(time.RFC3339), "tick"))
	}
	return msgs
}

func TestDetectCadenceFlagsUniformGaps(t *testing.T) {
	gaps := make([]time.Duration, 9)
	for i := range gaps {
		gaps[i] = 60 * time.Second
	}
	msgs := cadenceCorpus("u1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), gaps)

	cadence := detectCadence(GroupByUser(msgs))

	require.Len(t, cadence.SuspiciousUsers, 1)
	finding := cadence.SuspiciousUsers[0]
	assert.Equal(t, "u1", finding.UserID)
	assert.Equal(t, 60.0, finding.MeanGapSec)
	assert.Equal(t, 0.0, finding.CV)
	assert.Equal(t, 9, finding.Samples)
}

func TestDetectCadenceIgnoresIrregularGaps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	gaps := make([]time.Duration, 9)
	for i := range gaps {
		gaps[i] = time.Duration(1+rng.Intn(10000)) * time.Second
	}
	msgs := cadenceCorpus("u1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), gaps)

	cadence := detectCadence(GroupByUser(msgs))
	assert.Empty(t, cadence.SuspiciousUsers)
}

func TestDetectCadenceRequiresEnoughParsedTimestamps(t *testing.T) {
	gaps := make([]time.Duration, 9)
	for i := range gaps {
		gaps[i] = 60 * time.Second
	}
	msgs := cadenceCorpus("u1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), gaps)
	// Corrupt enough timestamps to drop below the minimum sample size.
	for i := 0; i < 3; i++ {
		msgs[i].Timestamp = "broken"
	}

	cadence := detectCadence(GroupByUser(msgs))
	assert.Empty(t, cadence.SuspiciousUsers)
}

func TestDetectCadenceSkipsSmallGroups(t *testing.T) {
	gaps := []time.Duration{60 * time.Second, 60 * time.Second, 60 * time.Second}
	msgs := cadenceCorpus("u1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), gaps)

	cadence := detectCadence(GroupByUser(msgs))
	assert.Empty(t, cadence.SuspiciousUsers)
}

func TestDetectCadenceIgnoresHugeMeanGaps(t *testing.T) {
	gaps := make([]time.Duration, 9)
	for i := range gaps {
		gaps[i] = 48 * time.Hour
	}
	msgs := cadenceCorpus("u1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), gaps)

	cadence := detectCadence(GroupByUser(msgs))
	assert.Empty(t, cadence.SuspiciousUsers, "mean gap above one day is not bot-like")
}
