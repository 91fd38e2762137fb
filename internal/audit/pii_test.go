package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus-audit/internal/message"
)

func TestLuhnValid(t *testing.T) {
	assert.True(t, luhnValid("4111111111111111"))
	// One interior digit incremented breaks the checksum.
	assert.False(t, luhnValid("4111111121111111"))
	assert.False(t, luhnValid("411111111111"), "fewer than 13 digits")
}

func TestLuhnKnownNumbers(t *testing.T) {
	valid := []string{
		"4111111111111111",
		"5500005555555559",
		"340000000000009",
	}
	for _, num := range valid {
		assert.True(t, luhnValid(num), num)
	}
}

func TestDetectPIISamples(t *testing.T) {
	msgs := []message.Record{
		rec("m1", "u1", "A", "2024-01-01T00:00:00Z", "call me at +1 415 555 0199 tomorrow"),
		rec("m2", "u2", "B", "2024-01-01T00:00:00Z", "mail bob.smith@example.co.uk about it"),
		rec("m3", "u3", "C", "2024-01-01T00:00:00Z", "card 4111 1111 1111 1111 exp 12/30"),
		rec("m4", "u4", "D", "2024-01-01T00:00:00Z", "sequence 1234 5678 9012 3456 is not a valid card"),
		rec("m5", "u5", "E", "2024-01-01T00:00:00Z", "nothing sensitive here"),
	}

	pii := detectPII(msgs)

	require.Len(t, pii.EmailLike, 1)
	assert.Equal(t, "m2", pii.EmailLike[0].ID)

	require.Len(t, pii.CreditCardLike, 1)
	assert.Equal(t, "m3", pii.CreditCardLike[0].ID)

	require.NotEmpty(t, pii.PhoneLike)
	assert.Equal(t, "m1", pii.PhoneLike[0].ID)
}

func TestDetectPIISnippetLength(t *testing.T) {
	long := "reach me on 0123456789 "
	for len(long) < 500 {
		long += "padding words here "
	}
	msgs := []message.Record{rec("m1", "u1", "A", "", long)}

	pii := detectPII(msgs)
	require.Len(t, pii.PhoneLike, 1)
	assert.Len(t, []rune(pii.PhoneLike[0].Snippet), 160)
}

func TestDetectPIIReuseSharedPhone(t *testing.T) {
	msgs := []message.Record{
		rec("m1", "u1", "A", "", "my number is +44 20 7946 0958"),
		rec("m2", "u2", "B", "", "call +44 20 7946 0958 and ask for me"),
		rec("m3", "u3", "C", "", "private line 0700 000 0001, do not share"),
	}

	reuse := detectPIIReuse(msgs)

	require.Len(t, reuse.SharedPhones, 1)
	assert.Equal(t, "442079460958", reuse.SharedPhones[0].Phone)
	assert.Equal(t, 2, reuse.SharedPhones[0].UserCount)
}

func TestDetectPIIReuseSharedEmailCaseInsensitive(t *testing.T) {
	msgs := []message.Record{
		rec("m1", "u1", "A", "", "write to Concierge@Example.com"),
		rec("m2", "u2", "B", "", "forwarded to concierge@example.com already"),
	}

	reuse := detectPIIReuse(msgs)

	require.Len(t, reuse.SharedEmails, 1)
	assert.Equal(t, "concierge@example.com", reuse.SharedEmails[0].Email)
	assert.Equal(t, 2, reuse.SharedEmails[0].UserCount)
}

func TestDetectPIIReuseSingleUserNotFlagged(t *testing.T) {
	msgs := []message.Record{
		rec("m1", "u1", "A", "", "my number is 0123 456 7890"),
		rec("m2", "u1", "A", "", "again: 0123 456 7890"),
	}

	reuse := detectPIIReuse(msgs)
	assert.Empty(t, reuse.SharedPhones)
}
