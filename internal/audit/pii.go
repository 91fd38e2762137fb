package audit

import (
	"regexp"
	"sort"
	"strings"

	"corpus-audit/internal/message"
)

// Heuristic PII patterns. Knowingly approximate: they classify, they do not
// guarantee completeness.
var (
	phoneRe = regexp.MustCompile(`\b(?:\+?\d[\d\s\-()]{7,}\d)\b`)
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	cardRe  = regexp.MustCompile(`(?:\d[ -]?){13,19}`)

	nonDigitRe = regexp.MustCompile(`\D+`)
)

const sharedPhoneMinDigits = 7

// luhnValid runs the mod-10 checksum over a digit-only string. Sequences
// shorter than 13 digits are never card numbers here.
func luhnValid(digits string) bool {
	if len(digits) < 13 {
		return false
	}
	parity := (len(digits) - 2) % 2
	sum := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == parity {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

func detectPII(msgs []message.Record) PIISamples {
	var phones, emails, cards []PIISample
	for _, m := range msgs {
		if phoneRe.MatchString(m.Message) {
			phones = append(phones, PIISample{ID: m.ID, UserID: m.UserID, Snippet: snippet(m.Message)})
		}
		if emailRe.MatchString(m.Message) {
			emails = append(emails, PIISample{ID: m.ID, UserID: m.UserID, Snippet: snippet(m.Message)})
		}
		for _, match := range cardRe.FindAllString(m.Message, -1) {
			digits := nonDigitRe.ReplaceAllString(match, "")
			if len(digits) >= 13 && len(digits) <= 19 && luhnValid(digits) {
				cards = append(cards, PIISample{ID: m.ID, UserID: m.UserID, Snippet: snippet(m.Message)})
				break
			}
		}
	}

	return PIISamples{
		PhoneLike:      capped(phones, phoneSamplesCap),
		EmailLike:      capped(emails, emailSamplesCap),
		CreditCardLike: capped(cards, cardSamplesCap),
	}
}

// detectPIIReuse maps normalized contact identifiers to the distinct users
// mentioning them. The same phone or email behind several member identities
// is a privacy-risk signal.
func detectPIIReuse(msgs []message.Record) PIIReuse {
	phoneUsers := make(map[string]map[string]struct{})
	emailUsers := make(map[string]map[string]struct{})
	var phoneOrder, emailOrder []string

	for _, m := range msgs {
		for _, raw := range phoneRe.FindAllString(m.Message, -1) {
			phone := nonDigitRe.ReplaceAllString(raw, "")
			if _, seen := phoneUsers[phone]; !seen {
				phoneUsers[phone] = make(map[string]struct{})
				phoneOrder = append(phoneOrder, phone)
			}
			phoneUsers[phone][m.UserID] = struct{}{}
		}
		for _, raw := range emailRe.FindAllString(m.Message, -1) {
			email := strings.ToLower(raw)
			if _, seen := emailUsers[email]; !seen {
				emailUsers[email] = make(map[string]struct{})
				emailOrder = append(emailOrder, email)
			}
			emailUsers[email][m.UserID] = struct{}{}
		}
	}

	var sharedPhones []SharedPhone
	for _, phone := range phoneOrder {
		if users := phoneUsers[phone]; len(users) > 1 && len(phone) >= sharedPhoneMinDigits {
			sharedPhones = append(sharedPhones, SharedPhone{Phone: phone, UserCount: len(users)})
		}
	}
	var sharedEmails []SharedEmail
	for _, email := range emailOrder {
		if users := emailUsers[email]; len(users) > 1 {
			sharedEmails = append(sharedEmails, SharedEmail{Email: email, UserCount: len(users)})
		}
	}

	sort.SliceStable(sharedPhones, func(i, j int) bool { return sharedPhones[i].UserCount > sharedPhones[j].UserCount })
	sort.SliceStable(sharedEmails, func(i, j int) bool { return sharedEmails[i].UserCount > sharedEmails[j].UserCount })

	return PIIReuse{
		SharedPhones: capped(sharedPhones, sharedContactsCap),
		SharedEmails: capped(sharedEmails, sharedContactsCap),
	}
}
