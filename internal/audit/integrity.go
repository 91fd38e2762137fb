package audit

import (
	"regexp"

	"corpus-audit/internal/message"
)

// Permissive UUID shape: hex and hyphens, 32-36 characters. Catches garbage
// ids without rejecting legitimate hyphenation variants.
var uuidShapeRe = regexp.MustCompile(`^[0-9a-fA-F-]{32,36}$`)

func checkIntegrity(msgs []message.Record) Integrity {
	var result Integrity
	for _, m := range msgs {
		if !uuidShapeRe.MatchString(m.UserID) {
			result.InvalidUserIDCount++
		}
		if !uuidShapeRe.MatchString(m.ID) {
			result.InvalidMessageIDCount++
		}
		if m.UserID == "" {
			result.MissingFields.UserID++
		}
		if m.UserName == "" {
			result.MissingFields.UserName++
		}
		if m.Timestamp == "" {
			result.MissingFields.Timestamp++
		}
		if m.Message == "" {
			result.MissingFields.Message++
		}
	}
	return result
}
