package main

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"corpus-audit/internal/message"
)

type Generator struct {
	faker *gofakeit.Faker
	clock time.Time
	msgs  []message.Record
}

func NewGenerator(faker *gofakeit.Faker) *Generator {
	return &Generator{
		faker: faker,
		clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (g *Generator) Messages() []message.Record {
	return g.msgs
}

func (g *Generator) newUser() (string, string) {
	return g.faker.UUID(), g.faker.Name()
}

func (g *Generator) add(userID, userName string, at time.Time, text string) {
	g.msgs = append(g.msgs, message.Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		Timestamp: at.Format(time.RFC3339),
		Message:   text,
	})
}

// advance moves the shared clock forward so users do not all write at the
// same instant.
func (g *Generator) advance(d time.Duration) time.Time {
	g.clock = g.clock.Add(d)
	return g.clock
}

func (g *Generator) chatter() string {
	return g.faker.Sentence(g.faker.Number(4, 12))
}

func (g *Generator) RunNormalUserScenario(count int) {
	uid, name := g.newUser()
	at := g.advance(time.Duration(g.faker.Number(1, 30)) * time.Minute)
	for i := 0; i < count; i++ {
		g.add(uid, name, at, g.chatter())
		// Irregular gaps keep the cadence detector quiet.
		at = at.Add(time.Duration(g.faker.Number(45, 7200)) * time.Second)
	}
}

func (g *Generator) RunBotCadenceScenario(count int) {
	uid, name := g.newUser()
	at := g.advance(5 * time.Minute)
	for i := 0; i < count; i++ {
		g.add(uid, name, at, g.chatter())
		at = at.Add(60 * time.Second)
	}
}

func (g *Generator) RunMultiNameScenario() {
	uid := g.faker.UUID()
	at := g.advance(10 * time.Minute)
	g.add(uid, "Zoé Laurent", at, g.chatter())
	g.add(uid, "Zoe Laurent", at.Add(2*time.Hour), g.chatter())
	g.add(uid, "zoe laurent", at.Add(4*time.Hour), g.chatter())
}

func (g *Generator) RunNameCollisionScenario() {
	shared := "Alex Kim"
	at := g.advance(15 * time.Minute)
	g.add(g.faker.UUID(), shared, at, g.chatter())
	g.add(g.faker.UUID(), shared, at.Add(30*time.Minute), g.chatter())
}

func (g *Generator) RunCorruptedEncodingScenario() {
	uid := g.faker.UUID()
	at := g.advance(20 * time.Minute)
	g.add(uid, "J�rgen Meyer", at, "The caf� on the corner was closed �")
	g.add(uid, "J�rgen Meyer", at.Add(time.Hour), g.chatter())
}

func (g *Generator) RunPIIScenario() {
	uid, name := g.newUser()
	at := g.advance(25 * time.Minute)
	g.add(uid, name, at, fmt.Sprintf("Call me at %s when the table is ready", "+1 415 555 0199"))
	g.add(uid, name, at.Add(10*time.Minute), fmt.Sprintf("Send the invoice to %s please", g.faker.Email()))
	g.add(uid, name, at.Add(20*time.Minute), "Use card 4111 1111 1111 1111 for the deposit")
}

func (g *Generator) RunSharedContactScenario() {
	phone := "+44 20 7946 0958"
	email := "concierge@example.com"
	at := g.advance(30 * time.Minute)

	uidA, nameA := g.newUser()
	g.add(uidA, nameA, at, fmt.Sprintf("Reach me on %s or %s", phone, email))

	uidB, nameB := g.newUser()
	g.add(uidB, nameB, at.Add(45*time.Minute), fmt.Sprintf("Best number for me is %s, email %s", phone, email))
}

func (g *Generator) RunContradictionScenario() {
	uid, name := g.newUser()
	at := g.advance(35 * time.Minute)
	g.add(uid, name, at, "For flights I always prefer aisle seats")
	g.add(uid, name, at.Add(time.Hour), "Actually on long-haul I prefer window seats")
	g.add(uid, name, at.Add(2*time.Hour), "Dinner in Paris on 2031-05-20, can't wait")
	g.add(uid, name, at.Add(3*time.Hour), "Meeting in Tokyo on 2031-05-20 in the morning")
}

func (g *Generator) RunLanguageShiftScenario() {
	uid, name := g.newUser()
	at := g.advance(40 * time.Minute)
	g.add(uid, name, at, "明日の予約をお願いします、ありがとうございます")
	g.add(uid, name, at.Add(time.Hour), "Please confirm the booking for tomorrow, thank you")
}

// RunBrokenRecordsScenario injects the integrity defects: duplicate texts,
// duplicated and malformed ids, unparsable and far-off timestamps, missing
// fields.
func (g *Generator) RunBrokenRecordsScenario() {
	uid, name := g.newUser()
	at := g.advance(45 * time.Minute)

	// Per-user and cross-user duplicate text, case/space variants.
	g.add(uid, name, at, "Hello there")
	g.add(uid, name, at.Add(5*time.Minute), "hello   there")
	other, otherName := g.newUser()
	g.add(other, otherName, at.Add(10*time.Minute), "Hello there")

	// Same message id twice: upstream ingestion duplication.
	dup := message.Record{
		ID:        uuid.NewString(),
		UserID:    uid,
		UserName:  name,
		Timestamp: at.Add(15 * time.Minute).Format(time.RFC3339),
		Message:   g.chatter(),
	}
	g.msgs = append(g.msgs, dup, dup)

	g.msgs = append(g.msgs,
		message.Record{
			ID:        "not-a-uuid",
			UserID:    uid,
			UserName:  name,
			Timestamp: "yesterday at noon",
			Message:   g.chatter(),
		},
		message.Record{
			ID:        uuid.NewString(),
			UserID:    uid,
			UserName:  name,
			Timestamp: "2005-06-01T12:00:00Z",
			Message:   g.chatter(),
		},
		message.Record{
			ID:        uuid.NewString(),
			UserID:    uid,
			UserName:  name,
			Timestamp: time.Now().UTC().AddDate(2, 0, 0).Format(time.RFC3339),
			Message:   g.chatter(),
		},
		message.Record{
			ID:        uuid.NewString(),
			UserID:    "",
			UserName:  "",
			Timestamp: "",
			Message:   "",
		},
	)
}
