// corpusgen writes a synthetic chat corpus with every anomaly category the
// audit engine detects injected by scenario, so a full pipeline run can be
// exercised without the live API.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/brianvoe/gofakeit/v7"

	"corpus-audit/internal/message"
)

func main() {
	var users, seed int
	var out string
	flag.IntVar(&users, "users", 12, "Number of ordinary chat users to simulate")
	flag.StringVar(&out, "out", "corpus.json", "Path of the corpus file to write")
	flag.IntVar(&seed, "seed", 123, "Faker seed")
	flag.Parse()

	faker := gofakeit.New(uint64(seed))
	g := NewGenerator(faker)

	for i := 0; i < users; i++ {
		g.RunNormalUserScenario(8 + faker.Number(0, 6))
	}
	g.RunBotCadenceScenario(10)
	g.RunMultiNameScenario()
	g.RunNameCollisionScenario()
	g.RunCorruptedEncodingScenario()
	g.RunPIIScenario()
	g.RunSharedContactScenario()
	g.RunContradictionScenario()
	g.RunLanguageShiftScenario()
	g.RunBrokenRecordsScenario()

	msgs := g.Messages()
	page := message.Page{Total: len(msgs), Items: msgs}

	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", out, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(page); err != nil {
		log.Fatalf("Failed to write corpus: %v", err)
	}

	log.Printf("Wrote %d messages to %s", len(msgs), out)
}
