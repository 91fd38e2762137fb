package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"corpus-audit/internal/config"
	"corpus-audit/internal/env"
	"corpus-audit/internal/fetch"
	"corpus-audit/internal/nameindex"
)

func init() {
	if os.Getenv("RUNNING_IN_DOCKER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found (this is fine in Docker)")
		}
	}
}

func main() {
	var base, out string
	flag.StringVar(&base, "base", env.GetEnvString("MESSAGES_API_BASE", config.DefaultBase), "Base URL of the messages API")
	flag.StringVar(&out, "out", "data/index/names.json", "Path of the index file to write")
	flag.Parse()

	client := fetch.NewClient(base)
	msgs, err := client.FetchAll(context.Background())
	if err != nil {
		log.Fatalf("Failed to fetch messages: %v", err)
	}

	index := nameindex.Build(msgs)
	if err := nameindex.Save(index, out); err != nil {
		log.Fatalf("Failed to save name index: %v", err)
	}
	log.Printf("Built name index for %d users at %s", len(index.Num2ID), out)
}
