package main

import (
	"context"
	"log"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"logbobot/pkg/bot"
	"logbobot/pkg/config"
	"logbobot/pkg/dedup"
	"logbobot/pkg/ledger"
	"logbobot/pkg/misskey"
	"logbobot/pkg/store"
)

func main() {
	// Load config.yml
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load .env for secrets
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	origin := os.Getenv("MISSKEY_URL")
	token := os.Getenv("MISSKEY_TOKEN")

	// Check each required environment variable individually for better error messages
	if origin == "" {
		log.Fatal("Missing required environment variable: MISSKEY_URL")
	}
	if token == "" {
		log.Fatal("Missing required environment variable: MISSKEY_TOKEN")
	}

	originURL, err := url.Parse(origin)
	if err != nil || originURL.Hostname() == "" {
		log.Fatalf("Invalid MISSKEY_URL: %q", origin)
	}
	botHost := originURL.Hostname()
	log.Printf("Bot instance host: %s", botHost)

	// Open the streak ledger store
	ledgerStore, err := store.New(filepath.Join(cfg.Data.Dir, "database.db"))
	if err != nil {
		log.Fatalf("Failed to open ledger store: %v", err)
	}
	defer ledgerStore.Close()

	// Authenticate
	client := misskey.NewClient(origin, token)
	me, err := client.Me(context.Background())
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	log.Printf("Bot user ID: %s", me.ID)

	streakLedger := ledger.New(ledgerStore)
	lock := dedup.New(cfg.DedupWindow())
	handler := bot.NewHandler(client, streakLedger, lock, me.ID, botHost, cfg.Ranking.Limit)

	// Subscribe to the mention and home-timeline channels
	onNote := func(note *misskey.Note, channel string) {
		handler.HandleNote(context.Background(), note, channel)
	}
	stream, err := misskey.Dial(origin, token, onNote, onNote)
	if err != nil {
		log.Fatalf("Failed to open stream: %v", err)
	}
	defer stream.Close()

	go func() {
		if err := stream.Listen(); err != nil {
			log.Printf("Stream closed: %v", err)
		}
	}()

	log.Println("Logbo bot is now running. Press CTRL-C to exit.")

	// Wait for signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
