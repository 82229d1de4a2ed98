package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/muneeb-arif/my-portfolio-sub000/client"
	"github.com/muneeb-arif/my-portfolio-sub000/config"
	"github.com/muneeb-arif/my-portfolio-sub000/fallback"
	"github.com/muneeb-arif/my-portfolio-sub000/progress"
	"github.com/muneeb-arif/my-portfolio-sub000/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	cfg := config.New()
	apiClient := client.New(cfg)
	reporter := progress.NewReporter()
	engine := services.NewEngine(apiClient, fallback.NewDataset(), reporter)

	// Drain progress messages to the console as the engine emits them
	messages, cancelSub := reporter.Subscribe()
	defer cancelSub()
	go func() {
		for msg := range messages {
			switch msg.Type {
			case progress.TypeError:
				log.Error().Msg(msg.Text)
			case progress.TypeWarning:
				log.Warn().Msg(msg.Text)
			default:
				log.Info().Msg(msg.Text)
			}
		}
	}()

	// Cancel the run on SIGINT/SIGTERM; the engine checks between records
	ctx, stop := signalContext()
	defer stop()

	command := "sync"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "sync":
		printSummary(engine.Sync(ctx))

	case "reset":
		printSummary(engine.Reset(ctx))

	case "backup":
		path := "portfolio-backup.json"
		if len(os.Args) > 2 {
			path = os.Args[2]
		}
		doc, err := engine.Backup(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Backup finished with errors")
		}
		if doc == nil {
			os.Exit(1)
		}
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Could not encode backup document")
			os.Exit(1)
		}
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			log.Error().Err(err).Msg("Could not write backup file")
			os.Exit(1)
		}
		log.Info().Str("path", path).Msg("Backup written")

	case "restore":
		if len(os.Args) < 3 {
			fmt.Println("Usage: portfolio restore <backup-file.json>")
			os.Exit(1)
		}
		raw, err := os.ReadFile(os.Args[2])
		if err != nil {
			log.Error().Err(err).Msg("Could not read backup file")
			os.Exit(1)
		}
		summary, err := engine.RestoreFromJSON(ctx, raw)
		if err != nil {
			log.Error().Err(err).Msg("Restore rejected")
			os.Exit(1)
		}
		printSummary(summary)

	case "health":
		if apiClient.CheckHealth(ctx) {
			fmt.Println("Backend is healthy")
		} else {
			fmt.Println("Backend is unavailable; reads will serve fallback data")
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command %q. Commands: sync, backup, restore, reset, health\n", command)
		os.Exit(1)
	}
}

func printSummary(summary *services.Summary) {
	fmt.Printf("%s\n", summary.Message)
	fmt.Printf("  categories:   %d\n", summary.Results.Categories)
	fmt.Printf("  technologies: %d\n", summary.Results.Technologies)
	fmt.Printf("  skills:       %d\n", summary.Results.Skills)
	fmt.Printf("  niches:       %d\n", summary.Results.Niches)
	fmt.Printf("  projects:     %d\n", summary.Results.Projects)
	if !summary.Success {
		os.Exit(1)
	}
}

// signalContext returns a context cancelled by SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()
	return ctx, cancel
}
