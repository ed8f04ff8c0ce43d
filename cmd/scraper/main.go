package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/internal/io"
	"github.com/williampepple1/party-sheet-scraper/internal/scraper"
	"github.com/williampepple1/party-sheet-scraper/internal/store"
	"github.com/williampepple1/party-sheet-scraper/internal/worker"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	envFile := flag.String("env", ".env", "Optional .env file with PARTY_SCRAPER_* overrides")
	sourceURL := flag.String("source", "", "Base URL (http, https or file) of a saved game page snapshot")
	enableBrowser := flag.Bool("browser", false, "Scrape a live game page in Chrome")
	remoteURL := flag.String("remote", "", "DevTools URL of a running Chrome with the game open")
	gameURL := flag.String("game", "", "Game page URL to open when launching Chrome")
	outputFile := flag.String("output", "party.json", "File to save the party to")
	outputFormat := flag.String("format", "json", "Output format (json or xlsx)")
	postURL := flag.String("post", "", "URL to POST the party JSON to")
	storePath := flag.String("store", "", "sqlite file to archive the run in")
	interval := flag.Duration("interval", config.DefaultPollInterval, "Delay between sheet readiness checks")
	attempts := flag.Int("attempts", config.DefaultPollAttempts, "Readiness checks before a sheet times out")
	minInputs := flag.Int("min-inputs", config.DefaultMinInputs, "Inputs a sheet needs before it counts as loaded")
	validateFile := flag.String("validate", "", "Validate an exported party JSON file and exit")
	showLatest := flag.Bool("latest", false, "Print the latest archived run from -store and exit")
	flag.Parse()

	// Load configuration
	var appConfig *config.AppConfig
	if *configFile != "" {
		var err error
		appConfig, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("Error loading configuration: %v", err)
		}
		fmt.Printf("Loaded configuration from %s\n", *configFile)
	} else {
		appConfig = config.CreateDefault(*sourceURL, *enableBrowser, *remoteURL, *outputFile, *outputFormat,
			*interval, *attempts, *minInputs)
	}

	// Override config with command-line flags if provided
	if *sourceURL != "" {
		appConfig.Source.BaseURL = *sourceURL
	}
	if *remoteURL != "" {
		appConfig.Browser.RemoteURL = *remoteURL
		appConfig.Browser.Enabled = true
	}
	if *gameURL != "" {
		appConfig.Browser.GameURL = *gameURL
	}
	if *postURL != "" {
		appConfig.IO.PostURL = *postURL
	}
	if *storePath != "" {
		appConfig.Store.Path = *storePath
		appConfig.Store.Enabled = true
	}
	if err := appConfig.ApplyEnv(*envFile); err != nil {
		log.Fatalf("Error loading %s: %v", *envFile, err)
	}

	if *validateFile != "" {
		validate(appConfig, *validateFile)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *showLatest {
		printLatest(ctx, appConfig)
		return
	}

	fmt.Println("Party Sheet Scraper Starting...")

	page, err := scraper.New(ctx, appConfig)
	if err != nil {
		log.Fatalf("Error opening game page: %v", err)
	}
	defer page.Close()

	runner := worker.NewRunner(appConfig, page, completionHook(appConfig))

	start := time.Now()
	party, err := runner.Run(ctx)
	if err != nil && party == nil {
		log.Fatalf("Scrape failed: %v", err)
	}

	fmt.Printf("Scraped %d character(s) in %v\n", party.Len(), time.Since(start).Round(time.Millisecond))
	for _, c := range party.Characters() {
		fmt.Printf("  %s: %s %s (level %s)\n", c.CharID, c.CharName, c.Info.Class, c.Info.Level)
	}
	if err != nil {
		log.Fatalf("Error exporting party: %v", err)
	}
	fmt.Printf("Party saved to %s\n", appConfig.IO.OutputFile)
}

// completionHook assembles the configured export sinks
func completionHook(cfg *config.AppConfig) worker.Hook {
	resultWriter := io.NewResultWriter(&cfg.IO)
	hooks := []worker.Hook{
		func(_ context.Context, party *models.Party) error {
			return resultWriter.SaveToFile(party)
		},
	}

	if cfg.IO.PostURL != "" {
		poster := io.NewPoster(&cfg.IO)
		hooks = append(hooks, func(ctx context.Context, party *models.Party) error {
			if err := poster.Post(ctx, party); err != nil {
				return err
			}
			fmt.Printf("Party posted to %s\n", cfg.IO.PostURL)
			return nil
		})
	}

	if cfg.Store.Enabled {
		hooks = append(hooks, func(ctx context.Context, party *models.Party) error {
			archive, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer archive.Close()

			runID, err := archive.SaveRun(ctx, party)
			if err != nil {
				return err
			}
			fmt.Printf("Run %s archived in %s\n", runID, cfg.Store.Path)
			return nil
		})
	}

	return worker.Chain(hooks...)
}

func validate(cfg *config.AppConfig, filename string) {
	party, err := io.NewPartyReader(&cfg.IO).ReadFromFile(filename)
	if err != nil {
		log.Fatalf("Invalid party file %s: %v", filename, err)
	}
	fmt.Printf("%s holds %d character(s)\n", filename, party.Len())
	for _, c := range party.Characters() {
		fmt.Printf("  %s: %s\n", c.CharID, c.CharName)
	}
}

func printLatest(ctx context.Context, cfg *config.AppConfig) {
	archive, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Error opening archive: %v", err)
	}
	defer archive.Close()

	run, party, err := archive.LatestRun(ctx)
	if err != nil {
		log.Fatalf("Error reading archive: %v", err)
	}
	data, err := json.MarshalIndent(party, "", "  ")
	if err != nil {
		log.Fatalf("Error encoding party: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Run %s finished %s with %d character(s)\n",
		run.ID, run.FinishedAt.Format(time.RFC3339), run.CharacterCount)
	fmt.Println(string(data))
}
