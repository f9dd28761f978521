package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"iprep/internal/abuseipdb"
	"iprep/internal/config"
	"iprep/internal/geolite"
	"iprep/internal/ipresolver"
	"iprep/internal/report"
)

const apiKeyEnv = "ABUSEIPDB_API_KEY"

// ErrMissingAPIKey indicates that no AbuseIPDB credential was configured.
var ErrMissingAPIKey = errors.New("app: " + apiKeyEnv + " is not set")

// Run performs one reputation check: discover the public IP, look it up on
// AbuseIPDB, render the report and write it to disk. A user interrupt aborts
// the run and returns nil so the process exits cleanly.
func Run() error {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found. Falling back to system environment variables.")
	}

	log.Info("IP Reputation Checker")
	log.Info("Powered by AbuseIPDB")

	cfg := config.ReadSettings()

	apiKey := strings.TrimSpace(os.Getenv(apiKeyEnv))
	if apiKey == "" {
		log.Error(apiKeyEnv + " not found in environment or .env file")
		log.Warn("Create a .env file next to the binary with:")
		log.Warn("  " + apiKeyEnv + "=your_api_key_here")
		return ErrMissingAPIKey
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("Getting your current IP address...")
	resolver := ipresolver.New(cfg.Resolver.URL, cfg.ResolverTimeout())
	ipAddress, err := resolver.CurrentIP(ctx)
	if err != nil {
		if cancelled(ctx) {
			return reportCancelled()
		}
		return fmt.Errorf("resolve current IP: %w", err)
	}
	log.Infof("Your IP: %s", ipAddress)

	log.Info("Checking IP reputation against threat database...")
	client := abuseipdb.New(cfg.AbuseIPDB.URL, apiKey, int(cfg.AbuseIPDB.MaxAgeInDays), cfg.LookupTimeout())
	record, err := client.Check(ctx, ipAddress)
	checkedAt := time.Now().Format("2006-01-02 15:04:05")

	switch {
	case errors.Is(err, abuseipdb.ErrNoData):
		// The lookup answered without a usable payload. A minimal report
		// is still written, but the run counts as failed.
		text := report.Render(ipAddress, nil, checkedAt, nil)
		if path, werr := report.Write(cfg.Output.Folder, cfg.Output.Filename, text); werr != nil {
			log.Error("Error saving file", "error", werr)
		} else {
			log.Infof("Results saved to %s", path)
		}
		log.Error("Failed to retrieve reputation data")
		return err
	case err != nil:
		if cancelled(ctx) {
			return reportCancelled()
		}
		return fmt.Errorf("check IP reputation: %w", err)
	}

	var geo *geolite.Info
	if info, ok := geolite.Lookup(cfg.GeoLite.DataDir, ipAddress); ok {
		geo = info
	}

	text := report.Render(ipAddress, record, checkedAt, geo)
	path, err := report.Write(cfg.Output.Folder, cfg.Output.Filename, text)
	if err != nil {
		log.Error("Error saving file", "error", err)
		return fmt.Errorf("save report: %w", err)
	}
	log.Infof("Results saved to %s", path)

	return nil
}

func cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}

func reportCancelled() error {
	log.Warn("Operation cancelled by user")
	return nil
}
