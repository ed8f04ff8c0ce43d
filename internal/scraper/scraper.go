package scraper

import (
	"context"

	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/internal/extraction"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

// Page is the game page the party is scraped from
type Page interface {
	// Candidates returns the characters offered by the discovery list, or
	// models.ErrNoDiscoverySource when the list is missing.
	Candidates(ctx context.Context) ([]models.Candidate, error)
	// Roster returns the character entries currently listed on the page
	Roster(ctx context.Context) ([]models.RosterEntry, error)
	// Activate opens the candidate's sheet. It does not wait for the sheet.
	Activate(ctx context.Context, c models.Candidate) error
	// View returns the candidate's rendered sheet, or nil when the sheet is
	// not available yet.
	View(ctx context.Context, c models.Candidate) (*extraction.View, error)
	Close()
}

// New creates a page based on the configuration
func New(ctx context.Context, config *config.AppConfig) (Page, error) {
	if config.Browser.Enabled {
		page, err := NewBrowserPage(ctx, config)
		if err != nil {
			return nil, err
		}
		return page, nil
	}
	page, err := NewHTTPPage(config)
	if err != nil {
		return nil, err
	}
	return page, nil
}
