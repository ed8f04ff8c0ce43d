package io

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

// Poster sends the party dataset to a server as JSON
type Poster struct {
	URL    string
	Client *http.Client
}

// NewPoster creates a poster for the configured URL
func NewPoster(config *config.IOConfig) *Poster {
	return &Poster{
		URL:    config.PostURL,
		Client: &http.Client{Timeout: config.PostTimeout},
	}
}

// Post sends the dataset; any non-2xx answer is an error
func (p *Poster) Post(ctx context.Context, party *models.Party) error {
	body, err := json.Marshal(party)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post party to %s: status %d", p.URL, resp.StatusCode)
	}
	return nil
}
