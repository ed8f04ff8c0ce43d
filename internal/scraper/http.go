package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/internal/extraction"
	"github.com/williampepple1/party-sheet-scraper/internal/proxy"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

var errNotFound = errors.New("document not found")

// HTTPPage reads a saved snapshot of the game page: an index document with
// the discovery list and roster, and one sheet document per character.
// The base URL may use http, https or file.
type HTTPPage struct {
	Config *config.AppConfig
	Proxy  *proxy.Manager

	client    *http.Client
	transport *http.Transport

	mu        sync.Mutex
	activated map[string]bool
}

// NewHTTPPage creates a snapshot page for the configured base URL
func NewHTTPPage(cfg *config.AppConfig) (*HTTPPage, error) {
	if cfg.Source.BaseURL == "" {
		return nil, fmt.Errorf("snapshot mode needs a source base URL")
	}

	transport := &http.Transport{}
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	page := &HTTPPage{
		Config:    cfg,
		Proxy:     proxy.NewManager(&cfg.Proxies),
		transport: transport,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Source.Timeout,
		},
		activated: make(map[string]bool),
	}

	// Add proxy if enabled
	if page.Proxy.Enabled() {
		used, err := page.Proxy.ApplyToTransport(transport)
		if err != nil {
			return nil, fmt.Errorf("apply proxy: %w", err)
		}
		log.Printf("Using proxy %s", used)
	}
	return page, nil
}

func (s *HTTPPage) Candidates(ctx context.Context) ([]models.Candidate, error) {
	doc, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	return extraction.ParseCandidates(doc)
}

func (s *HTTPPage) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	doc, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	return extraction.ParseRoster(doc), nil
}

// Activate records the candidate; snapshot sheets are always rendered
func (s *HTTPPage) Activate(_ context.Context, c models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activated[c.ID] = true
	return nil
}

// View fetches the candidate's current sheet on every call, so each poll
// sees the latest snapshot. A missing sheet or a candidate that was never
// activated yields no view.
func (s *HTTPPage) View(ctx context.Context, c models.Candidate) (*extraction.View, error) {
	s.mu.Lock()
	active := s.activated[c.ID]
	s.mu.Unlock()
	if !active {
		return nil, nil
	}

	body, err := s.get(ctx, fmt.Sprintf(s.Config.Source.SheetPath, url.PathEscape(c.ID)))
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return extraction.ParseView(bytes.NewReader(body))
}

func (s *HTTPPage) Close() {
	s.transport.CloseIdleConnections()
}

// index fetches the index document, retrying with a growing delay
func (s *HTTPPage) index(ctx context.Context) (*goquery.Document, error) {
	var lastErr error
	maxRetries := s.Config.Source.MaxRetries

	for retries := 0; retries <= maxRetries; retries++ {
		if retries > 0 {
			// Wait before retrying
			retryWait := s.Config.Source.RetryDelay * time.Duration(retries)
			log.Printf("Retrying index after %v (attempt %d/%d): %v", retryWait, retries, maxRetries, lastErr)
			select {
			case <-time.After(retryWait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			// Rotate proxy if enabled
			if s.Proxy.Enabled() && s.Config.Proxies.Rotate && len(s.Config.Proxies.List) > 1 {
				if used, err := s.Proxy.ApplyToTransport(s.transport); err == nil {
					log.Printf("Switched to proxy %s", used)
				}
			}
		}

		body, err := s.get(ctx, s.Config.Source.IndexPath)
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("index %s: %w", s.Config.Source.IndexPath, models.ErrNoDiscoverySource)
		}
		if err != nil {
			lastErr = err
			continue
		}
		return goquery.NewDocumentFromReader(bytes.NewReader(body))
	}
	return nil, fmt.Errorf("fetch index: %w", lastErr)
}

func (s *HTTPPage) get(ctx context.Context, path string) ([]byte, error) {
	target, err := url.JoinPath(s.Config.Source.BaseURL, path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	// Set a random user agent if available
	if agents := s.Config.Source.UserAgents; len(agents) > 0 {
		req.Header.Set("User-Agent", agents[rand.Intn(len(agents))])
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("received non-200 status code %d from %s", resp.StatusCode, target)
	}
	return io.ReadAll(resp.Body)
}
