package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/internal/extraction"
	"github.com/williampepple1/party-sheet-scraper/internal/mapper"
	"github.com/williampepple1/party-sheet-scraper/internal/poll"
	"github.com/williampepple1/party-sheet-scraper/internal/scraper"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

// Hook receives the finished party dataset once per run
type Hook func(ctx context.Context, party *models.Party) error

// Runner scrapes the party one character at a time
type Runner struct {
	Config *config.AppConfig
	Page   scraper.Page
	Mapper *mapper.Mapper
	Clock  poll.Clock
	Hook   Hook
}

// NewRunner creates a runner on wall-clock time
func NewRunner(config *config.AppConfig, page scraper.Page, hook Hook) *Runner {
	return &Runner{
		Config: config,
		Page:   page,
		Mapper: mapper.New(config.Mapping),
		Clock:  poll.RealClock{},
		Hook:   hook,
	}
}

// Run discovers the playable characters, scrapes each in roster order and
// hands the dataset to the hook. A character whose sheet times out or
// fails to scrape is left out of the dataset, and an unreadable roster
// yields an empty dataset. Run fails before scraping anything when the
// discovery list is missing, and stops early only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (*models.Party, error) {
	candidates, err := r.Page.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover characters: %w", err)
	}
	roster, err := r.Page.Roster(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// no roster means no character is playable
		log.Printf("Roster unavailable: %v", err)
		roster = nil
	}

	queue := extraction.FilterCandidates(candidates, roster)
	log.Printf("Found %d playable character(s), %d listed in the roster", len(candidates), len(queue))

	party := models.NewParty()
	for i, c := range queue {
		if i > 0 {
			if err := r.Clock.Sleep(ctx, r.Config.Run.CharacterDelay); err != nil {
				return nil, err
			}
		}

		char, err := r.scrapeCharacter(ctx, c)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			log.Printf("[%s] Skipped: %v", c.Label(), err)
			continue
		}
		if err := party.Put(char); err != nil {
			log.Printf("[%s] Skipped: %v", c.Label(), err)
			continue
		}
		log.Printf("[%s] Done", c.Label())
	}

	log.Printf("Scraped %d of %d character(s)", party.Len(), len(queue))

	if r.Hook != nil {
		if err := r.Hook(ctx, party); err != nil {
			return party, fmt.Errorf("completion hook: %w", err)
		}
	}
	return party, nil
}

// scrapeCharacter opens one sheet, waits for it to render and maps it.
// Panics while reading the sheet are returned as errors.
func (r *Runner) scrapeCharacter(ctx context.Context, c models.Candidate) (char models.Character, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scrape failed: %v", p)
		}
	}()

	log.Printf("[%s] Opening sheet", c.Label())
	if err := r.Page.Activate(ctx, c); err != nil {
		log.Printf("[%s] Activation reported: %v", c.Label(), err)
	}
	if err := r.Clock.Sleep(ctx, r.Config.Run.SettleDelay); err != nil {
		return char, err
	}

	poller := poll.NewPoller(r.Config.Poll, func(ctx context.Context) (*extraction.View, error) {
		return r.Page.View(ctx, c)
	})
	res, err := poller.Run(ctx, r.Clock)
	if err != nil {
		return char, err
	}
	if res.State == poll.TimedOut {
		if res.LastErr != nil {
			return char, fmt.Errorf("%w after %d attempts: %v", models.ErrViewTimeout, res.Attempts, res.LastErr)
		}
		return char, fmt.Errorf("%w after %d attempts (%d inputs)", models.ErrViewTimeout, res.Attempts, res.Inputs)
	}

	log.Printf("[%s] Sheet ready (%d inputs)", c.Label(), res.Inputs)
	raw := res.View.Attributes()
	return r.Mapper.Map(c.ID, c.Label(), raw, res.View), nil
}
