package worker

import (
	"context"
	"errors"

	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

// Chain runs every hook in order, even after one fails, and joins their
// errors.
func Chain(hooks ...Hook) Hook {
	return func(ctx context.Context, party *models.Party) error {
		var errs []error
		for _, h := range hooks {
			if h == nil {
				continue
			}
			if err := h(ctx, party); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
