package extraction

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

const (
	// CandidatePrefix tags the speaking-as options that are characters
	CandidatePrefix = "character|"

	discoverySelector = "select#speakingas"
	rosterSelector    = ".journalitem.character[data-itemid]"
	rosterNameClass   = ".namecontainer"
)

// ParseCandidates reads the characters offered by the speaking-as list.
// It returns models.ErrNoDiscoverySource when the list is not on the page.
func ParseCandidates(doc *goquery.Document) ([]models.Candidate, error) {
	if doc == nil {
		return nil, models.ErrNoDiscoverySource
	}
	sel := doc.Find(discoverySelector).First()
	if sel.Length() == 0 {
		return nil, models.ErrNoDiscoverySource
	}

	candidates := []models.Candidate{}
	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		value := opt.AttrOr("value", "")
		if !strings.HasPrefix(value, CandidatePrefix) {
			return
		}
		parts := strings.Split(value, "|")
		if len(parts) < 2 || parts[1] == "" {
			return
		}
		candidates = append(candidates, models.Candidate{
			ID:          parts[1],
			DisplayName: strings.TrimSpace(opt.Text()),
		})
	})
	return candidates, nil
}

// ParseRoster reads the character entries currently listed in the journal
func ParseRoster(doc *goquery.Document) []models.RosterEntry {
	entries := []models.RosterEntry{}
	if doc == nil {
		return entries
	}
	doc.Find(rosterSelector).Each(func(_ int, s *goquery.Selection) {
		entries = append(entries, models.RosterEntry{
			ID:   s.AttrOr("data-itemid", ""),
			Name: strings.TrimSpace(s.Find(rosterNameClass).First().Text()),
		})
	})
	return entries
}

// RosterNameSelector returns the selector of the clickable name element of
// a roster entry.
func RosterNameSelector(id string) string {
	return `.journalitem.character[data-itemid="` + id + `"] ` + rosterNameClass
}

// FilterCandidates keeps the candidates that have a roster entry, in roster
// order. The roster's display name wins over the discovery label.
func FilterCandidates(candidates []models.Candidate, roster []models.RosterEntry) []models.Candidate {
	byID := make(map[string]models.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	filtered := []models.Candidate{}
	for _, entry := range roster {
		c, ok := byID[entry.ID]
		if !ok {
			continue
		}
		if entry.Name != "" {
			c.DisplayName = entry.Name
		}
		filtered = append(filtered, c)
	}
	return filtered
}
