package io

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

// PartyReader reads previously exported party datasets
type PartyReader struct {
	Config *config.IOConfig
}

// NewPartyReader creates a new party reader
func NewPartyReader(config *config.IOConfig) *PartyReader {
	return &PartyReader{
		Config: config,
	}
}

// ReadFromFile reads and validates a JSON party dataset
func (r *PartyReader) ReadFromFile(filename string) (*models.Party, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseParty(data)
}

// Load reads the dataset at the configured output file
func (r *PartyReader) Load() (*models.Party, error) {
	return r.ReadFromFile(r.Config.OutputFile)
}

// ParseParty validates a dataset and decodes it in document order. The
// dataset must be a non-empty object keyed by character id whose entries
// all carry string charId and charName fields. Each key must equal its
// entry's charId and every field must decode into a Character, since the
// returned Party is keyed and typed by those.
func ParseParty(data []byte) (*models.Party, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", models.ErrInvalidParty)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an object keyed by character id", models.ErrInvalidParty)
	}

	party := models.NewParty()
	var parseErr error
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			parseErr = fmt.Errorf("%w: entry %q is not an object", models.ErrInvalidParty, key.String())
			return false
		}
		if value.Get("charId").Type != gjson.String || value.Get("charName").Type != gjson.String {
			parseErr = fmt.Errorf("%w: entry %q lacks charId or charName", models.ErrInvalidParty, key.String())
			return false
		}

		c := models.NewCharacter("", "")
		if err := json.Unmarshal([]byte(value.Raw), &c); err != nil {
			parseErr = fmt.Errorf("%w: entry %q: %v", models.ErrInvalidParty, key.String(), err)
			return false
		}
		if c.CharID != key.String() {
			parseErr = fmt.Errorf("%w: entry %q has charId %q", models.ErrInvalidParty, key.String(), c.CharID)
			return false
		}
		if err := party.Put(c); err != nil {
			parseErr = fmt.Errorf("%w: %v", models.ErrInvalidParty, err)
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if party.Len() == 0 {
		return nil, fmt.Errorf("%w: no characters", models.ErrInvalidParty)
	}
	return party, nil
}
