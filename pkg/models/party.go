package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Party is the dataset of one scrape run: characters keyed by id, kept in
// the order they were added. A character is written at most once.
type Party struct {
	order []string
	byID  map[string]Character
}

// NewParty creates an empty party dataset
func NewParty() *Party {
	return &Party{byID: make(map[string]Character)}
}

// Put adds a character under its CharID. It refuses to overwrite an entry.
func (p *Party) Put(c Character) error {
	if _, ok := p.byID[c.CharID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCharacter, c.CharID)
	}
	p.order = append(p.order, c.CharID)
	p.byID[c.CharID] = c
	return nil
}

// Get returns the character stored under id
func (p *Party) Get(id string) (Character, bool) {
	c, ok := p.byID[id]
	return c, ok
}

// IDs returns character ids in insertion order
func (p *Party) IDs() []string {
	return append([]string(nil), p.order...)
}

// Characters returns the characters in insertion order
func (p *Party) Characters() []Character {
	out := make([]Character, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.byID[id])
	}
	return out
}

func (p *Party) Len() int {
	return len(p.order)
}

// MarshalJSON writes the party as a JSON object keyed by character id,
// preserving insertion order.
func (p *Party) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range p.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.byID[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
