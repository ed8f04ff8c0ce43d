package models

// Candidate is a character that discovery found eligible for scraping.
type Candidate struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Label returns the name used in log lines, falling back to the id.
func (c Candidate) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.ID
}

// RosterEntry is one character entry currently present in the page's listing
type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Attributes is the flat attribute-name to value map scraped from one sheet
type Attributes map[string]string

// Get returns the value stored under key, or fallback when the key is absent
func (a Attributes) Get(key, fallback string) string {
	if v, ok := a[key]; ok {
		return v
	}
	return fallback
}

// Row is one entry of a repeating group with group-local field keys
type Row map[string]string

// Field returns the value stored under key, or "" when absent
func (r Row) Field(key string) string {
	return r[key]
}
