package config

import "time"

// Pacing used by the sheet scraper when the config does not say otherwise
const (
	DefaultPollInterval   = 800 * time.Millisecond
	DefaultPollAttempts   = 30
	DefaultMinInputs      = 15
	DefaultSettleDelay    = 500 * time.Millisecond
	DefaultCharacterDelay = 1500 * time.Millisecond
)

// DefaultUserAgents provides a list of common user agents
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
}

// DefaultTraitSources are the source labels the 5e sheet writes on traits
var DefaultTraitSources = TraitSources{
	Racial:     "Racial",
	Class:      "Class",
	Feat:       "Feat",
	Background: "Background",
	Item:       "Item",
	Other:      "Other",
}

// DefaultProficiencyTypes are the prof_type values of the proficiencies group
var DefaultProficiencyTypes = ProficiencyTypes{
	Languages: "LANGUAGE",
	Armor:     "ARMOR",
	Weapons:   "WEAPON",
	Other:     "OTHER",
}
