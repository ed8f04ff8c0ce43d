package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration
type AppConfig struct {
	Poll    PollConfig    `yaml:"poll"`
	Run     RunConfig     `yaml:"run"`
	Browser BrowserConfig `yaml:"browser"`
	Source  SourceConfig  `yaml:"source"`
	IO      IOConfig      `yaml:"io"`
	Store   StoreConfig   `yaml:"store"`
	Mapping MappingConfig `yaml:"mapping"`
	Proxies ProxyConfig   `yaml:"proxies"`
}

// PollConfig controls the readiness check on each character view
type PollConfig struct {
	Interval    time.Duration `yaml:"interval"`
	MaxAttempts int           `yaml:"max_attempts"`
	MinInputs   int           `yaml:"min_inputs"`
}

// RunConfig holds the pacing of the sequential scrape
type RunConfig struct {
	SettleDelay    time.Duration `yaml:"settle_delay"`
	CharacterDelay time.Duration `yaml:"character_delay"`
}

// BrowserConfig holds the live browser session settings
type BrowserConfig struct {
	Enabled     bool          `yaml:"enabled"`
	RemoteURL   string        `yaml:"remote_url"`
	GameURL     string        `yaml:"game_url"`
	Headless    bool          `yaml:"headless"`
	UserAgent   string        `yaml:"user_agent"`
	UserDataDir string        `yaml:"user_data_dir"`
	WaitTime    time.Duration `yaml:"wait_time"`
	Timeout     time.Duration `yaml:"timeout"`
}

// SourceConfig points at a saved page snapshot: an index page plus one
// sheet document per character.
type SourceConfig struct {
	BaseURL    string        `yaml:"base_url"`
	IndexPath  string        `yaml:"index_path"`
	SheetPath  string        `yaml:"sheet_path"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
	Timeout    time.Duration `yaml:"timeout"`
	UserAgents []string      `yaml:"user_agents,omitempty"`
}

// IOConfig holds the export configuration
type IOConfig struct {
	OutputFile   string        `yaml:"output_file"`
	OutputFormat string        `yaml:"output_format"`
	PostURL      string        `yaml:"post_url"`
	PostTimeout  time.Duration `yaml:"post_timeout"`
}

// StoreConfig holds the run archive settings
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MappingConfig holds the labels used to bucket traits and proficiencies.
// Each label is matched exactly against the sheet's text.
type MappingConfig struct {
	TraitSources     TraitSources     `yaml:"trait_sources"`
	ProficiencyTypes ProficiencyTypes `yaml:"proficiency_types"`
}

type TraitSources struct {
	Racial     string `yaml:"racial"`
	Class      string `yaml:"class"`
	Feat       string `yaml:"feat"`
	Background string `yaml:"background"`
	Item       string `yaml:"item"`
	Other      string `yaml:"other"`
}

type ProficiencyTypes struct {
	Languages string `yaml:"languages"`
	Armor     string `yaml:"armor"`
	Weapons   string `yaml:"weapons"`
	Other     string `yaml:"other"`
}

// ProxyConfig holds the proxy configuration
type ProxyConfig struct {
	Enabled bool     `yaml:"enabled"`
	Rotate  bool     `yaml:"rotate"`
	List    []string `yaml:"list"`
	Auth    struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
}

// Load loads the configuration from a YAML file. Fields the file leaves
// out keep their default values.
func Load(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// Set default user agents if none provided
	if len(config.Source.UserAgents) == 0 {
		config.Source.UserAgents = DefaultUserAgents
	}

	return config, nil
}

// Default returns the configuration used when no file is given
func Default() *AppConfig {
	return &AppConfig{
		Poll: PollConfig{
			Interval:    DefaultPollInterval,
			MaxAttempts: DefaultPollAttempts,
			MinInputs:   DefaultMinInputs,
		},
		Run: RunConfig{
			SettleDelay:    DefaultSettleDelay,
			CharacterDelay: DefaultCharacterDelay,
		},
		Browser: BrowserConfig{
			Headless:  false,
			UserAgent: DefaultUserAgents[0],
			WaitTime:  5 * time.Second,
			Timeout:   5 * time.Second,
		},
		Source: SourceConfig{
			IndexPath:  "index.html",
			SheetPath:  "sheets/%s.html",
			MaxRetries: 3,
			RetryDelay: 2 * time.Second,
			Timeout:    30 * time.Second,
			UserAgents: DefaultUserAgents,
		},
		IO: IOConfig{
			OutputFile:   "party.json",
			OutputFormat: "json",
			PostTimeout:  30 * time.Second,
		},
		Store: StoreConfig{
			Path: "party.db",
		},
		Mapping: MappingConfig{
			TraitSources:     DefaultTraitSources,
			ProficiencyTypes: DefaultProficiencyTypes,
		},
		Proxies: ProxyConfig{
			Rotate: true,
			List:   []string{},
		},
	}
}

// CreateDefault creates a default configuration with the command-line overrides applied
func CreateDefault(sourceURL string, enableBrowser bool, remoteURL, outputFile, outputFormat string,
	interval time.Duration, attempts, minInputs int) *AppConfig {
	config := Default()
	config.Source.BaseURL = sourceURL
	config.Browser.Enabled = enableBrowser
	config.Browser.RemoteURL = remoteURL
	config.IO.OutputFile = outputFile
	config.IO.OutputFormat = outputFormat
	config.Poll.Interval = interval
	config.Poll.MaxAttempts = attempts
	config.Poll.MinInputs = minInputs
	return config
}

// ApplyEnv loads an optional .env file and applies PARTY_SCRAPER_*
// overrides on top of the configuration.
func (c *AppConfig) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	if v := os.Getenv("PARTY_SCRAPER_REMOTE_URL"); v != "" {
		c.Browser.RemoteURL = v
		c.Browser.Enabled = true
	}
	if v := os.Getenv("PARTY_SCRAPER_GAME_URL"); v != "" {
		c.Browser.GameURL = v
	}
	if v := os.Getenv("PARTY_SCRAPER_SOURCE_URL"); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv("PARTY_SCRAPER_POST_URL"); v != "" {
		c.IO.PostURL = v
	}
	if v := os.Getenv("PARTY_SCRAPER_STORE_PATH"); v != "" {
		c.Store.Path = v
		c.Store.Enabled = true
	}
	return nil
}
