package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"coldstart/internal/models"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Auth struct {
		JWTSecret    string `yaml:"jwt_secret"`
		TokenTTLHrs  int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
	Notifier struct {
		Enabled          bool   `yaml:"enabled"`
		TelegramBotToken string `yaml:"telegram_bot_token"`
		OperatorChatID   int64  `yaml:"operator_chat_id"`
	} `yaml:"notifier"`
	// Categories maps a venue category name to its signal set and verdict
	// strings. The summary pipeline treats these as data; new categories are
	// added here, not in code.
	Categories map[string]models.VenueConfig `yaml:"categories"`
}

// LoadConfig reads configuration from the specified YAML file. A .env file in
// the working directory, when present, is loaded first so env overrides
// (DATABASE_URL, JWT_SECRET, TELEGRAM_BOT_TOKEN) can fill in secrets that
// should not live in the YAML.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		config.Notifier.TelegramBotToken = v
	}

	if config.Auth.TokenTTLHrs == 0 {
		config.Auth.TokenTTLHrs = 24
	}
	if config.Categories == nil {
		config.Categories = map[string]models.VenueConfig{}
	}
	for name, cat := range DefaultCategories() {
		if _, ok := config.Categories[name]; !ok {
			config.Categories[name] = cat
		}
	}
	for name, cat := range config.Categories {
		cat.Category = name
		config.Categories[name] = cat
	}

	return config, nil
}

// CategoryConfig returns the venue config for a category and whether the
// category is known.
func (c *Config) CategoryConfig(category string) (models.VenueConfig, bool) {
	cfg, ok := c.Categories[category]
	return cfg, ok
}

// DefaultCategories supplies the built-in hockey and baseball signal sets so a
// bare config file still produces a working service.
func DefaultCategories() map[string]models.VenueConfig {
	return map[string]models.VenueConfig{
		"hockey": {
			Category: "hockey",
			Signals: []string{
				"parking", "cold", "food_nearby", "chaos",
				"family_friendly", "locker_rooms", "pro_shop",
			},
			Verdicts: models.Verdicts{
				Good:  "Good rink overall",
				Mixed: "Mixed reviews",
				Bad:   "Heads up before you go",
				None:  "No ratings yet",
			},
		},
		"baseball": {
			Category: "baseball",
			Signals: []string{
				"parking", "heat", "food_nearby", "chaos",
				"family_friendly", "dugouts", "batting_cages",
			},
			Verdicts: models.Verdicts{
				Good:  "Good field overall",
				Mixed: "Mixed reviews",
				Bad:   "Heads up before you go",
				None:  "No ratings yet",
			},
		},
	}
}
