package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ItemDefault describes one catalog item seeded on first start.
type ItemDefault struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	Description string
}

// AccessKeys maps shared access keys to roles. A request presenting the
// admin key acts as admin, the member key as member; anything else is a guest.
type AccessKeys struct {
	Admin  string
	Member string
}

// Defaults holds the seed data and tunables loaded from YAML.
// Missing values fall back to the built-in defaults below.
type Defaults struct {
	DefaultContribution decimal.Decimal
	FundBaseAmount      decimal.Decimal
	Items               []ItemDefault
	AccessKeys          AccessKeys
}

// YAML shapes. Money values are parsed from strings because decimal.Decimal
// has no yaml.v3 unmarshaler.
type yamlItem struct {
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

type yamlDefaults struct {
	DefaultContribution string     `yaml:"defaultContribution"`
	FundBaseAmount      string     `yaml:"fundBaseAmount"`
	Items               []yamlItem `yaml:"items"`
	AccessKeys          struct {
		Admin  string `yaml:"admin"`
		Member string `yaml:"member"`
	} `yaml:"accessKeys"`
}

type yamlConfig struct {
	Defaults yamlDefaults `yaml:"defaults"`
}

// builtinDefaults provides values used when no config file is found
var builtinDefaults = Defaults{
	DefaultContribution: decimal.NewFromInt(500),
	FundBaseAmount:      decimal.NewFromInt(20000),
	Items: []ItemDefault{
		{Name: "AK-47", Price: decimal.NewFromInt(2500), Category: "weapon", Description: "Classic assault rifle"},
		{Name: "Bulletproof Vest", Price: decimal.NewFromInt(800), Category: "armor", Description: "Level IIIA protection"},
		{Name: "Night Vision Goggles", Price: decimal.NewFromInt(1200), Category: "equipment", Description: "See in the dark"},
		{Name: "Encrypted Radio", Price: decimal.NewFromInt(300), Category: "communication", Description: "Secure comms"},
		{Name: "Smoke Grenades", Price: decimal.NewFromInt(150), Category: "tactical", Description: "Pack of 3"},
	},
}

// LoadDefaults loads seed configuration from a YAML file.
// If the file is not found, built-in defaults are returned. Access keys are
// always overridable via ACCESS_KEY_ADMIN / ACCESS_KEY_MEMBER environment
// variables so they never have to live in the file.
func LoadDefaults(configPath string) (*Defaults, error) {
	if configPath == "" {
		configPath = "config/defaults.yaml"
	}

	defaults := GetBuiltinDefaults()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		var cfg yamlConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			slog.Warn("Failed to parse config file, using defaults", "path", configPath, "error", err)
		} else {
			applyYAMLDefaults(defaults, &cfg.Defaults)
		}
	}

	if v := os.Getenv("ACCESS_KEY_ADMIN"); v != "" {
		defaults.AccessKeys.Admin = v
	}
	if v := os.Getenv("ACCESS_KEY_MEMBER"); v != "" {
		defaults.AccessKeys.Member = v
	}

	return defaults, nil
}

func applyYAMLDefaults(dst *Defaults, src *yamlDefaults) {
	if d, err := decimal.NewFromString(src.DefaultContribution); err == nil && d.IsPositive() {
		dst.DefaultContribution = d
	}
	if d, err := decimal.NewFromString(src.FundBaseAmount); err == nil && d.IsPositive() {
		dst.FundBaseAmount = d
	}
	if len(src.Items) > 0 {
		items := make([]ItemDefault, 0, len(src.Items))
		for _, it := range src.Items {
			price, err := decimal.NewFromString(it.Price)
			if err != nil {
				slog.Warn("Skipping default item with invalid price", "name", it.Name, "price", it.Price)
				continue
			}
			items = append(items, ItemDefault{
				Name:        it.Name,
				Price:       price,
				Category:    it.Category,
				Description: it.Description,
			})
		}
		if len(items) > 0 {
			dst.Items = items
		}
	}
	if src.AccessKeys.Admin != "" {
		dst.AccessKeys.Admin = src.AccessKeys.Admin
	}
	if src.AccessKeys.Member != "" {
		dst.AccessKeys.Member = src.AccessKeys.Member
	}
}

// GetBuiltinDefaults returns a copy of the built-in defaults.
// The items slice is copied to avoid sharing references with the global value.
func GetBuiltinDefaults() *Defaults {
	d := builtinDefaults
	d.Items = append([]ItemDefault(nil), builtinDefaults.Items...)
	return &d
}

// GetEnvOrDefault returns the environment variable value or a default
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
