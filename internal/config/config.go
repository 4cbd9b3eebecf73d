// Package config charge les profils de rapport déclaratifs.
// Les ~12 tableaux de bord historiques dupliquaient le même pipeline avec des
// paramètres différents; ici chaque variante est un profil nommé
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	analyticsdomain "agrireport/internal/analytics/domain"
)

// Erreurs de validation des profils
var (
	ErrNoProfiles       = errors.New("at least one report profile is required")
	ErrProfileNoName    = errors.New("profile name is required")
	ErrDuplicateProfile = errors.New("duplicate profile name")
	ErrInvalidDays      = errors.New("days must be at least 1")
	ErrUnknownProfile   = errors.New("unknown profile")
)

// Config racine du fichier de profils
type Config struct {
	Profiles []ProfileConfig `yaml:"profiles"`
}

// ProfileConfig une variante de rapport: période et seuils
type ProfileConfig struct {
	Name             string   `yaml:"name"`
	Days             int      `yaml:"days"`
	MinOrders        *int     `yaml:"min_orders"`
	MinBasket        *float64 `yaml:"min_basket"`
	MinRevenue       *float64 `yaml:"min_revenue"`
	PriceSplitCutoff *float64 `yaml:"price_split_cutoff"`
}

// ReportConfig convertit le profil en configuration d'agrégation; les seuils
// absents du YAML prennent les valeurs historiques par défaut
func (p ProfileConfig) ReportConfig() analyticsdomain.ReportConfig {
	cfg := analyticsdomain.DefaultReportConfig()
	if p.MinOrders != nil {
		cfg.MinOrders = *p.MinOrders
	}
	if p.MinBasket != nil {
		cfg.MinBasket = *p.MinBasket
	}
	if p.MinRevenue != nil {
		cfg.MinRevenue = *p.MinRevenue
	}
	if p.PriceSplitCutoff != nil {
		cfg.PriceSplitCutoff = *p.PriceSplitCutoff
	}
	return cfg
}

// Load lit et valide un fichier de profils YAML
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate vérifie la cohérence de l'ensemble des profils
func (c *Config) Validate() error {
	if len(c.Profiles) == 0 {
		return ErrNoProfiles
	}

	seen := make(map[string]struct{}, len(c.Profiles))
	for _, p := range c.Profiles {
		if p.Name == "" {
			return ErrProfileNoName
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateProfile, p.Name)
		}
		seen[p.Name] = struct{}{}

		if p.Days < 1 {
			return fmt.Errorf("%w (profile %q)", ErrInvalidDays, p.Name)
		}
		if err := p.ReportConfig().Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	return nil
}

// Profile retourne le profil nommé
func (c *Config) Profile(name string) (ProfileConfig, error) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return ProfileConfig{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}
