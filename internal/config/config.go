// Package config provides configuration utilities for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jburchel/kitchentory/internal/common"
	"github.com/jburchel/kitchentory/internal/model"
	"github.com/jburchel/kitchentory/internal/normalize"
	"github.com/jburchel/kitchentory/internal/parser"
)

// LoadParserConfig builds the parser policy from Viper. Precedence:
// config file / KITCHENTORY_ env vars, then defaults. The threshold and
// per-store ceilings are the only tunable policy surface.
func LoadParserConfig() (parser.Config, error) {
	cfg := parser.DefaultConfig()

	if v := viper.GetFloat64("parsing.auto_process_threshold"); v != 0 {
		if v < 0 || v > 1 {
			return cfg, fmt.Errorf("parsing.auto_process_threshold must be in (0, 1], got %v: %w", v, common.ErrInvalidConfig)
		}
		cfg.AutoProcessThreshold = v
	}

	ceilings := viper.GetStringMap("parsing.confidence_ceilings")
	if len(ceilings) > 0 {
		cfg.CeilingOverrides = make(map[model.StoreIdentity]float64, len(ceilings))
		for store := range ceilings {
			v := viper.GetFloat64("parsing.confidence_ceilings." + store)
			if v < 0 || v > 1 {
				return cfg, fmt.Errorf("confidence ceiling for %s must be in [0, 1], got %v: %w", store, v, common.ErrInvalidConfig)
			}
			cfg.CeilingOverrides[model.StoreIdentity(store)] = v
		}
	}

	return cfg, nil
}

// LoadVocabulary returns the unit/category vocabulary, honoring
// parsing.vocabulary_file when set.
func LoadVocabulary() (*normalize.Vocabulary, error) {
	path := viper.GetString("parsing.vocabulary_file")
	if path == "" {
		return normalize.DefaultVocabulary(), nil
	}

	vocab, err := normalize.LoadVocabulary(ExpandPath(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("parsing.vocabulary_file %s: %w", path, common.ErrMissingConfig)
		}
		return nil, fmt.Errorf("parsing.vocabulary_file %s: %w: %v", path, common.ErrInvalidConfig, err)
	}
	return vocab, nil
}

// DatabasePath returns the receipt history database location.
func DatabasePath() string {
	if v := viper.GetString("database.path"); v != "" {
		return ExpandPath(v)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "kitchentory.db"
	}
	return filepath.Join(home, ".local", "share", "kitchentory", "kitchentory.db")
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
