package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"warden/internal/drift"
	"warden/internal/lint"
	"warden/internal/session"
)

// projectConfig is the parsed warden.toml. All sections are optional; an
// absent file yields a nil config and every command falls back to flags.
type projectConfig struct {
	Output     outputConfig     `toml:"output"`
	Rules      rulesConfig      `toml:"rules"`
	Dictionary dictionaryConfig `toml:"dictionary"`
}

type outputConfig struct {
	Color    string `toml:"color"`
	MaxWords int    `toml:"max_words"`
	Format   string `toml:"format"`
}

type rulesConfig struct {
	Ignore []string `toml:"ignore"`
}

type dictionaryConfig struct {
	Words []string `toml:"words"`
}

// findWardenToml walks upward from startDir looking for warden.toml.
func findWardenToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "warden.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectConfig discovers and parses warden.toml near the given text
// file. Returns nil without error when no config exists.
func loadProjectConfig(textPath string) (*projectConfig, error) {
	path, ok, err := findWardenToml(filepath.Dir(textPath))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return &cfg, nil
}

// applyConfigFilters drops findings the config silences: ignored rule ids,
// and spelling findings whose flagged word is in the project dictionary.
func applyConfigFilters(sess *session.Session, cfg *projectConfig) int {
	if cfg == nil {
		return 0
	}
	ignored := make(map[string]bool, len(cfg.Rules.Ignore))
	for _, id := range cfg.Rules.Ignore {
		ignored[id] = true
	}
	dict := make(map[string]bool, len(cfg.Dictionary.Words))
	for _, w := range cfg.Dictionary.Words {
		dict[w] = true
	}
	if len(ignored) == 0 && len(dict) == 0 {
		return 0
	}
	return sess.RemoveMatching(func(ref lint.Ref) bool {
		e, ok := ref.(*lint.Error)
		if !ok {
			return false
		}
		if ignored[e.RuleID] {
			return true
		}
		if len(dict) > 0 && (e.Cat == "TYPO" || e.Cat == "SPELLING") {
			if word, ok := drift.ExpectedFromMessage(e.Message); ok && dict[word] {
				return true
			}
		}
		return false
	})
}
