// Package file provides the TOML-backed configuration store.
// Engine defaults live in ~/.replaca/config.toml.
package file

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// settings is the on-disk shape of the engine defaults.
type settings struct {
	Mode          string `toml:"mode"`
	Direction     string `toml:"direction"`
	Where         string `toml:"where"`
	CaseSensitive bool   `toml:"case_sensitive"`
	Wrap          bool   `toml:"wrap"`
	DotAll        bool   `toml:"dot_all"`
}

// ConfigStore is a file-based implementation of driven.ConfigStore
// using TOML.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	defaults domain.Defaults
}

// NewConfigStore creates a TOML-based config store. If configDir is
// empty, defaults to ~/.replaca/config.toml. A missing file yields the
// stock defaults; unknown enum values in the file fall back to them
// too, so a stale config never produces invalid requests.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".replaca")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		defaults: domain.DefaultSettings(),
	}

	if err := s.load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Defaults returns the configured request defaults.
func (s *ConfigStore) Defaults() domain.Defaults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// SetDefaults stores new request defaults and writes them to disk.
func (s *ConfigStore) SetDefaults(d domain.Defaults) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings{
		Mode:          d.Mode.String(),
		Direction:     d.Direction.String(),
		Where:         d.Where.String(),
		CaseSensitive: d.CaseSensitive,
		Wrap:          d.Wrap,
		DotAll:        d.DotAll,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return err
	}
	s.defaults = d
	return nil
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// load reads the config file into memory.
func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	// Seed from the stock defaults so keys missing from a hand-edited
	// file keep their defaults instead of the zero value.
	d := domain.DefaultSettings()
	cfg := settings{
		Mode:          d.Mode.String(),
		Direction:     d.Direction.String(),
		Where:         d.Where.String(),
		CaseSensitive: d.CaseSensitive,
		Wrap:          d.Wrap,
		DotAll:        d.DotAll,
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	if m := domain.Mode(cfg.Mode); m.IsValid() {
		d.Mode = m
	}
	if dir := domain.Direction(cfg.Direction); dir.IsValid() {
		d.Direction = dir
	}
	if w := domain.Where(cfg.Where); w.IsValid() {
		d.Where = w
	}
	d.CaseSensitive = cfg.CaseSensitive
	d.Wrap = cfg.Wrap
	d.DotAll = cfg.DotAll

	s.mu.Lock()
	s.defaults = d
	s.mu.Unlock()
	return nil
}
