// Package config loads the user's evi settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ionut-t/evi/core"
)

const (
	FrontendTUI = "tui"
	FrontendRaw = "raw"
)

// Duration is a time.Duration written as a string ("25ms") in the file.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Config struct {
	TabStop    int      `toml:"tabstop"`
	Number     bool     `toml:"number"`
	IgnoreCase bool     `toml:"ignorecase"`
	Syntax     bool     `toml:"syntax"`
	Theme      string   `toml:"theme"`
	Frontend   string   `toml:"frontend"`
	EscTimeout Duration `toml:"esc_timeout"`
	Clipboard  bool     `toml:"clipboard"`
	UndoLevels int      `toml:"undolevels"`
	LogFile    string   `toml:"log_file"`
}

func Default() Config {
	return Config{
		TabStop:    4,
		Syntax:     true,
		Theme:      "monokai",
		Frontend:   FrontendTUI,
		EscTimeout: Duration{25 * time.Millisecond},
		UndoLevels: 1000,
	}
}

// Load reads path over the defaults. A file that does not exist is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}

	for _, key := range md.Undecoded() {
		log.Printf("config %s: unknown key %q", path, key.String())
	}

	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TabStop < 1 {
		return fmt.Errorf("tabstop must be positive, got %d", c.TabStop)
	}
	if c.UndoLevels < 0 {
		return fmt.Errorf("undolevels must not be negative, got %d", c.UndoLevels)
	}
	switch c.Frontend {
	case FrontendTUI, FrontendRaw:
	default:
		return fmt.Errorf("unknown frontend %q", c.Frontend)
	}
	return nil
}

// DefaultPath is $EVI_CONFIG, else evi/config.toml under the XDG config
// directory.
func DefaultPath() string {
	if p := os.Getenv("EVI_CONFIG"); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "evi", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "evi", "config.toml")
}

// Options maps the editing settings onto the engine's options.
func (c Config) Options() core.Options {
	opts := core.DefaultOptions()
	opts.TabStop = c.TabStop
	opts.Number = c.Number
	opts.IgnoreCase = c.IgnoreCase
	opts.HistoryLimit = c.UndoLevels
	return opts
}
