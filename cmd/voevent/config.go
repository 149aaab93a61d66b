package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/tsawler/voevent"
)

// Config is the CLI configuration file.
//
//	stream = "voevent.example.org/alerts"
//	role = "test"
//
//	[author]
//	ivorn = "voevent.example.org/robot"
//	title = "Example alerts"
//	contactName = "A. Observer"
type Config struct {
	Stream string       `toml:"stream"`
	Role   string       `toml:"role"`
	Author AuthorConfig `toml:"author"`
}

// AuthorConfig describes the packet author written into Who.
type AuthorConfig struct {
	IVORN        string `toml:"ivorn"`
	Title        string `toml:"title"`
	ShortName    string `toml:"shortName"`
	LogoURL      string `toml:"logoURL"`
	ContactName  string `toml:"contactName"`
	ContactEmail string `toml:"contactEmail"`
	ContactPhone string `toml:"contactPhone"`
	Contributor  string `toml:"contributor"`
}

func (c AuthorConfig) author() voevent.Author {
	return voevent.Author{
		Title:        c.Title,
		ShortName:    c.ShortName,
		LogoURL:      c.LogoURL,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		Contributor:  c.Contributor,
	}
}

func defaultConfig() Config {
	return Config{Role: voevent.RoleTest}
}

// defaultConfigPath returns the per-user configuration file location.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "voevent", "config.toml")
}

// loadConfig reads the configuration at path. A missing file yields the
// defaults unless the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
