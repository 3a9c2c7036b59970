// seehuhn.de/go/pdfconcat - concatenate PDF files and add page numbers
// Copyright (C) 2026  The pdfconcat Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads the pdfconcat configuration.
//
// Settings are taken, in order of decreasing priority, from command line
// flags, environment variables with prefix PDFCONCAT_, a YAML
// configuration file, and built-in defaults.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"seehuhn.de/go/pdfconcat/pagenum"
)

// Configuration keys.
const (
	KeyTempDir   = "temp-dir"
	KeyFirstPage = "numbering.first-page"
	KeyFontSize  = "numbering.font-size"
	KeyPlacement = "numbering.placement"
	KeyColumnMin = "numbering.column.min"
	KeyColumnMax = "numbering.column.max"
	KeyBandMin   = "numbering.band.min"
	KeyBandMax   = "numbering.band.max"
)

// EnvPrefix is the prefix of environment variables which override
// configuration settings.  For example, PDFCONCAT_NUMBERING_FONT_SIZE
// sets the key "numbering.font-size".
const EnvPrefix = "PDFCONCAT"

// Config is the complete configuration of the program.
type Config struct {
	// TempDir is the directory for the intermediate file.
	TempDir string `mapstructure:"temp-dir" yaml:"temp-dir"`

	Numbering Numbering `mapstructure:"numbering" yaml:"numbering"`
}

// Numbering describes the page number labels.
type Numbering struct {
	FirstPage int     `mapstructure:"first-page" yaml:"first-page"`
	FontSize  float64 `mapstructure:"font-size" yaml:"font-size"`
	Placement string  `mapstructure:"placement" yaml:"placement"`
	Column    Span    `mapstructure:"column" yaml:"column"`
	Band      Span    `mapstructure:"band" yaml:"band"`
}

// Span is an interval of PDF coordinates.
type Span struct {
	Min float64 `mapstructure:"min" yaml:"min"`
	Max float64 `mapstructure:"max" yaml:"max"`
}

// New returns a viper instance with defaults and environment
// variables set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default values of all configuration keys.
func SetDefaults(v *viper.Viper) {
	def := pagenum.DefaultOptions
	v.SetDefault(KeyTempDir, ".")
	v.SetDefault(KeyFirstPage, def.FirstPage)
	v.SetDefault(KeyFontSize, def.FontSize)
	v.SetDefault(KeyPlacement, def.Placement.String())
	v.SetDefault(KeyColumnMin, def.Column.Min)
	v.SetDefault(KeyColumnMax, def.Column.Max)
	v.SetDefault(KeyBandMin, def.Band.Min)
	v.SetDefault(KeyBandMax, def.Band.Max)
}

// Read reads a configuration file into v.
//
// If file is empty, the file "pdfconcat.yaml" is looked for in the current
// directory and in ~/.config/pdfconcat/.  It is not an error if no file is
// found in this case.  The name of the file read is returned.
func Read(v *viper.Viper, file string) (string, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("pdfconcat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pdfconcat"))
		}
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", err
	}
	return v.ConfigFileUsed(), nil
}

// Load extracts the configuration from v and checks that it is valid.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	err := v.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	_, err = cfg.PageNumbers()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// PageNumbers converts the numbering settings to [pagenum.Options].
func (c *Config) PageNumbers() (*pagenum.Options, error) {
	placement, err := pagenum.ParsePlacement(c.Numbering.Placement)
	if err != nil {
		return nil, err
	}

	opt := &pagenum.Options{
		FirstPage: c.Numbering.FirstPage,
		FontSize:  c.Numbering.FontSize,
		Placement: placement,
		Column:    pagenum.Span(c.Numbering.Column),
		Band:      pagenum.Span(c.Numbering.Band),
	}
	err = opt.Validate()
	if err != nil {
		return nil, err
	}
	return opt, nil
}

// YAML returns the configuration in the format used for configuration
// files.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
