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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"seehuhn.de/go/pdfconcat/pagenum"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.TempDir)
	assert.Equal(t, 2, cfg.Numbering.FirstPage)
	assert.Equal(t, 12.0, cfg.Numbering.FontSize)
	assert.Equal(t, "fixed", cfg.Numbering.Placement)
	assert.Equal(t, Span{Min: 250, Max: 450}, cfg.Numbering.Column)
	assert.Equal(t, Span{Min: 10, Max: 30}, cfg.Numbering.Band)

	opt, err := cfg.PageNumbers()
	require.NoError(t, err)
	assert.Equal(t, pagenum.DefaultOptions, *opt)
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *Config)
		errMsg  string
	}{
		{
			name: "overrides selected keys",
			content: "temp-dir: /tmp\n" +
				"numbering:\n" +
				"  first-page: 3\n" +
				"  placement: relative\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp", cfg.TempDir)
				assert.Equal(t, 3, cfg.Numbering.FirstPage)
				assert.Equal(t, "relative", cfg.Numbering.Placement)
				assert.Equal(t, 12.0, cfg.Numbering.FontSize)
			},
		},
		{
			name: "nested spans",
			content: "numbering:\n" +
				"  column: {min: 100, max: 200}\n" +
				"  band: {min: 5, max: 15}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Span{Min: 100, Max: 200}, cfg.Numbering.Column)
				assert.Equal(t, Span{Min: 5, Max: 15}, cfg.Numbering.Band)
			},
		},
		{
			name:    "rejects unknown placement",
			content: "numbering:\n  placement: centered\n",
			errMsg:  "invalid placement",
		},
		{
			name:    "rejects empty column",
			content: "numbering:\n  column: {min: 300, max: 200}\n",
			errMsg:  "empty column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "pdfconcat.yaml")
			require.NoError(t, os.WriteFile(file, []byte(tt.content), 0o644))

			v := New()
			used, err := Read(v, file)
			require.NoError(t, err)
			assert.Equal(t, file, used)

			cfg, err := Load(v)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestReadSearchPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	v := New()
	used, err := Read(v, "")
	require.NoError(t, err)
	assert.Empty(t, used)

	content := "numbering:\n  font-size: 9\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pdfconcat.yaml"), []byte(content), 0o644))

	v = New()
	used, err = Read(v, "")
	require.NoError(t, err)
	assert.Equal(t, "pdfconcat.yaml", filepath.Base(used))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 9.0, cfg.Numbering.FontSize)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("PDFCONCAT_NUMBERING_FONT_SIZE", "10")
	t.Setenv("PDFCONCAT_TEMP_DIR", "/var/tmp")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Numbering.FontSize)
	assert.Equal(t, "/var/tmp", cfg.TempDir)
}

func TestYAML(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	data, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "first-page: 2")
	assert.Contains(t, string(data), "placement: fixed")

	// The dump can be used as a configuration file.
	var back Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, *cfg, back)
}
