// seehuhn.de/go/label - load and lay out packaged label documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

// Package config loads the settings of the label tool.
//
// Settings come, in order of decreasing priority, from environment
// variables with prefix LABELTOOL_, from the configuration file
// labeltool.toml, and from built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"seehuhn.de/go/label/archive"
)

const (
	// AppName is used for the configuration directory and file.
	AppName = "labeltool"

	// EnvPrefix is the prefix of environment variables which override
	// configuration values.
	EnvPrefix = "LABELTOOL"
)

// Configuration keys.
const (
	KeyPassword      = "password"
	KeyFontDirs      = "fonts.dirs"
	KeyFontAliases   = "fonts.aliases"
	KeyImageDir      = "images.dir"
	KeyScriptTimeout = "script.timeout"
	KeySampleFill    = "sample.fill"
	KeySampleTable   = "sample.table"
	KeyLogLevel      = "log.level"
)

// Config holds the settings of the label tool.
type Config struct {
	Password string
	FontDirs []string
	ImageDir string

	// FontAliases maps font family names used in labels to installed
	// families.  Keys are lower case.
	FontAliases map[string]string

	ScriptTimeout time.Duration
	FillSamples   bool
	SampleTable   string
	LogLevel      log.Level

	// File is the configuration file which was read, if any.
	File string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Password:      archive.DefaultPassword,
		ScriptTimeout: 2 * time.Second,
		FillSamples:   true,
		LogLevel:      log.WarnLevel,
	}
}

// Dir returns the directory which is searched for labeltool.toml, in
// addition to the current directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// Load reads the configuration.  If path is empty, labeltool.toml is
// searched in the current directory and in [Dir]; a missing file is not
// an error in this case.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyPassword, def.Password)
	v.SetDefault(KeyFontDirs, def.FontDirs)
	v.SetDefault(KeyImageDir, def.ImageDir)
	v.SetDefault(KeyScriptTimeout, def.ScriptTimeout)
	v.SetDefault(KeySampleFill, def.FillSamples)
	v.SetDefault(KeySampleTable, def.SampleTable)
	v.SetDefault(KeyLogLevel, def.LogLevel.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}
	}

	level, err := log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	timeout := v.GetDuration(KeyScriptTimeout)
	if timeout < 0 {
		return nil, fmt.Errorf("%s: negative timeout %s", KeyScriptTimeout, timeout)
	}

	return &Config{
		Password:      v.GetString(KeyPassword),
		FontDirs:      v.GetStringSlice(KeyFontDirs),
		ImageDir:      v.GetString(KeyImageDir),
		FontAliases:   v.GetStringMapString(KeyFontAliases),
		ScriptTimeout: timeout,
		FillSamples:   v.GetBool(KeySampleFill),
		SampleTable:   v.GetString(KeySampleTable),
		LogLevel:      level,
		File:          v.ConfigFileUsed(),
	}, nil
}
