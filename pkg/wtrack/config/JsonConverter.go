// Copyright 2023 Jack Bister
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
)

type jsonWebConfig struct {
	Enabled   *bool  `json:"enabled"`
	Address   string `json:"address"`
	DebugMode *bool  `json:"debugMode"`
}

type JsonConfig struct {
	Web       *jsonWebConfig       `json:"web"`
	FileTypes []jsonFileTypeConfig `json:"fileTypes"`
}

var defaultConfig = Config{
	Web: &WebConfig{
		Enabled:   true,
		Address:   ":8080",
		DebugMode: false,
	},
}

// Default returns the configuration used when no configuration file exists.
func Default() *Config {
	web := *defaultConfig.Web
	return &Config{
		Web: &web,
		FileTypes: map[string]FileTypeConfig{
			DefaultFileType: DefaultFileTypeConfig(),
		},
	}
}

// Decode reads a JSON configuration from r and converts it with FromJSON.
func Decode(r io.Reader, logger *slog.Logger) (*Config, error) {
	var jsonCfg JsonConfig
	err := json.NewDecoder(r).Decode(&jsonCfg)
	if err != nil {
		return nil, fmt.Errorf("error decoding json config: %w", err)
	}
	return FromJSON(jsonCfg, logger)
}

func FromJSON(cfg JsonConfig, logger *slog.Logger) (*Config, error) {
	fileTypes, err := FileTypeConfigFromJSON(cfg.FileTypes, logger)
	if err != nil {
		return nil, err
	}

	var web *WebConfig
	if cfg.Web == nil {
		logger.Info("Using default web configuration.")
		defaultWeb := *defaultConfig.Web
		web = &defaultWeb
	} else {
		web = &WebConfig{}
		if cfg.Web.Enabled == nil {
			logger.Info("web.enabled not specified, defaulting to true")
			web.Enabled = true
		} else {
			web.Enabled = *cfg.Web.Enabled
		}
		if cfg.Web.Address == "" {
			logger.Info("Using default web address",
				slog.String("defaultWebAddress", defaultConfig.Web.Address))
			web.Address = defaultConfig.Web.Address
		} else {
			web.Address = cfg.Web.Address
		}
		if cfg.Web.DebugMode == nil {
			logger.Info("web.debugMode not specified, defaulting to false")
			web.DebugMode = false
		} else {
			web.DebugMode = *cfg.Web.DebugMode
		}
	}

	return &Config{
		Web:       web,
		FileTypes: fileTypes,
	}, nil
}

func ToJSON(c *Config) (*JsonConfig, error) {
	if c.Web == nil {
		return nil, fmt.Errorf("failed to convert config to JSON: web config was nil")
	}
	names := make([]string, 0, len(c.FileTypes))
	for k := range c.FileTypes {
		names = append(names, k)
	}
	sort.Strings(names)
	fileTypes := make([]jsonFileTypeConfig, 0, len(names))
	for _, name := range names {
		fileTypes = append(fileTypes, fileTypeConfigToJSON(c.FileTypes[name]))
	}
	enabled := c.Web.Enabled
	debugMode := c.Web.DebugMode
	return &JsonConfig{
		Web: &jsonWebConfig{
			Enabled:   &enabled,
			Address:   c.Web.Address,
			DebugMode: &debugMode,
		},
		FileTypes: fileTypes,
	}, nil
}
