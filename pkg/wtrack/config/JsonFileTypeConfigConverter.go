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
	"fmt"
	"log/slog"
	"regexp"
)

const defaultTimeLayout = "UNIX_DECIMAL"

var defaultEventDelimiterRegexp = regexp.MustCompile("\n")

var defaultObservationParserConfig = ObservationParserConfig{
	EventDelimiter: defaultEventDelimiterRegexp,
}

type jsonObservationFileTypeParserConfig struct {
	EventDelimiter string `json:"eventDelimiter"`
}

type jsonFileTypeParserConfig struct {
	Type string `json:"type"`

	ObservationConfig *jsonObservationFileTypeParserConfig `json:"observationConfig"`
}

type jsonFileTypeConfig struct {
	Name       string                    `json:"name"`
	TimeLayout string                    `json:"timeLayout"`
	Parser     *jsonFileTypeParserConfig `json:"parser"`
}

func DefaultFileTypeConfig() FileTypeConfig {
	return FileTypeConfig{
		Name:        DefaultFileType,
		TimeLayout:  defaultTimeLayout,
		ParserType:  ParserTypeObservation,
		Observation: &defaultObservationParserConfig,
	}
}

func FileTypeConfigFromJSON(jsonFileTypes []jsonFileTypeConfig, logger *slog.Logger) (map[string]FileTypeConfig, error) {
	fileTypes := make(map[string]FileTypeConfig, len(jsonFileTypes))
	for _, ft := range jsonFileTypes {
		if ft.Name == "" {
			logger.Error("failed to read config for fileType: name was empty")
			return nil, fmt.Errorf("failed to read config for fileType: name was empty")
		}

		timeLayout := ft.TimeLayout
		if timeLayout == "" {
			logger.Info("will use default timeLayout for fileType",
				slog.String("fileType", ft.Name),
				slog.String("defaultTimeLayout", defaultTimeLayout))
			timeLayout = defaultTimeLayout
		}

		var observationParserConfig *ObservationParserConfig
		if ft.Parser == nil {
			logger.Info("will use default parser config for fileType",
				slog.String("fileType", ft.Name))
			observationParserConfig = &defaultObservationParserConfig
		} else if ft.Parser.Type == "Observation" {
			if ft.Parser.ObservationConfig == nil || ft.Parser.ObservationConfig.EventDelimiter == "" {
				logger.Info("will use default eventDelimiter for fileType",
					slog.String("fileType", ft.Name))
				observationParserConfig = &defaultObservationParserConfig
			} else {
				eventDelimiter, err := regexp.Compile(ft.Parser.ObservationConfig.EventDelimiter)
				if err != nil {
					logger.Error("failed to read config for fileType: failed to compile eventDelimiter regexp",
						slog.String("fileType", ft.Name),
						slog.Any("error", err))
					return nil, fmt.Errorf("failed to read config for fileType=%v: failed to compile eventDelimiter regexp: %w", ft.Name, err)
				}
				observationParserConfig = &ObservationParserConfig{
					EventDelimiter: eventDelimiter,
				}
			}
		} else {
			logger.Error("failed to read config for fileType: Unknown parser.type",
				slog.String("fileType", ft.Name),
				slog.String("parserType", ft.Parser.Type))
			return nil, fmt.Errorf("failed to read config for fileType=%v: unknown parser.type=%v", ft.Name, ft.Parser.Type)
		}

		fileTypes[ft.Name] = FileTypeConfig{
			Name:        ft.Name,
			TimeLayout:  timeLayout,
			ParserType:  ParserTypeObservation,
			Observation: observationParserConfig,
		}
	}

	if _, ok := fileTypes[DefaultFileType]; !ok {
		fileTypes[DefaultFileType] = DefaultFileTypeConfig()
	}
	return fileTypes, nil
}

func fileTypeConfigToJSON(ft FileTypeConfig) jsonFileTypeConfig {
	parser := &jsonFileTypeParserConfig{
		Type: "Observation",
	}
	if ft.Observation != nil && ft.Observation.EventDelimiter != nil {
		parser.ObservationConfig = &jsonObservationFileTypeParserConfig{
			EventDelimiter: ft.Observation.EventDelimiter.String(),
		}
	}
	return jsonFileTypeConfig{
		Name:       ft.Name,
		TimeLayout: ft.TimeLayout,
		Parser:     parser,
	}
}
