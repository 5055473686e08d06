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


package parser

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackbister/wtrack/pkg/wtrack/config"
	"github.com/jackbister/wtrack/pkg/wtrack/parser"
	"go.uber.org/dig"
)

// Registry holds one FileParser per configured file type.
type Registry struct {
	parsers map[string]parser.FileParser
}

type RegistryParams struct {
	dig.In

	Cfg         *config.Config
	Definitions []parser.Definition `group:"parsers"`
	Logger      *slog.Logger
}

func NewRegistry(p RegistryParams) (*Registry, error) {
	byType := make(map[config.ParserType]parser.Definition, len(p.Definitions))
	for _, d := range p.Definitions {
		byType[d.ParserType] = d
	}
	names := make([]string, 0, len(p.Cfg.FileTypes))
	for name := range p.Cfg.FileTypes {
		names = append(names, name)
	}
	sort.Strings(names)

	parsers := make(map[string]parser.FileParser, len(names))
	for _, name := range names {
		ft := p.Cfg.FileTypes[name]
		d, ok := byType[ft.ParserType]
		if !ok {
			return nil, fmt.Errorf("failed to create parser for fileType=%v: no plugin provides parserType=%v", name, ft.ParserType)
		}
		fp, err := d.New(ft, p.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create parser for fileType=%v: %w", name, err)
		}
		p.Logger.Info("created parser for fileType", slog.String("fileType", name))
		parsers[name] = fp
	}
	return &Registry{parsers: parsers}, nil
}

func (r *Registry) Get(fileType string) (parser.FileParser, bool) {
	fp, ok := r.parsers[fileType]
	return fp, ok
}
