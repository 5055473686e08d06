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


package observation

import (
	"log/slog"

	internalParser "github.com/jackbister/wtrack/internal/parser"
	"github.com/jackbister/wtrack/pkg/wtrack"
	"github.com/jackbister/wtrack/pkg/wtrack/config"
	"github.com/jackbister/wtrack/pkg/wtrack/parser"
	"go.uber.org/dig"
)

var Plugin = wtrack.Plugin{
	Name: "@wtrack/observation",
	Provide: func(c *dig.Container, logger *slog.Logger) error {
		err := c.Provide(func() parser.Definition {
			return parser.Definition{
				ParserType: config.ParserTypeObservation,
				New:        internalParser.NewObservationFileParser,
			}
		}, dig.Group("parsers"))
		if err != nil {
			return err
		}
		return nil
	},
}
