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
	"regexp"
	"strconv"

	"github.com/jackbister/wtrack/pkg/wtrack/config"
	"github.com/jackbister/wtrack/pkg/wtrack/observation"
	"github.com/jackbister/wtrack/pkg/wtrack/parser"
)

// AttrFieldPrefix is prepended to attribute keys in extracted fields.
const AttrFieldPrefix = "attr."

type ObservationParserConfig struct {
	EventDelimiter *regexp.Regexp
}

type ObservationFileParser struct {
	Cfg ObservationParserConfig

	Logger *slog.Logger
}

func NewObservationFileParser(cfg config.FileTypeConfig, logger *slog.Logger) (parser.FileParser, error) {
	if cfg.Observation == nil || cfg.Observation.EventDelimiter == nil {
		return nil, fmt.Errorf("failed to create observation parser for fileType=%v: eventDelimiter was nil", cfg.Name)
	}
	return &ObservationFileParser{
		Cfg: ObservationParserConfig{
			EventDelimiter: cfg.Observation.EventDelimiter,
		},
		Logger: logger.With(slog.String("fileType", cfg.Name)),
	}, nil
}

func (p *ObservationFileParser) CanSplit(b []byte) bool {
	return p.Cfg.EventDelimiter.Match(b)
}

// Observe parses a single record.
func (p *ObservationFileParser) Observe(s string) *observation.Observation {
	return observation.New(s)
}

func (p *ObservationFileParser) Extract(s string) (*parser.ExtractResult, error) {
	o := observation.New(s)
	if !o.Valid() {
		p.Logger.Warn("got record with too few fields",
			slog.Int("fieldsLength", o.FieldsLength()),
			slog.Int("minFields", observation.MinValidFields))
		return nil, fmt.Errorf("error extracting fields from observation: got %v fields, need at least %v: %w",
			o.FieldsLength(), observation.MinValidFields, parser.ErrInvalidRecord)
	}
	return &parser.ExtractResult{
		Fields: Fields(o),
	}, nil
}

// Fields flattens an Observation into the string map used by ExtractResult.
func Fields(o *observation.Observation) map[string]string {
	attrs := o.Attrs()
	ret := make(map[string]string, 9+len(attrs))
	ret["_time"], _ = o.Field(observation.FieldTimestamp)
	ret["frequency"] = o.Frequency()
	ret["signal"] = strconv.Itoa(o.Signal())
	if typ := o.Type(); typ != nil {
		ret["type"] = strconv.FormatUint(uint64(*typ), 10)
	}
	if subtype := o.Subtype(); subtype != nil {
		ret["subtype"] = strconv.FormatUint(uint64(*subtype), 10)
	}
	ret["src"] = o.Src()
	ret["dest"] = o.Dest()
	ret["station"] = o.Station()
	ret["ap"] = strconv.FormatBool(o.AP())
	for k, v := range attrs {
		ret[AttrFieldPrefix+k] = v
	}
	return ret
}

func (p *ObservationFileParser) Split(s string) parser.SplitResult {
	delimiters := p.Cfg.EventDelimiter.FindAllString(s, -1)
	split := p.Cfg.EventDelimiter.Split(s, -1)
	rawEvts := split[:len(split)-1]
	retEvts := make([]parser.RawParserEvent, 0, len(rawEvts))
	offset := int64(0)
	for i, raw := range rawEvts {
		evt := parser.RawParserEvent{
			Raw:    raw,
			Offset: offset,
		}
		retEvts = append(retEvts, evt)
		offset += int64(len(raw)) + int64(len(delimiters[i]))
	}
	return parser.SplitResult{
		Events:    retEvts,
		Remainder: split[len(split)-1],
	}
}
