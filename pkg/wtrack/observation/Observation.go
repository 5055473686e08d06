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


// Package observation parses the tab separated observation records written by
// wireless frame sensors.
//
// A record looks like
//
//	<timestamp>\t<frequency>\t<signal>\t<type>\t<subtype>\t<source>\t<dest>\t<key1>\t<value1>...\n
//
// The first seven fields are positional, everything from field 7 onwards is read
// as key/value attribute pairs.
package observation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	FieldTimestamp = 0
	FieldFrequency = 1
	FieldSignal    = 2
	FieldType      = 3
	FieldSubtype   = 4
	FieldSource    = 5
	FieldDest      = 6
	FieldAttrs     = 7
)

// NoSignal is returned by Signal when the signal level can not be parsed.
const NoSignal = 100

// NoTimestamp is returned by Timestamp when the timestamp can not be parsed.
const NoTimestamp = -1.0

// MinValidFields is the number of fields a record needs for Valid to return true.
const MinValidFields = 8

// AttrStation is the attribute holding the station name.
const AttrStation = "0"

// Matches escape artifacts like \xe2 left in station names by the sensor logs.
// Any two characters after \x are matched, not only hex digits.
var cleanStation = regexp.MustCompile(`[\\]x..`)

// Field holds the byte offsets of one tab delimited segment of a record.
type Field struct {
	Start int
	End   int
}

// PacketType is the 802.11 (type, subtype) pair of a record. Either half is nil if
// it could not be parsed.
type PacketType struct {
	Type    *uint32
	Subtype *uint32
}

// Observation is one parsed record. It is immutable after New returns and can be
// read from multiple goroutines.
type Observation struct {
	record string
	fields []Field
	attrs  map[string]string
}

// New parses record. It never fails, garbage input gives an Observation with fewer
// fields and fewer attributes.
func New(record string) *Observation {
	fields := make([]Field, 0, strings.Count(record, "\t")+1)
	start := 0
	for i := 0; i < len(record); i++ {
		if record[i] == '\t' {
			fields = append(fields, Field{Start: start, End: i})
			start = i + 1
		}
	}
	end := len(record)
	if strings.HasSuffix(record, "\n") {
		end--
	}
	fields = append(fields, Field{Start: start, End: end})

	attrs := map[string]string{}
	for i := FieldAttrs; i+1 < len(fields); i += 2 {
		k, v := fields[i], fields[i+1]
		attrs[record[k.Start:k.End]] = record[v.Start:v.End]
	}

	return &Observation{
		record: record,
		fields: fields,
		attrs:  attrs,
	}
}

// Record returns the text the Observation was parsed from.
func (o *Observation) Record() string {
	return o.record
}

// Field returns the text of field i, and false if the record has no such field.
func (o *Observation) Field(i int) (string, bool) {
	if i < 0 || i >= len(o.fields) {
		return "", false
	}
	f := o.fields[i]
	return o.record[f.Start:f.End], true
}

// Fields returns a copy of the field offsets.
func (o *Observation) Fields() []Field {
	ret := make([]Field, len(o.fields))
	copy(ret, o.fields)
	return ret
}

// Attrs returns a copy of the attribute map.
func (o *Observation) Attrs() map[string]string {
	ret := make(map[string]string, len(o.attrs))
	for k, v := range o.attrs {
		ret[k] = v
	}
	return ret
}

// text returns the text of field i, or the empty string for fields missing from a
// short record so that every accessor falls back instead of panicking.
func (o *Observation) text(i int) string {
	s, _ := o.Field(i)
	return s
}

func (o *Observation) Timestamp() float64 {
	v, ok := parseFloat(o.text(FieldTimestamp))
	if !ok {
		return NoTimestamp
	}
	return v
}

// Time returns the timestamp as a time.Time, and false if the timestamp field
// is not a finite number.
func (o *Observation) Time() (time.Time, bool) {
	v, ok := parseFloat(o.text(FieldTimestamp))
	if !ok || math.IsInf(v, 0) || math.IsNaN(v) {
		return time.Time{}, false
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))), true
}

// Frequency is returned as the raw field text, it is never parsed.
func (o *Observation) Frequency() string {
	return o.text(FieldFrequency)
}

// Signal returns the absolute signal level, or NoSignal.
func (o *Observation) Signal() int {
	v, err := strconv.ParseInt(o.text(FieldSignal), 10, 32)
	if err != nil {
		return NoSignal
	}
	if v < 0 {
		return int(-v)
	}
	return int(v)
}

func (o *Observation) Type() *uint32 {
	return parseUint32(o.text(FieldType))
}

func (o *Observation) Subtype() *uint32 {
	return parseUint32(o.text(FieldSubtype))
}

func (o *Observation) PacketType() PacketType {
	return PacketType{
		Type:    o.Type(),
		Subtype: o.Subtype(),
	}
}

func (o *Observation) Src() string {
	return o.text(FieldSource)
}

func (o *Observation) Dest() string {
	return o.text(FieldDest)
}

// Attr returns the value of the attribute key. When a key occurs more than once
// the last occurrence wins.
func (o *Observation) Attr(key string) (string, bool) {
	v, ok := o.attrs[key]
	return v, ok
}

func (o *Observation) FieldsLength() int {
	return len(o.fields)
}

// Valid reports whether the whole fixed prefix is present.
func (o *Observation) Valid() bool {
	return len(o.fields) >= MinValidFields
}

// Station returns the station attribute with escape artifacts replaced by "." and
// surrounding whitespace trimmed.
func (o *Observation) Station() string {
	raw := o.attrs[AttrStation]
	return strings.TrimSpace(cleanStation.ReplaceAllLiteralString(raw, "."))
}

// AP reports whether the record is a Management/Beacon frame. The comparison is
// on the field text, so "00" or "+8" do not count.
func (o *Observation) AP() bool {
	return o.text(FieldType) == "0" && o.text(FieldSubtype) == "8"
}

func parseFloat(s string) (float64, bool) {
	// strconv also accepts hex floats and digit separators, sensor timestamps
	// never contain either.
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range values are still numbers, ParseFloat hands back ±Inf or 0.
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

func parseUint32(s string) *uint32 {
	// ParseUint rejects any sign, a single leading + is allowed here.
	s = strings.TrimPrefix(s, "+")
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	ret := uint32(v)
	return &ret
}
