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
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	LayoutUnix             = "UNIX"
	LayoutUnixMillis       = "UNIX_MILLIS"
	LayoutUnixDecimalNanos = "UNIX_DECIMAL_NANOS"
	LayoutUnixDecimal      = "UNIX_DECIMAL"
	LayoutAuto             = "AUTO"
)

func ParseTime(layout string, value string) (time.Time, error) {
	switch layout {
	case LayoutUnix:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Now(), fmt.Errorf("failed to parse time: failed to parse value='%s' as int64: %w", value, err)
		}
		return time.Unix(i, 0), nil
	case LayoutUnixMillis:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Now(), fmt.Errorf("failed to parse time: failed to parse value='%s' as int64: %w", value, err)
		}
		return time.UnixMilli(i), nil
	case LayoutUnixDecimalNanos:
		split := strings.Split(value, ".")
		if len(split) != 2 {
			return time.Now(), fmt.Errorf("failed to parse time: failed to parse value='%s' as UNIX_DECIMAL_NANOS: unexpected length after splitting on '.'. Got length=%v", value, len(split))
		}
		i0, err := strconv.ParseInt(split[0], 10, 64)
		if err != nil {
			return time.Now(), fmt.Errorf("failed to parse time: failed to parse split[0]='%s' as int64: %w", split[0], err)
		}
		i1, err := strconv.ParseInt(split[1], 10, 64)
		if err != nil {
			return time.Now(), fmt.Errorf("failed to parse time: failed to parse split[1]='%s' as int64: %w", split[1], err)
		}
		return time.Unix(i0, i1), nil
	case LayoutUnixDecimal:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return time.Now(), fmt.Errorf("failed to parse time: failed to parse value='%s' as float64: %w", value, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return time.Now(), fmt.Errorf("failed to parse time: value='%s' is not a finite number", value)
		}
		sec, frac := math.Modf(f)
		return time.Unix(int64(sec), int64(math.Round(frac*1e9))), nil
	case LayoutAuto:
		t, err := dateparse.ParseStrict(value)
		if err != nil {
			return time.Now(), fmt.Errorf("failed to parse time: failed to detect layout of value='%s': %w", value, err)
		}
		return t, nil
	default:
		return time.Parse(layout, value)
	}
}
